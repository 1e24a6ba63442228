package usecase

import (
	"path"
	"regexp"
	"strings"
	"time"

	"meeting-task-automation/internal/ingest"
	"meeting-task-automation/pkg/datemath"
)

var supportedExtensions = map[string]bool{
	".vtt": true,
	".srt": true,
	".txt": true,
	".md":  true,
}

const googleDocMime = "application/vnd.google-apps.document"

func supportedFile(meta ingest.FileMetadata) bool {
	if meta.MimeType == googleDocMime || strings.HasPrefix(meta.MimeType, "text/") {
		return true
	}
	return supportedExtensions[strings.ToLower(path.Ext(meta.Name))]
}

var fileDateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// meetingDate anchors relative due dates. A date embedded in the file name
// ("Weekly Sync 2026-02-03.vtt") beats the file's modification time, which
// can lag the meeting by days when transcripts are uploaded late.
func meetingDate(meta ingest.FileMetadata) time.Time {
	if m := fileDateRe.FindString(meta.Name); m != "" {
		if t, err := time.Parse(datemath.ISODateLayout, m); err == nil {
			return t
		}
	}
	if !meta.ModifiedTime.IsZero() {
		return meta.ModifiedTime.UTC().Truncate(24 * time.Hour)
	}
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// meetingTitle strips the extension and any embedded date from the file name.
func meetingTitle(name string) string {
	title := strings.TrimSuffix(name, path.Ext(name))
	title = fileDateRe.ReplaceAllString(title, "")
	title = strings.Trim(title, " -_")
	if title == "" {
		return name
	}
	return title
}
