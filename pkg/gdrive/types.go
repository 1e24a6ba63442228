package gdrive

import "time"

// File is the subset of Drive file metadata the ingestion pipeline needs.
type File struct {
	ID           string
	Name         string
	MimeType     string
	Parents      []string
	ModifiedTime time.Time
}

// WatchChannel describes an active push-notification channel on a folder.
type WatchChannel struct {
	ID         string
	ResourceID string
	Expiration time.Time
}

// MimeTypeGoogleDoc is the Drive mime type for native Google Docs, which
// must be exported rather than downloaded.
const MimeTypeGoogleDoc = "application/vnd.google-apps.document"

const mimeTypeFolder = "application/vnd.google-apps.folder"
