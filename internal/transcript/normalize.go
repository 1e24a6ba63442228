package transcript

import (
	"regexp"
	"strings"
)

var (
	markupTagRe = regexp.MustCompile(`<[^>]*>`)
	vttVoiceRe  = regexp.MustCompile(`^<v\s+([^>]+)>(.*?)(?:</v>)?$`)
	vttMetaRe   = regexp.MustCompile(`^(WEBVTT|NOTE|STYLE|REGION|Kind:|Language:)`)
	zoomStampRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\s+`)
)

// Normalize flattens raw transcript text for the given format into
// speaker-prefixed plain content and extracts the attendee set. It never
// fails: content that defeats the format's rules simply passes through as
// plain lines.
func Normalize(raw string, format Format) Normalized {
	lines := splitLines(raw)

	strip := stripRules[format]
	if strip == nil {
		strip = stripPlain
	}
	kept := strip(lines)

	content := strings.Join(kept, "\n")
	return Normalized{
		Content:   content,
		Format:    format,
		Attendees: extractAttendees(kept),
	}
}

// stripRules maps each format to its line-stripping rule. Every rule
// preserves the relative order of the lines it keeps.
var stripRules = map[Format]func([]string) []string{
	FormatVTT:   stripVTT,
	FormatSRT:   stripSRT,
	FormatZoom:  stripZoom,
	FormatTeams: stripTeams,
	FormatMeet:  stripMeet,
	FormatPlain: stripPlain,
}

func stripVTT(lines []string) []string {
	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || vttMetaRe.MatchString(trimmed) {
			continue
		}
		if cueTimingRe.MatchString(trimmed) || srtSequenceRe.MatchString(trimmed) {
			continue
		}
		if m := vttVoiceRe.FindStringSubmatch(trimmed); m != nil {
			kept = append(kept, m[1]+": "+markupTagRe.ReplaceAllString(m[2], ""))
			continue
		}
		kept = append(kept, markupTagRe.ReplaceAllString(trimmed, ""))
	}
	return kept
}

func stripSRT(lines []string) []string {
	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || srtSequenceRe.MatchString(trimmed) || srtTimingRe.MatchString(trimmed) {
			continue
		}
		kept = append(kept, markupTagRe.ReplaceAllString(trimmed, ""))
	}
	return kept
}

func stripZoom(lines []string) []string {
	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || bareTimestampRe.MatchString(trimmed) {
			continue
		}
		kept = append(kept, zoomStampRe.ReplaceAllString(trimmed, ""))
	}
	return kept
}

func stripTeams(lines []string) []string {
	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		trimmed = strings.TrimSpace(teamsStampRe.ReplaceAllString(trimmed, ""))
		if trimmed == "" {
			continue
		}
		// "[stamp] Jane Doe" header lines become speaker labels.
		if bareNameRe.MatchString(trimmed) {
			trimmed += ":"
		}
		kept = append(kept, trimmed)
	}
	return kept
}

func stripMeet(lines []string) []string {
	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || bareTimestampRe.MatchString(trimmed) {
			continue
		}
		kept = append(kept, trimmed)
	}
	return kept
}

func stripPlain(lines []string) []string {
	var kept []string
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t\r")
		if trimmed == "" {
			continue
		}
		kept = append(kept, trimmed)
	}
	return kept
}
