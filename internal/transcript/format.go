package transcript

import (
	"regexp"
	"strings"
)

// detectHeadLines bounds how much of the transcript the detector inspects.
const detectHeadLines = 10

var (
	srtSequenceRe = regexp.MustCompile(`^\d+$`)
	srtTimingRe   = regexp.MustCompile(`^\d{2}:\d{2}:\d{2},\d{3}\s*-->\s*\d{2}:\d{2}:\d{2},\d{3}`)
	cueTimingRe   = regexp.MustCompile(`-->`)

	// Zoom exports prefix each utterance with an inline timestamp:
	//   00:01:15 Jane Doe: let's move on
	zoomSpeakerRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\s+[^:]+:\s`)

	// Teams chat exports bracket the timestamp:
	//   [1/5/2026 10:02 AM] Jane Doe
	teamsStampRe = regexp.MustCompile(`^\[[^\]]*\d{1,2}:\d{2}[^\]]*\]`)

	// Meet exports interleave bare timestamp lines with Name: utterances.
	bareTimestampRe = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)
)

// formatRule pairs a format tag with its signature predicate. Rules are
// evaluated in fixed precedence order; the first match wins and there is no
// fallback re-scan.
type formatRule struct {
	format Format
	match  func(head []string) bool
}

var detectionRules = []formatRule{
	{FormatVTT, func(head []string) bool {
		for _, line := range head {
			if strings.HasPrefix(strings.TrimSpace(line), "WEBVTT") {
				return true
			}
		}
		return false
	}},
	{FormatSRT, func(head []string) bool {
		for i := 0; i+1 < len(head); i++ {
			if srtSequenceRe.MatchString(strings.TrimSpace(head[i])) &&
				srtTimingRe.MatchString(strings.TrimSpace(head[i+1])) {
				return true
			}
		}
		return false
	}},
	{FormatZoom, func(head []string) bool {
		return anyLine(head, zoomSpeakerRe.MatchString)
	}},
	{FormatTeams, func(head []string) bool {
		return anyLine(head, teamsStampRe.MatchString)
	}},
	{FormatMeet, func(head []string) bool {
		return anyLine(head, bareTimestampRe.MatchString) &&
			anyLine(head, func(s string) bool { return speakerColonRe.MatchString(s) })
	}},
}

// DetectFormat classifies raw transcript text by inspecting its first lines
// against the format signature rules. Unrecognized content is plain.
func DetectFormat(raw string) Format {
	head := headLines(raw, detectHeadLines)
	for _, rule := range detectionRules {
		if rule.match(head) {
			return rule.format
		}
	}
	return FormatPlain
}

func headLines(raw string, n int) []string {
	lines := splitLines(raw)
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}

func splitLines(raw string) []string {
	return strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
}

func anyLine(lines []string, match func(string) bool) bool {
	for _, line := range lines {
		if match(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}
