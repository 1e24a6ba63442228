package transcript_test

import (
	"regexp"
	"strings"
	"testing"

	"meeting-task-automation/internal/transcript"
)

var (
	timestampLineRe = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?([,.]\d{3})?$`)
	sequenceLineRe  = regexp.MustCompile(`^\d+$`)
)

func TestNormalizeStripsTimingLines(t *testing.T) {
	samples := map[string]transcript.Format{
		sampleVTT:   transcript.FormatVTT,
		sampleSRT:   transcript.FormatSRT,
		sampleZoom:  transcript.FormatZoom,
		sampleTeams: transcript.FormatTeams,
		sampleMeet:  transcript.FormatMeet,
		samplePlain: transcript.FormatPlain,
	}

	for raw, format := range samples {
		t.Run(string(format), func(t *testing.T) {
			norm := transcript.Normalize(raw, format)
			for _, line := range strings.Split(norm.Content, "\n") {
				if timestampLineRe.MatchString(line) {
					t.Errorf("residual timestamp line %q in %s output", line, format)
				}
				if sequenceLineRe.MatchString(line) {
					t.Errorf("residual sequence line %q in %s output", line, format)
				}
				if strings.Contains(line, "-->") {
					t.Errorf("residual cue timing %q in %s output", line, format)
				}
			}
		})
	}
}

func TestNormalizeVTT(t *testing.T) {
	norm := transcript.Normalize(sampleVTT, transcript.FormatVTT)

	want := "Alice Nguyen: We need the schema migration done this week.\n" +
		"Bob Tran: I can take that, action item for me."
	if norm.Content != want {
		t.Fatalf("Content = %q, want %q", norm.Content, want)
	}
	if norm.Format != transcript.FormatVTT {
		t.Fatalf("Format = %q", norm.Format)
	}
}

func TestNormalizeZoomStripsInlineStamps(t *testing.T) {
	norm := transcript.Normalize(sampleZoom, transcript.FormatZoom)

	want := "Alice Nguyen: Kicking off the sprint review.\n" +
		"Bob Tran: Demo is ready on staging."
	if norm.Content != want {
		t.Fatalf("Content = %q, want %q", norm.Content, want)
	}
}

func TestNormalizeAttendees(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		format transcript.Format
		want   []string
	}{
		{"vtt voices", sampleVTT, transcript.FormatVTT, []string{"Alice Nguyen", "Bob Tran"}},
		{"zoom speakers", sampleZoom, transcript.FormatZoom, []string{"Alice Nguyen", "Bob Tran"}},
		{"teams headers", sampleTeams, transcript.FormatTeams, []string{"Alice Nguyen", "Bob Tran"}},
		{
			"said and bracket labels",
			"[Carol Pham] hello\nDavid Le said: I'll send the doc\nCarol Pham said: thanks",
			transcript.FormatPlain,
			[]string{"Carol Pham", "David Le"},
		},
		{
			"clock shapes are not names",
			"10:30: standup starts\nAlice Nguyen: agreed",
			transcript.FormatPlain,
			[]string{"Alice Nguyen"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			norm := transcript.Normalize(tt.raw, tt.format)
			if len(norm.Attendees) != len(tt.want) {
				t.Fatalf("Attendees = %v, want %v", norm.Attendees, tt.want)
			}
			got := make(map[string]bool, len(norm.Attendees))
			for _, a := range norm.Attendees {
				if got[a] {
					t.Fatalf("duplicate attendee %q in %v", a, norm.Attendees)
				}
				got[a] = true
			}
			for _, w := range tt.want {
				if !got[w] {
					t.Errorf("missing attendee %q in %v", w, norm.Attendees)
				}
			}
		})
	}
}

func TestNormalizeUnrecognizedNeverPanics(t *testing.T) {
	norm := transcript.Normalize("\x00garbage\nwith lines\n", transcript.FormatPlain)
	if !strings.Contains(norm.Content, "with lines") {
		t.Fatalf("plain normalization dropped content: %q", norm.Content)
	}
}
