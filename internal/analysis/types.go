package analysis

import "time"

// Context carries the meeting-level facts the extraction prompt is anchored
// on. ReferenceDate is the date all relative due expressions resolve against,
// normally the meeting date.
type Context struct {
	MeetingTitle  string
	ReferenceDate time.Time
	FolderLabel   string
	Attendees     []string
}

// Options tunes the orchestrator.
type Options struct {
	// MaxChunkChars is the character budget for a single LLM call. Content
	// above it is split on speaker boundaries and analyzed per chunk.
	MaxChunkChars int

	// ChunkInterval paces successive chunk calls against provider rate
	// limits. Zero disables pacing.
	ChunkInterval time.Duration

	Temperature float64
	MaxTokens   int
}

const (
	defaultMaxChunkChars = 400000
	defaultMaxTokens     = 8192
)

func (o *Options) withDefaults() Options {
	out := *o
	if out.MaxChunkChars <= 0 {
		out.MaxChunkChars = defaultMaxChunkChars
	}
	if out.MaxTokens <= 0 {
		out.MaxTokens = defaultMaxTokens
	}
	return out
}
