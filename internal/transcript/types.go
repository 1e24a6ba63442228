package transcript

// Format tags the source layout of a raw transcript. It is derived once per
// transcript and selects the normalization rules.
type Format string

const (
	FormatVTT   Format = "vtt"
	FormatSRT   Format = "srt"
	FormatPlain Format = "plain"
	FormatMeet  Format = "meet"
	FormatZoom  Format = "zoom"
	FormatTeams Format = "teams"
)

// Normalized is a flattened transcript: speaker-prefixed plain text with all
// timing and markup stripped. Immutable once produced.
type Normalized struct {
	Content   string
	Format    Format
	Attendees []string
}
