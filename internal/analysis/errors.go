package analysis

import "errors"

var (
	// ErrEmptyTranscript is returned when there is nothing to analyze after
	// normalization.
	ErrEmptyTranscript = errors.New("transcript content is empty")

	// ErrExtractionUnavailable wraps provider-chain exhaustion: every
	// configured model failed or returned unusable output.
	ErrExtractionUnavailable = errors.New("task extraction unavailable")
)
