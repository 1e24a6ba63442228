package ingest

import "errors"

// Domain-specific errors for the ingest package.
var (
	ErrAlreadyIngested = errors.New("file already ingested")
	ErrUnsupportedFile = errors.New("unsupported file type")
)
