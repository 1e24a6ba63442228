package ingest

import "time"

// FileMetadata describes one transcript file in the source store.
type FileMetadata struct {
	ID           string
	Name         string
	MimeType     string
	FolderID     string
	FolderName   string
	ModifiedTime time.Time
}

// ScanOutput summarizes one folder scan.
type ScanOutput struct {
	Processed []string // file IDs ingested this scan
	Skipped   []string // file IDs that already had a set
	Failed    map[string]string
}
