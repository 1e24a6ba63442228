package ingest

import (
	"context"

	"meeting-task-automation/internal/analysis"
	"meeting-task-automation/internal/model"
)

// UseCase drives the ingestion pipeline: fetch a transcript file, normalize
// it, extract task candidates, and persist them as a pending set.
type UseCase interface {
	// ProcessFile ingests one transcript file end to end. It fails with
	// ErrAlreadyIngested when the file has a set already; nothing is
	// persisted when any later stage fails.
	ProcessFile(ctx context.Context, fileID string) (model.PendingTaskSet, error)

	// ScanFolder ingests every not-yet-ingested file in a watched folder.
	ScanFolder(ctx context.Context, folderID string) (ScanOutput, error)
}

// FileSource abstracts the transcript file store.
type FileSource interface {
	FetchMetadata(ctx context.Context, fileID string) (FileMetadata, error)
	FetchContent(ctx context.Context, fileID string) (string, error)
	ListFolderFiles(ctx context.Context, folderID string) ([]FileMetadata, error)
}

// Analyzer extracts task candidates from normalized transcript content.
type Analyzer interface {
	Analyze(ctx context.Context, content string, mctx analysis.Context) (model.MeetingAnalysis, error)
}

// Notifier announces a freshly created set to the approval channel. Delivery
// is best effort; the set exists either way.
type Notifier interface {
	NotifyNewSet(ctx context.Context, set model.PendingTaskSet) error
}
