package usecase

import (
	"context"
	"errors"
	"fmt"

	"meeting-task-automation/internal/analysis"
	"meeting-task-automation/internal/ingest"
	"meeting-task-automation/internal/model"
	"meeting-task-automation/internal/taskset"
	"meeting-task-automation/internal/transcript"
)

func (uc *implUseCase) ProcessFile(ctx context.Context, fileID string) (model.PendingTaskSet, error) {
	ingested, err := uc.sets.IsFileAlreadyIngested(ctx, fileID)
	if err != nil {
		return model.PendingTaskSet{}, err
	}
	if ingested {
		return model.PendingTaskSet{}, ingest.ErrAlreadyIngested
	}

	meta, err := uc.source.FetchMetadata(ctx, fileID)
	if err != nil {
		return model.PendingTaskSet{}, fmt.Errorf("fetch metadata for %s: %w", fileID, err)
	}
	if !supportedFile(meta) {
		return model.PendingTaskSet{}, fmt.Errorf("%w: %s (%s)", ingest.ErrUnsupportedFile, meta.Name, meta.MimeType)
	}

	raw, err := uc.source.FetchContent(ctx, fileID)
	if err != nil {
		return model.PendingTaskSet{}, fmt.Errorf("fetch content for %s: %w", fileID, err)
	}

	format := transcript.DetectFormat(raw)
	norm := transcript.Normalize(raw, format)
	uc.l.Infof(ctx, "transcript normalized: file=%s format=%s chars=%d attendees=%d",
		fileID, format, len(norm.Content), len(norm.Attendees))

	title := meetingTitle(meta.Name)
	result, err := uc.analyze(ctx, norm, meta, title)
	if err != nil {
		return model.PendingTaskSet{}, err
	}

	set, err := uc.sets.Create(ctx, taskset.CreateInput{
		SourceFileID:   fileID,
		SourceFolderID: meta.FolderID,
		MeetingTitle:   title,
		Analysis:       result,
	})
	if err != nil {
		if errors.Is(err, taskset.ErrDuplicateIngestion) {
			return model.PendingTaskSet{}, ingest.ErrAlreadyIngested
		}
		return model.PendingTaskSet{}, err
	}

	if uc.notifier != nil {
		if err := uc.notifier.NotifyNewSet(ctx, set); err != nil {
			uc.l.Warnf(ctx, "approval notification failed: set=%s err=%v", set.ID, err)
		}
	}
	return set, nil
}

// analyze runs extraction. An empty transcript is not an error at this
// level: the file still gets an empty completed set so it is never fetched
// again.
func (uc *implUseCase) analyze(ctx context.Context, norm transcript.Normalized, meta ingest.FileMetadata, title string) (model.MeetingAnalysis, error) {
	mctx := analysis.Context{
		MeetingTitle:  title,
		ReferenceDate: meetingDate(meta),
		FolderLabel:   meta.FolderName,
		Attendees:     norm.Attendees,
	}

	result, err := uc.analyzer.Analyze(ctx, norm.Content, mctx)
	if errors.Is(err, analysis.ErrEmptyTranscript) {
		uc.l.Warnf(ctx, "transcript empty after normalization: file=%s", meta.ID)
		return model.MeetingAnalysis{}, nil
	}
	return result, err
}

func (uc *implUseCase) ScanFolder(ctx context.Context, folderID string) (ingest.ScanOutput, error) {
	files, err := uc.source.ListFolderFiles(ctx, folderID)
	if err != nil {
		return ingest.ScanOutput{}, fmt.Errorf("list folder %s: %w", folderID, err)
	}

	out := ingest.ScanOutput{Failed: make(map[string]string)}
	for _, meta := range files {
		if !supportedFile(meta) {
			continue
		}

		_, err := uc.ProcessFile(ctx, meta.ID)
		switch {
		case err == nil:
			out.Processed = append(out.Processed, meta.ID)
		case errors.Is(err, ingest.ErrAlreadyIngested):
			out.Skipped = append(out.Skipped, meta.ID)
		default:
			uc.l.Errorf(ctx, "ingestion failed: file=%s err=%v", meta.ID, err)
			out.Failed[meta.ID] = err.Error()
		}
	}

	uc.l.Infof(ctx, "folder scan done: folder=%s processed=%d skipped=%d failed=%d",
		folderID, len(out.Processed), len(out.Skipped), len(out.Failed))
	return out, nil
}
