// Package gdrive adapts the Drive client to the ingest FileSource interface.
package gdrive

import (
	"context"

	"meeting-task-automation/internal/ingest"
	pkgGdrive "meeting-task-automation/pkg/gdrive"
)

type Source struct {
	client *pkgGdrive.Client

	// folderNames caches folder ID -> display name; watched folders are
	// few and renames are rare.
	folderNames map[string]string
}

func New(client *pkgGdrive.Client) *Source {
	return &Source{
		client:      client,
		folderNames: make(map[string]string),
	}
}

func (s *Source) FetchMetadata(ctx context.Context, fileID string) (ingest.FileMetadata, error) {
	f, err := s.client.GetFile(ctx, fileID)
	if err != nil {
		return ingest.FileMetadata{}, err
	}
	return s.toMetadata(ctx, f), nil
}

func (s *Source) FetchContent(ctx context.Context, fileID string) (string, error) {
	f, err := s.client.GetFile(ctx, fileID)
	if err != nil {
		return "", err
	}
	return s.client.DownloadText(ctx, fileID, f.MimeType)
}

func (s *Source) ListFolderFiles(ctx context.Context, folderID string) ([]ingest.FileMetadata, error) {
	files, err := s.client.ListFiles(ctx, folderID)
	if err != nil {
		return nil, err
	}

	out := make([]ingest.FileMetadata, 0, len(files))
	for _, f := range files {
		out = append(out, s.toMetadata(ctx, f))
	}
	return out, nil
}

func (s *Source) toMetadata(ctx context.Context, f *pkgGdrive.File) ingest.FileMetadata {
	meta := ingest.FileMetadata{
		ID:           f.ID,
		Name:         f.Name,
		MimeType:     f.MimeType,
		ModifiedTime: f.ModifiedTime,
	}
	if len(f.Parents) > 0 {
		meta.FolderID = f.Parents[0]
		meta.FolderName = s.folderName(ctx, meta.FolderID)
	}
	return meta
}

func (s *Source) folderName(ctx context.Context, folderID string) string {
	if name, ok := s.folderNames[folderID]; ok {
		return name
	}
	name, err := s.client.GetFolderName(ctx, folderID)
	if err != nil {
		return ""
	}
	s.folderNames[folderID] = name
	return name
}
