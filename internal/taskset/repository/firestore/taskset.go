package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"meeting-task-automation/internal/model"
	"meeting-task-automation/internal/taskset/repository"
)

// Store persists pending task sets as Firestore documents, one document per
// set. Update commits through RunTransaction so every mutation replaces the
// whole document atomically against the version it read.
type Store struct {
	client     *firestore.Client
	collection string
}

func New(client *firestore.Client, collection string) *Store {
	return &Store{client: client, collection: collection}
}

func (s *Store) col() *firestore.CollectionRef {
	return s.client.Collection(s.collection)
}

func (s *Store) Create(ctx context.Context, set model.PendingTaskSet) error {
	_, err := s.col().Doc(set.ID).Create(ctx, set)
	if status.Code(err) == codes.AlreadyExists {
		return repository.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create task set %s: %w", set.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (model.PendingTaskSet, error) {
	snap, err := s.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return model.PendingTaskSet{}, repository.ErrNotFound
	}
	if err != nil {
		return model.PendingTaskSet{}, fmt.Errorf("get task set %s: %w", id, err)
	}

	var set model.PendingTaskSet
	if err := snap.DataTo(&set); err != nil {
		return model.PendingTaskSet{}, fmt.Errorf("decode task set %s: %w", id, err)
	}
	return set, nil
}

func (s *Store) FindBySourceFile(ctx context.Context, fileID string) (model.PendingTaskSet, error) {
	iter := s.col().Where("source_file_id", "==", fileID).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return model.PendingTaskSet{}, repository.ErrNotFound
	}
	if err != nil {
		return model.PendingTaskSet{}, fmt.Errorf("find task set by file %s: %w", fileID, err)
	}

	var set model.PendingTaskSet
	if err := snap.DataTo(&set); err != nil {
		return model.PendingTaskSet{}, fmt.Errorf("decode task set for file %s: %w", fileID, err)
	}
	return set, nil
}

func (s *Store) List(ctx context.Context, opt repository.ListOptions) ([]model.PendingTaskSet, error) {
	q := s.col().OrderBy("created_at", firestore.Desc)
	if opt.Status != "" {
		q = s.col().Where("status", "==", string(opt.Status)).OrderBy("created_at", firestore.Desc)
	}
	if opt.Limit > 0 {
		q = q.Limit(opt.Limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []model.PendingTaskSet
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list task sets: %w", err)
		}
		var set model.PendingTaskSet
		if err := snap.DataTo(&set); err != nil {
			return nil, fmt.Errorf("decode task set %s: %w", snap.Ref.ID, err)
		}
		out = append(out, set)
	}
	return out, nil
}

func (s *Store) Update(ctx context.Context, id string, mutate func(*model.PendingTaskSet) error) (model.PendingTaskSet, error) {
	doc := s.col().Doc(id)

	var updated model.PendingTaskSet
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(doc)
		if status.Code(err) == codes.NotFound {
			return repository.ErrNotFound
		}
		if err != nil {
			return err
		}

		var set model.PendingTaskSet
		if err := snap.DataTo(&set); err != nil {
			return err
		}
		if err := mutate(&set); err != nil {
			return err
		}

		updated = set
		return tx.Set(doc, set)
	})
	if err != nil {
		return model.PendingTaskSet{}, err
	}
	return updated, nil
}
