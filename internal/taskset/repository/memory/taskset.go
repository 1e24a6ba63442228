package memory

import (
	"context"
	"sort"
	"sync"

	"meeting-task-automation/internal/model"
	"meeting-task-automation/internal/taskset/repository"
)

// Store is an in-memory Repository used by tests and local development. It
// gives the same whole-document commit semantics as the Firestore backend:
// Update retries on write conflict until the mutation applies to the latest
// revision.
type Store struct {
	mu       sync.RWMutex
	sets     map[string]model.PendingTaskSet
	byFile   map[string]string // source file ID -> set ID
	revision map[string]uint64
}

func New() *Store {
	return &Store{
		sets:     make(map[string]model.PendingTaskSet),
		byFile:   make(map[string]string),
		revision: make(map[string]uint64),
	}
}

func (s *Store) Create(ctx context.Context, set model.PendingTaskSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sets[set.ID]; ok {
		return repository.ErrAlreadyExists
	}
	if _, ok := s.byFile[set.SourceFileID]; ok {
		return repository.ErrAlreadyExists
	}

	s.sets[set.ID] = cloneSet(set)
	s.byFile[set.SourceFileID] = set.ID
	s.revision[set.ID] = 1
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (model.PendingTaskSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[id]
	if !ok {
		return model.PendingTaskSet{}, repository.ErrNotFound
	}
	return cloneSet(set), nil
}

func (s *Store) FindBySourceFile(ctx context.Context, fileID string) (model.PendingTaskSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byFile[fileID]
	if !ok {
		return model.PendingTaskSet{}, repository.ErrNotFound
	}
	return cloneSet(s.sets[id]), nil
}

func (s *Store) List(ctx context.Context, opt repository.ListOptions) ([]model.PendingTaskSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.PendingTaskSet, 0, len(s.sets))
	for _, set := range s.sets {
		if opt.Status != "" && set.Status != opt.Status {
			continue
		}
		out = append(out, cloneSet(set))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if opt.Limit > 0 && len(out) > opt.Limit {
		out = out[:opt.Limit]
	}
	return out, nil
}

// Update applies mutate to a private copy and commits it only if nobody else
// wrote the set in between, retrying otherwise.
func (s *Store) Update(ctx context.Context, id string, mutate func(*model.PendingTaskSet) error) (model.PendingTaskSet, error) {
	for {
		if err := ctx.Err(); err != nil {
			return model.PendingTaskSet{}, err
		}

		s.mu.RLock()
		current, ok := s.sets[id]
		rev := s.revision[id]
		s.mu.RUnlock()
		if !ok {
			return model.PendingTaskSet{}, repository.ErrNotFound
		}

		next := cloneSet(current)
		if err := mutate(&next); err != nil {
			return model.PendingTaskSet{}, err
		}

		s.mu.Lock()
		if s.revision[id] != rev {
			s.mu.Unlock()
			continue
		}
		s.sets[id] = cloneSet(next)
		s.revision[id] = rev + 1
		s.mu.Unlock()

		return next, nil
	}
}

func cloneSet(set model.PendingTaskSet) model.PendingTaskSet {
	out := set
	out.Decisions = append([]string(nil), set.Decisions...)
	out.Candidates = append([]model.PendingCandidate(nil), set.Candidates...)
	return out
}
