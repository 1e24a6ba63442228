package model

import "time"

// Resolution is the per-candidate lifecycle outcome.
type Resolution string

const (
	ResolutionPending   Resolution = "pending"
	ResolutionCreated   Resolution = "created"
	ResolutionDismissed Resolution = "dismissed"
)

// Terminal reports whether the resolution is final.
func (r Resolution) Terminal() bool {
	return r == ResolutionCreated || r == ResolutionDismissed
}

// SetStatus is the set-level lifecycle state.
type SetStatus string

const (
	SetStatusPending    SetStatus = "pending"
	SetStatusProcessing SetStatus = "processing"
	SetStatusCompleted  SetStatus = "completed"
)

// PendingCandidate is a task candidate tracked through human approval.
// Candidates are addressed by their index in the owning set; that index is
// stable for the lifetime of the set.
type PendingCandidate struct {
	TaskCandidate `firestore:",inline"`

	Resolution      Resolution `json:"resolution" firestore:"resolution"`
	ExternalTaskID  string     `json:"external_task_id,omitempty" firestore:"external_task_id"`
	ExternalTaskURL string     `json:"external_task_url,omitempty" firestore:"external_task_url"`
}

// PendingTaskSet is the durable aggregate of all candidates extracted from
// one source file. It is created once per file and mutated only through the
// lifecycle store's per-candidate resolution operations.
type PendingTaskSet struct {
	ID             string             `json:"id" firestore:"id"`
	SourceFileID   string             `json:"source_file_id" firestore:"source_file_id"`
	SourceFolderID string             `json:"source_folder_id" firestore:"source_folder_id"`
	MeetingTitle   string             `json:"meeting_title" firestore:"meeting_title"`
	Summary        string             `json:"summary" firestore:"summary"`
	Decisions      []string           `json:"decisions" firestore:"decisions"`
	Candidates     []PendingCandidate `json:"candidates" firestore:"candidates"`
	Status         SetStatus          `json:"status" firestore:"status"`
	CreatedAt      time.Time          `json:"created_at" firestore:"created_at"`
}

// AllResolved reports whether every candidate has reached a terminal
// resolution. An empty set counts as fully resolved.
func (s *PendingTaskSet) AllResolved() bool {
	for i := range s.Candidates {
		if !s.Candidates[i].Resolution.Terminal() {
			return false
		}
	}
	return true
}

// RefreshStatus derives the completed state: a set becomes completed the
// moment its last candidate turns terminal, whatever state it was in before.
func (s *PendingTaskSet) RefreshStatus() {
	if s.AllResolved() {
		s.Status = SetStatusCompleted
	}
}
