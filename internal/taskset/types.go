package taskset

import "meeting-task-automation/internal/model"

// CreateInput is the input for persisting a new pending set.
type CreateInput struct {
	SourceFileID   string
	SourceFolderID string
	MeetingTitle   string
	Analysis       model.MeetingAnalysis
}

// ListInput filters the set listing.
type ListInput struct {
	Status model.SetStatus // empty matches all
	Limit  int             // 0 means no limit
}

// CandidateEdit carries partial updates for a pending candidate. Nil fields
// are left untouched.
type CandidateEdit struct {
	Title             *string
	Description       *string
	SuggestedAssignee *string
	SuggestedDue      *string // YYYY-MM-DD, empty string clears the due date
	Priority          *model.Priority
}

// ResolveOutput is the result of resolving a single candidate.
type ResolveOutput struct {
	Set       model.PendingTaskSet
	Index     int
	Candidate model.PendingCandidate
}

// ResolveFailure records one candidate that could not be approved during a
// bulk resolve.
type ResolveFailure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// ResolveAllOutput is the result of a bulk approve.
type ResolveAllOutput struct {
	Set     model.PendingTaskSet
	Created []int
	Failed  []ResolveFailure
}

// CreateTaskInput is what gets pushed to the external tracker on approval.
type CreateTaskInput struct {
	Title string
	Notes string
	Due   string // YYYY-MM-DD, optional
}

// ExternalTask identifies a task created in the external tracker.
type ExternalTask struct {
	ID  string
	URL string
}
