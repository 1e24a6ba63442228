package model

// Priority is the task urgency taxonomy used by the extraction service.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

// ExtractionType distinguishes directly stated tasks from inferred ones.
type ExtractionType string

const (
	// ExtractionExplicit marks a task directly called out in the meeting.
	// Explicit candidates always carry confidence 1.0.
	ExtractionExplicit ExtractionType = "explicit"

	// ExtractionImplicit marks a task inferred from conversational commitment.
	ExtractionImplicit ExtractionType = "implicit"
)

// TaskCandidate is one proposed actionable item extracted from a transcript.
type TaskCandidate struct {
	Title             string         `json:"title" firestore:"title"`
	Description       string         `json:"description" firestore:"description"`
	SuggestedAssignee string         `json:"suggested_assignee,omitempty" firestore:"suggested_assignee"`
	SuggestedDue      string         `json:"suggested_due,omitempty" firestore:"suggested_due"` // YYYY-MM-DD or empty
	Priority          Priority       `json:"priority" firestore:"priority"`
	SourceQuote       string         `json:"source_quote" firestore:"source_quote"`
	Confidence        float64        `json:"confidence" firestore:"confidence"`
	ExtractionType    ExtractionType `json:"extraction_type" firestore:"extraction_type"`
}

// MeetingAnalysis is the structured result of analyzing one transcript (or
// one chunk of it): task candidates plus the narrative context around them.
type MeetingAnalysis struct {
	Candidates []TaskCandidate `json:"candidates"`
	Summary    string          `json:"summary"`
	Decisions  []string        `json:"decisions"`
}
