package http

import (
	"time"

	"meeting-task-automation/internal/model"
	"meeting-task-automation/internal/taskset"
)

// --- Request DTOs ---

type listReq struct {
	Status string `form:"status" binding:"omitempty,oneof=pending processing completed"`
	Limit  int    `form:"limit"`
}

func (r listReq) toInput() taskset.ListInput {
	limit := r.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return taskset.ListInput{
		Status: model.SetStatus(r.Status),
		Limit:  limit,
	}
}

type resolveReq struct {
	SetID string
	Index int
}

type editReq struct {
	SetID string
	Index int

	Title             *string `json:"title"              binding:"omitempty,min=1,max=500"`
	Description       *string `json:"description"        binding:"omitempty,max=4000"`
	SuggestedAssignee *string `json:"suggested_assignee" binding:"omitempty,max=255"`
	SuggestedDue      *string `json:"suggested_due"`
	Priority          *string `json:"priority"           binding:"omitempty,oneof=urgent high normal low"`
}

func (r editReq) toInput() taskset.CandidateEdit {
	edit := taskset.CandidateEdit{
		Title:             r.Title,
		Description:       r.Description,
		SuggestedAssignee: r.SuggestedAssignee,
		SuggestedDue:      r.SuggestedDue,
	}
	if r.Priority != nil {
		p := model.Priority(*r.Priority)
		edit.Priority = &p
	}
	return edit
}

// --- Response DTOs ---

type candidateResp struct {
	Index             int     `json:"index"`
	Title             string  `json:"title"`
	Description       string  `json:"description,omitempty"`
	SuggestedAssignee string  `json:"suggested_assignee,omitempty"`
	SuggestedDue      string  `json:"suggested_due,omitempty"`
	Priority          string  `json:"priority"`
	SourceQuote       string  `json:"source_quote,omitempty"`
	Confidence        float64 `json:"confidence"`
	ExtractionType    string  `json:"extraction_type"`
	Resolution        string  `json:"resolution"`
	ExternalTaskID    string  `json:"external_task_id,omitempty"`
	ExternalTaskURL   string  `json:"external_task_url,omitempty"`
}

func newCandidateResp(index int, c model.PendingCandidate) candidateResp {
	return candidateResp{
		Index:             index,
		Title:             c.Title,
		Description:       c.Description,
		SuggestedAssignee: c.SuggestedAssignee,
		SuggestedDue:      c.SuggestedDue,
		Priority:          string(c.Priority),
		SourceQuote:       c.SourceQuote,
		Confidence:        c.Confidence,
		ExtractionType:    string(c.ExtractionType),
		Resolution:        string(c.Resolution),
		ExternalTaskID:    c.ExternalTaskID,
		ExternalTaskURL:   c.ExternalTaskURL,
	}
}

type setResp struct {
	ID             string          `json:"id"`
	SourceFileID   string          `json:"source_file_id"`
	SourceFolderID string          `json:"source_folder_id,omitempty"`
	MeetingTitle   string          `json:"meeting_title"`
	Summary        string          `json:"summary,omitempty"`
	Decisions      []string        `json:"decisions,omitempty"`
	Candidates     []candidateResp `json:"candidates"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

func newSetResp(set model.PendingTaskSet) setResp {
	candidates := make([]candidateResp, len(set.Candidates))
	for i, c := range set.Candidates {
		candidates[i] = newCandidateResp(i, c)
	}
	return setResp{
		ID:             set.ID,
		SourceFileID:   set.SourceFileID,
		SourceFolderID: set.SourceFolderID,
		MeetingTitle:   set.MeetingTitle,
		Summary:        set.Summary,
		Decisions:      set.Decisions,
		Candidates:     candidates,
		Status:         string(set.Status),
		CreatedAt:      set.CreatedAt,
	}
}

type listResp struct {
	Sets  []setResp `json:"sets"`
	Count int       `json:"count"`
}

func (h *handler) newListResp(sets []model.PendingTaskSet) listResp {
	out := make([]setResp, len(sets))
	for i, set := range sets {
		out[i] = newSetResp(set)
	}
	return listResp{Sets: out, Count: len(out)}
}

type resolveResp struct {
	Set       setResp       `json:"set"`
	Candidate candidateResp `json:"candidate"`
}

func newResolveResp(out taskset.ResolveOutput) resolveResp {
	return resolveResp{
		Set:       newSetResp(out.Set),
		Candidate: newCandidateResp(out.Index, out.Candidate),
	}
}

type bulkResp struct {
	Set     setResp                  `json:"set"`
	Created []int                    `json:"created"`
	Failed  []taskset.ResolveFailure `json:"failed,omitempty"`
}

func (h *handler) newBulkResp(out taskset.ResolveAllOutput) bulkResp {
	return bulkResp{
		Set:     newSetResp(out.Set),
		Created: out.Created,
		Failed:  out.Failed,
	}
}
