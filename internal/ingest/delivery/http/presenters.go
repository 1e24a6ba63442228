package http

import (
	"meeting-task-automation/internal/ingest"
	"meeting-task-automation/internal/model"
)

type processResp struct {
	SetID        string `json:"set_id"`
	MeetingTitle string `json:"meeting_title"`
	Status       string `json:"status"`
	Candidates   int    `json:"candidates"`
}

func newProcessResp(set model.PendingTaskSet) processResp {
	return processResp{
		SetID:        set.ID,
		MeetingTitle: set.MeetingTitle,
		Status:       string(set.Status),
		Candidates:   len(set.Candidates),
	}
}

type scanResp struct {
	Processed []string          `json:"processed"`
	Skipped   []string          `json:"skipped"`
	Failed    map[string]string `json:"failed,omitempty"`
}

func newScanResp(out ingest.ScanOutput) scanResp {
	return scanResp{
		Processed: out.Processed,
		Skipped:   out.Skipped,
		Failed:    out.Failed,
	}
}
