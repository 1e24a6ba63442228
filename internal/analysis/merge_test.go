package analysis_test

import (
	"reflect"
	"testing"

	"meeting-task-automation/internal/analysis"
	"meeting-task-automation/internal/model"
)

func TestMergeKeepsDistinctTasks(t *testing.T) {
	a := model.MeetingAnalysis{Candidates: []model.TaskCandidate{
		{Title: "Ship the billing migration", Priority: model.PriorityHigh, Confidence: 1, ExtractionType: model.ExtractionExplicit},
	}}
	b := model.MeetingAnalysis{Candidates: []model.TaskCandidate{
		{Title: "Review the onboarding copy", Priority: model.PriorityNormal, Confidence: 0.8, ExtractionType: model.ExtractionImplicit},
	}}

	merged := analysis.Merge(a, b)
	if len(merged.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(merged.Candidates))
	}
}

func TestMergeSubstringDuplicateKeepsExplicit(t *testing.T) {
	a := model.MeetingAnalysis{Candidates: []model.TaskCandidate{
		{Title: "Update database schema for new user fields", Confidence: 0.6, ExtractionType: model.ExtractionImplicit},
	}}
	b := model.MeetingAnalysis{Candidates: []model.TaskCandidate{
		{Title: "Update database schema", Confidence: 1.0, ExtractionType: model.ExtractionExplicit},
	}}

	merged := analysis.Merge(a, b)
	if len(merged.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(merged.Candidates))
	}
	got := merged.Candidates[0]
	if got.ExtractionType != model.ExtractionExplicit {
		t.Fatalf("survivor is %s, want explicit", got.ExtractionType)
	}
	if got.Title != "Update database schema" {
		t.Fatalf("survivor title = %q", got.Title)
	}
}

func TestMergeSurvivorKeepsEarlierSlot(t *testing.T) {
	a := model.MeetingAnalysis{Candidates: []model.TaskCandidate{
		{Title: "Fix login timeout", Confidence: 0.5, ExtractionType: model.ExtractionImplicit},
		{Title: "Draft release notes", Confidence: 0.9, ExtractionType: model.ExtractionImplicit},
	}}
	b := model.MeetingAnalysis{Candidates: []model.TaskCandidate{
		{Title: "Fix the login timeout", Confidence: 1.0, ExtractionType: model.ExtractionExplicit},
	}}

	merged := analysis.Merge(a, b)
	if len(merged.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(merged.Candidates))
	}
	if merged.Candidates[0].ExtractionType != model.ExtractionExplicit {
		t.Fatal("stronger duplicate did not take over the earlier slot")
	}
	if merged.Candidates[1].Title != "Draft release notes" {
		t.Fatalf("slot 1 = %q, want untouched second task", merged.Candidates[1].Title)
	}
}

func TestMergeCaseAndPunctuationInsensitive(t *testing.T) {
	a := model.MeetingAnalysis{Candidates: []model.TaskCandidate{
		{Title: "Set up CI for the mobile repo.", Confidence: 0.7, ExtractionType: model.ExtractionImplicit},
	}}
	b := model.MeetingAnalysis{Candidates: []model.TaskCandidate{
		{Title: "set up ci for the mobile repo", Confidence: 0.4, ExtractionType: model.ExtractionImplicit},
	}}

	merged := analysis.Merge(a, b)
	if len(merged.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(merged.Candidates))
	}
	if merged.Candidates[0].Confidence != 0.7 {
		t.Fatalf("survivor confidence = %v, want the higher 0.7", merged.Candidates[0].Confidence)
	}
}

func TestMergeSummariesAndDecisions(t *testing.T) {
	a := model.MeetingAnalysis{
		Summary:   "First half covered the rollout.",
		Decisions: []string{"Rollout moves to Tuesday", "Keep the old API for one release"},
	}
	b := model.MeetingAnalysis{
		Summary:   "Second half covered staffing.",
		Decisions: []string{"Rollout moves to Tuesday", "Hire one more SRE"},
	}

	merged := analysis.Merge(a, b)
	if merged.Summary != "First half covered the rollout. Second half covered staffing." {
		t.Fatalf("summary = %q", merged.Summary)
	}
	if len(merged.Decisions) != 3 {
		t.Fatalf("decisions = %v, want 3 after dedup", merged.Decisions)
	}
}

func TestMergeDecisionsDedupByExactString(t *testing.T) {
	// Dedup is exact string equality: punctuation or case variants are
	// distinct decisions and must all survive.
	a := model.MeetingAnalysis{Decisions: []string{"Ship it", "Ship it"}}
	b := model.MeetingAnalysis{Decisions: []string{"Ship it!", "ship it"}}

	merged := analysis.Merge(a, b)
	want := []string{"Ship it", "Ship it!", "ship it"}
	if len(merged.Decisions) != len(want) {
		t.Fatalf("decisions = %v, want %v", merged.Decisions, want)
	}
	for i, d := range want {
		if merged.Decisions[i] != d {
			t.Fatalf("decisions[%d] = %q, want %q", i, merged.Decisions[i], d)
		}
	}
}

func TestMergeSingleInputIsIdentity(t *testing.T) {
	a := model.MeetingAnalysis{
		Summary:   "  Covered the rollout. ",
		Decisions: []string{"Ship it", "Ship it!"},
		Candidates: []model.TaskCandidate{
			{Title: "Fix login timeout", Confidence: 0.5, ExtractionType: model.ExtractionImplicit},
			{Title: "Fix the login timeout", Confidence: 0.9, ExtractionType: model.ExtractionImplicit},
		},
	}

	merged := analysis.Merge(a)
	if !reflect.DeepEqual(merged, a) {
		t.Fatalf("merge of one analysis changed it:\n got %+v\nwant %+v", merged, a)
	}
}

func TestMergeHigherConfidenceBeatsExplicitFlag(t *testing.T) {
	a := model.MeetingAnalysis{Candidates: []model.TaskCandidate{
		{Title: "Migrate the billing service", Confidence: 0.6, ExtractionType: model.ExtractionExplicit},
	}}
	b := model.MeetingAnalysis{Candidates: []model.TaskCandidate{
		{Title: "Migrate billing service", Confidence: 0.9, ExtractionType: model.ExtractionImplicit},
	}}

	merged := analysis.Merge(a, b)
	if len(merged.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(merged.Candidates))
	}
	if got := merged.Candidates[0].Confidence; got != 0.9 {
		t.Fatalf("survivor confidence = %v, want the higher 0.9", got)
	}
}

func TestMergeExplicitWinsOnConfidenceTie(t *testing.T) {
	a := model.MeetingAnalysis{Candidates: []model.TaskCandidate{
		{Title: "Rotate the API keys", Confidence: 0.8, ExtractionType: model.ExtractionImplicit},
	}}
	b := model.MeetingAnalysis{Candidates: []model.TaskCandidate{
		{Title: "Rotate API keys", Confidence: 0.8, ExtractionType: model.ExtractionExplicit},
	}}

	merged := analysis.Merge(a, b)
	if len(merged.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(merged.Candidates))
	}
	if merged.Candidates[0].ExtractionType != model.ExtractionExplicit {
		t.Fatal("confidence tie did not fall to the explicit candidate")
	}
}

func TestMergeTokenOverlapIgnoresRepeatedWords(t *testing.T) {
	// Overlap ratio is over unique tokens. "check" repeated three times must
	// not inflate similarity against an unrelated title that shares it.
	a := model.MeetingAnalysis{Candidates: []model.TaskCandidate{
		{Title: "Check check check payments", Confidence: 0.9, ExtractionType: model.ExtractionImplicit},
	}}
	b := model.MeetingAnalysis{Candidates: []model.TaskCandidate{
		{Title: "Check rota for oncall", Confidence: 0.9, ExtractionType: model.ExtractionImplicit},
	}}

	merged := analysis.Merge(a, b)
	if len(merged.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2 distinct tasks", len(merged.Candidates))
	}
}
