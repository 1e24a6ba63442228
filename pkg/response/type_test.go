package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"meeting-task-automation/pkg/response"
)

func TestDateMarshalJSON(t *testing.T) {
	tm := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)
	d := response.Date(tm)

	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error marshaling Date: %v", err)
	}

	if got := string(b); got != `"2024-05-01"` {
		t.Errorf("expected %q, got %s", "2024-05-01", got)
	}
}

func TestDateTimeMarshalJSON(t *testing.T) {
	tm := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)
	dt := response.DateTime(tm)

	b, err := json.Marshal(dt)
	if err != nil {
		t.Fatalf("unexpected error marshaling DateTime: %v", err)
	}

	if got := string(b); got != `"2024-05-01 15:30:00"` {
		t.Errorf("expected %q, got %s", "2024-05-01 15:30:00", got)
	}
}
