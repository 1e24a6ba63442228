// Package gtasks adapts the Google Tasks client to the taskset TaskTracker
// interface.
package gtasks

import (
	"context"

	"meeting-task-automation/internal/taskset"
	pkgGtasks "meeting-task-automation/pkg/gtasks"
)

type Tracker struct {
	client *pkgGtasks.Client
}

func New(client *pkgGtasks.Client) *Tracker {
	return &Tracker{client: client}
}

func (t *Tracker) CreateTask(ctx context.Context, input taskset.CreateTaskInput) (taskset.ExternalTask, error) {
	created, err := t.client.CreateTask(ctx, pkgGtasks.NewTask{
		Title: input.Title,
		Notes: input.Notes,
		Due:   input.Due,
	})
	if err != nil {
		return taskset.ExternalTask{}, err
	}
	return taskset.ExternalTask{ID: created.ID, URL: created.WebLink}, nil
}
