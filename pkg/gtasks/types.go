package gtasks

// NewTask is the input for creating a task in Google Tasks.
type NewTask struct {
	Title string
	Notes string
	Due   string // YYYY-MM-DD, optional
}

// Task is a created Google Tasks entry.
type Task struct {
	ID      string
	Title   string
	WebLink string
}
