package service

// Remote task statuses.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Task is a task as stored by the remote backend.
type Task struct {
	ID     string
	Title  string
	Notes  string
	Status string // StatusNeedsAction or StatusCompleted
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
