package tasks

// Status values used by the Tasks API.
type Status string

const (
	StatusNeedsAction Status = "needsAction"
	StatusCompleted   Status = "completed"
)

// Task is a Google Tasks item. Only the fields this tool reads or writes
// are mapped.
type Task struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Status  Status `json:"status,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Due     string `json:"due,omitempty"`
	Updated string `json:"updated,omitempty"`
}

// TaskList is a Google Tasks list.
type TaskList struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ListOptions contains optional parameters for listing tasks
type ListOptions struct {
	ShowCompleted bool
	MaxResults    int
}

// taskPage represents the list tasks response
type taskPage struct {
	Items         []Task `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// taskListPage represents the list task lists response
type taskListPage struct {
	Items         []TaskList `json:"items"`
	NextPageToken string     `json:"nextPageToken"`
}

// taskUpdate is the PATCH body for a status change.
type taskUpdate struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status Status `json:"status"`
}
