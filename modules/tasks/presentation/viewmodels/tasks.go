package viewmodels

// Task mirrors the wire shape of a stored task. Every field is a string; the
// date columns are whatever the client sent and are echoed back untouched.
type Task struct {
	ID           string `json:"id"`
	Name         string `json:"task_name"`
	Description  string `json:"task_description"`
	Status       string `json:"task_status"`
	AssignedTo   string `json:"task_assigned_to"`
	AssignedBy   string `json:"task_assigned_by"`
	AssignedDate string `json:"task_assigned_date"`
	DueDate      string `json:"task_due_date"`
	Priority     string `json:"task_priority"`
	Tags         string `json:"task_tags"`
	Notes        string `json:"task_notes"`
	CreatedDate  string `json:"task_created_at"`
	UpdatedDate  string `json:"task_updated_at"`
	Duration     string `json:"task_duration"`
}
