package task

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/teamtrack/pkg/constants"
)

// CreateDTO carries the wire shape of a task. Only the name is mandatory at
// the schema level; duration and assignee rules are enforced by the service
// because their failures carry dedicated codes.
type CreateDTO struct {
	ID           string `json:"id"`
	Name         string `json:"task_name" validate:"required"`
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

func (d *CreateDTO) Normalize() {
	d.ID = strings.TrimSpace(d.ID)
	d.Name = strings.TrimSpace(d.Name)
	d.Status = strings.TrimSpace(d.Status)
	d.AssignedTo = strings.TrimSpace(d.AssignedTo)
	d.AssignedBy = strings.TrimSpace(d.AssignedBy)
	d.Duration = strings.TrimSpace(d.Duration)
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	messages := fieldErrors(errs.(validator.ValidationErrors))
	return messages, len(messages) == 0
}

func (d *CreateDTO) ToEntity() Task {
	return New(d.ID, d.Name, d.options()...)
}

func (d *CreateDTO) options() []Option {
	return []Option{
		WithDescription(d.Description),
		WithStatus(d.Status),
		WithAssignedTo(d.AssignedTo),
		WithAssignedBy(d.AssignedBy),
		WithAssignedDate(d.AssignedDate),
		WithDueDate(d.DueDate),
		WithPriority(d.Priority),
		WithTags(d.Tags),
		WithNotes(d.Notes),
		WithCreatedDate(d.CreatedDate),
		WithUpdatedDate(d.UpdatedDate),
		WithDuration(d.Duration),
	}
}

// UpdateDTO is a full-row replacement: every stored field takes the incoming
// value, empty or not. The task id comes from the URL and cannot change.
type UpdateDTO struct {
	Name         string `json:"task_name" validate:"required"`
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

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Status = strings.TrimSpace(d.Status)
	d.AssignedTo = strings.TrimSpace(d.AssignedTo)
	d.AssignedBy = strings.TrimSpace(d.AssignedBy)
	d.Duration = strings.TrimSpace(d.Duration)
}

func (d *UpdateDTO) Ok() (map[string]string, bool) {
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	messages := fieldErrors(errs.(validator.ValidationErrors))
	return messages, len(messages) == 0
}

func (d *UpdateDTO) ToEntity(id string) Task {
	return New(id, d.Name,
		WithDescription(d.Description),
		WithStatus(d.Status),
		WithAssignedTo(d.AssignedTo),
		WithAssignedBy(d.AssignedBy),
		WithAssignedDate(d.AssignedDate),
		WithDueDate(d.DueDate),
		WithPriority(d.Priority),
		WithTags(d.Tags),
		WithNotes(d.Notes),
		WithCreatedDate(d.CreatedDate),
		WithUpdatedDate(d.UpdatedDate),
		WithDuration(d.Duration),
	)
}

func fieldErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, err := range errs {
		out[err.Field()] = fmt.Sprintf("%s failed validation on the %q rule", err.Field(), err.Tag())
	}
	return out
}
