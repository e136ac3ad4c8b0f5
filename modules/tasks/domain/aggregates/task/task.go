package task

import "strings"

// Task is the work-item aggregate. ID is a caller-supplied or generated
// string key. Date fields are opaque strings: the system never parses or
// orders by them, it only stores and returns what clients sent.
type Task interface {
	ID() string
	Name() string
	Description() string
	Status() string
	AssignedTo() string
	AssignedBy() string
	AssignedDate() string
	DueDate() string
	Priority() string
	Tags() string
	Notes() string
	CreatedDate() string
	UpdatedDate() string
	Duration() string
}

type Option func(t *task)

func WithDescription(description string) Option {
	return func(t *task) {
		t.description = description
	}
}

func WithStatus(status string) Option {
	return func(t *task) {
		t.status = strings.TrimSpace(status)
	}
}

func WithAssignedTo(assignedTo string) Option {
	return func(t *task) {
		t.assignedTo = strings.TrimSpace(assignedTo)
	}
}

func WithAssignedBy(assignedBy string) Option {
	return func(t *task) {
		t.assignedBy = strings.TrimSpace(assignedBy)
	}
}

func WithAssignedDate(assignedDate string) Option {
	return func(t *task) {
		t.assignedDate = assignedDate
	}
}

func WithDueDate(dueDate string) Option {
	return func(t *task) {
		t.dueDate = dueDate
	}
}

func WithPriority(priority string) Option {
	return func(t *task) {
		t.priority = strings.TrimSpace(priority)
	}
}

func WithTags(tags string) Option {
	return func(t *task) {
		t.tags = tags
	}
}

func WithNotes(notes string) Option {
	return func(t *task) {
		t.notes = notes
	}
}

func WithCreatedDate(createdDate string) Option {
	return func(t *task) {
		t.createdDate = createdDate
	}
}

func WithUpdatedDate(updatedDate string) Option {
	return func(t *task) {
		t.updatedDate = updatedDate
	}
}

func WithDuration(duration string) Option {
	return func(t *task) {
		t.duration = strings.TrimSpace(duration)
	}
}

func New(id, name string, opts ...Option) Task {
	t := &task{
		id:   strings.TrimSpace(id),
		name: strings.TrimSpace(name),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type task struct {
	id           string
	name         string
	description  string
	status       string
	assignedTo   string
	assignedBy   string
	assignedDate string
	dueDate      string
	priority     string
	tags         string
	notes        string
	createdDate  string
	updatedDate  string
	duration     string
}

func (t *task) ID() string           { return t.id }
func (t *task) Name() string         { return t.name }
func (t *task) Description() string  { return t.description }
func (t *task) Status() string       { return t.status }
func (t *task) AssignedTo() string   { return t.assignedTo }
func (t *task) AssignedBy() string   { return t.assignedBy }
func (t *task) AssignedDate() string { return t.assignedDate }
func (t *task) DueDate() string      { return t.dueDate }
func (t *task) Priority() string     { return t.priority }
func (t *task) Tags() string         { return t.tags }
func (t *task) Notes() string        { return t.notes }
func (t *task) CreatedDate() string  { return t.createdDate }
func (t *task) UpdatedDate() string  { return t.updatedDate }
func (t *task) Duration() string     { return t.duration }
