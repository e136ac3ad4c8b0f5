package employee

import (
	"strings"
	"time"
)

// Employee is the directory aggregate. EmpID is the stable business key used
// everywhere (sessions, manager references, task assignment); the numeric ID
// only exists for storage.
type Employee interface {
	ID() uint
	EmpID() string
	Name() string
	Email() string
	Phone() string
	Designation() string
	Department() string
	Hierarchy() string
	ManagerID() string
	CreatedAt() time.Time
	UpdatedAt() time.Time
}

type Option func(e *employee)

func WithID(id uint) Option {
	return func(e *employee) {
		e.id = id
	}
}

func WithPhone(phone string) Option {
	return func(e *employee) {
		e.phone = strings.TrimSpace(phone)
	}
}

func WithDesignation(designation string) Option {
	return func(e *employee) {
		e.designation = strings.TrimSpace(designation)
	}
}

func WithDepartment(department string) Option {
	return func(e *employee) {
		e.department = strings.TrimSpace(department)
	}
}

func WithHierarchy(hierarchy string) Option {
	return func(e *employee) {
		e.hierarchy = strings.TrimSpace(hierarchy)
	}
}

func WithManagerID(managerID string) Option {
	return func(e *employee) {
		e.managerID = strings.TrimSpace(managerID)
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(e *employee) {
		e.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(e *employee) {
		e.updatedAt = updatedAt
	}
}

func New(empID, name, email string, opts ...Option) Employee {
	e := &employee{
		empID:     strings.TrimSpace(empID),
		name:      strings.TrimSpace(name),
		email:     strings.ToLower(strings.TrimSpace(email)),
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type employee struct {
	id          uint
	empID       string
	name        string
	email       string
	phone       string
	designation string
	department  string
	hierarchy   string
	managerID   string
	createdAt   time.Time
	updatedAt   time.Time
}

func (e *employee) ID() uint             { return e.id }
func (e *employee) EmpID() string        { return e.empID }
func (e *employee) Name() string         { return e.name }
func (e *employee) Email() string        { return e.email }
func (e *employee) Phone() string        { return e.phone }
func (e *employee) Designation() string  { return e.designation }
func (e *employee) Department() string   { return e.department }
func (e *employee) Hierarchy() string    { return e.hierarchy }
func (e *employee) ManagerID() string    { return e.managerID }
func (e *employee) CreatedAt() time.Time { return e.createdAt }
func (e *employee) UpdatedAt() time.Time { return e.updatedAt }
