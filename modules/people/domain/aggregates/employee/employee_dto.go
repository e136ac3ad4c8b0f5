package employee

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/teamtrack/pkg/constants"
)

// CreateDTO carries the writable employee fields. JSON keys match the wire
// names the directory has always used, which are also the CSV header names.
type CreateDTO struct {
	EmpID       string `json:"emp_id" validate:"required"`
	Name        string `json:"emp_name" validate:"required"`
	Email       string `json:"emp_email" validate:"required,email"`
	Phone       string `json:"emp_phone"`
	Designation string `json:"emp_designation"`
	Department  string `json:"emp_department"`
	Hierarchy   string `json:"emp_hierarchy"`
	ManagerID   string `json:"manager_id"`
}

func (d *CreateDTO) Normalize() {
	d.EmpID = strings.TrimSpace(d.EmpID)
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Designation = strings.TrimSpace(d.Designation)
	d.Department = strings.TrimSpace(d.Department)
	d.Hierarchy = strings.TrimSpace(d.Hierarchy)
	d.ManagerID = strings.TrimSpace(d.ManagerID)
}

func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	return fieldErrors(errs.(validator.ValidationErrors)), false
}

func (d *CreateDTO) ToEntity() Employee {
	return New(
		d.EmpID, d.Name, d.Email,
		WithPhone(d.Phone),
		WithDesignation(d.Designation),
		WithDepartment(d.Department),
		WithHierarchy(d.Hierarchy),
		WithManagerID(d.ManagerID),
	)
}

// UpdateDTO carries a partial update. Empty fields mean "keep the stored
// value"; there is no way to blank a field through this surface.
type UpdateDTO struct {
	Name        string `json:"emp_name"`
	Email       string `json:"emp_email" validate:"omitempty,email"`
	Phone       string `json:"emp_phone"`
	Designation string `json:"emp_designation"`
	Department  string `json:"emp_department"`
	Hierarchy   string `json:"emp_hierarchy"`
	ManagerID   string `json:"manager_id"`
}

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Designation = strings.TrimSpace(d.Designation)
	d.Department = strings.TrimSpace(d.Department)
	d.Hierarchy = strings.TrimSpace(d.Hierarchy)
	d.ManagerID = strings.TrimSpace(d.ManagerID)
}

func (d *UpdateDTO) Ok() (map[string]string, bool) {
	d.Normalize()
	errs := constants.Validate.Struct(d)
	if errs == nil {
		return map[string]string{}, true
	}
	return fieldErrors(errs.(validator.ValidationErrors)), false
}

// Apply merges the update into stored and returns the resulting entity.
func (d *UpdateDTO) Apply(stored Employee) Employee {
	return New(
		stored.EmpID(),
		coalesce(d.Name, stored.Name()),
		coalesce(d.Email, stored.Email()),
		WithID(stored.ID()),
		WithPhone(coalesce(d.Phone, stored.Phone())),
		WithDesignation(coalesce(d.Designation, stored.Designation())),
		WithDepartment(coalesce(d.Department, stored.Department())),
		WithHierarchy(coalesce(d.Hierarchy, stored.Hierarchy())),
		WithManagerID(coalesce(d.ManagerID, stored.ManagerID())),
		WithCreatedAt(stored.CreatedAt()),
		WithUpdatedAt(time.Now()),
	)
}

func coalesce(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func fieldErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, err := range errs {
		out[err.Field()] = fmt.Sprintf("%s failed validation on the %q rule", err.Field(), err.Tag())
	}
	return out
}
