package persistence

import (
	"database/sql"

	"github.com/iota-uz/teamtrack/modules/people/domain/aggregates/employee"
	"github.com/iota-uz/teamtrack/modules/people/infrastructure/persistence/models"
)

func ToDomainEmployee(dbEmployee *models.Employee) employee.Employee {
	return employee.New(
		dbEmployee.EmpID,
		dbEmployee.Name,
		dbEmployee.Email,
		employee.WithID(dbEmployee.ID),
		employee.WithPhone(dbEmployee.Phone.String),
		employee.WithDesignation(dbEmployee.Designation.String),
		employee.WithDepartment(dbEmployee.Department.String),
		employee.WithHierarchy(dbEmployee.Hierarchy.String),
		employee.WithManagerID(dbEmployee.ManagerID.String),
		employee.WithCreatedAt(dbEmployee.CreatedAt),
		employee.WithUpdatedAt(dbEmployee.UpdatedAt),
	)
}

func ToDBEmployee(entity employee.Employee) *models.Employee {
	return &models.Employee{
		ID:          entity.ID(),
		EmpID:       entity.EmpID(),
		Name:        entity.Name(),
		Email:       entity.Email(),
		Phone:       nullString(entity.Phone()),
		Designation: nullString(entity.Designation()),
		Department:  nullString(entity.Department()),
		Hierarchy:   nullString(entity.Hierarchy()),
		ManagerID:   nullString(entity.ManagerID()),
		CreatedAt:   entity.CreatedAt(),
		UpdatedAt:   entity.UpdatedAt(),
	}
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}
