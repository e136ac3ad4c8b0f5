package mappers

import (
	"time"

	"github.com/iota-uz/teamtrack/modules/people/domain/aggregates/employee"
	"github.com/iota-uz/teamtrack/modules/people/presentation/viewmodels"
)

func EmployeeToViewModel(e employee.Employee) *viewmodels.Employee {
	return &viewmodels.Employee{
		ID:          e.ID(),
		EmpID:       e.EmpID(),
		Name:        e.Name(),
		Email:       e.Email(),
		Phone:       e.Phone(),
		Designation: e.Designation(),
		Department:  e.Department(),
		Hierarchy:   e.Hierarchy(),
		ManagerID:   e.ManagerID(),
		CreatedAt:   e.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt().Format(time.RFC3339),
	}
}

func EmployeesToViewModels(employees []employee.Employee) []*viewmodels.Employee {
	out := make([]*viewmodels.Employee, 0, len(employees))
	for _, e := range employees {
		out = append(out, EmployeeToViewModel(e))
	}
	return out
}
