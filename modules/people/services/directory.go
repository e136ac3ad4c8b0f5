package services

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/teamtrack/modules/people/domain/aggregates/employee"
	"github.com/iota-uz/teamtrack/modules/people/domain/hierarchy"
	"github.com/iota-uz/teamtrack/modules/people/infrastructure/persistence"
)

// employeeDirectory adapts the employee repository to the read port the
// hierarchy engine traverses.
type employeeDirectory struct {
	repo employee.Repository
}

func NewEmployeeDirectory(repo employee.Repository) hierarchy.Directory {
	return &employeeDirectory{repo: repo}
}

func (d *employeeDirectory) FindByEmpID(ctx context.Context, empID string) (hierarchy.Member, error) {
	e, err := d.repo.GetByEmpID(ctx, empID)
	if errors.Is(err, persistence.ErrEmployeeNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (d *employeeDirectory) DirectReports(ctx context.Context, managerID string) ([]hierarchy.Member, error) {
	reports, err := d.repo.DirectReports(ctx, managerID)
	if err != nil {
		return nil, err
	}
	members := make([]hierarchy.Member, len(reports))
	for i, e := range reports {
		members[i] = e
	}
	return members, nil
}
