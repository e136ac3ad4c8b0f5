package employee

import "context"

type FindParams struct {
	// EmpIDs restricts the result to a visibility scope. Nil means no
	// restriction; an empty non-nil slice matches nothing.
	EmpIDs []string
	Limit  int
	Offset int
}

type Repository interface {
	GetAll(ctx context.Context) ([]Employee, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Employee, error)
	GetByEmpID(ctx context.Context, empID string) (Employee, error)
	EmpIDExists(ctx context.Context, empID string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	DirectReports(ctx context.Context, managerID string) ([]Employee, error)
	Create(ctx context.Context, data Employee) (Employee, error)
	Update(ctx context.Context, data Employee) (Employee, error)
}
