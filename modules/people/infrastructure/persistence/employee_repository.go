package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/iota-uz/teamtrack/modules/people/domain/aggregates/employee"
	"github.com/iota-uz/teamtrack/modules/people/infrastructure/persistence/models"
	"github.com/iota-uz/teamtrack/pkg/composables"
	"github.com/iota-uz/teamtrack/pkg/repo"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
)

const (
	employeeFindQuery = `
        SELECT
            e.id,
            e.emp_id,
            e.emp_name,
            e.emp_email,
            e.emp_phone,
            e.emp_designation,
            e.emp_department,
            e.emp_hierarchy,
            e.manager_id,
            e.created_at,
            e.updated_at
        FROM employees e`

	employeeExistsQuery = `SELECT 1 FROM employees e`
)

type PgEmployeeRepository struct{}

func NewEmployeeRepository() employee.Repository {
	return &PgEmployeeRepository{}
}

func (g *PgEmployeeRepository) GetAll(ctx context.Context) ([]employee.Employee, error) {
	employees, err := g.queryEmployees(ctx, repo.Join(employeeFindQuery, "ORDER BY e.emp_id"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get all employees")
	}
	return employees, nil
}

func (g *PgEmployeeRepository) GetPaginated(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	if params == nil {
		params = &employee.FindParams{}
	}

	var where []string
	var args []interface{}
	if params.EmpIDs != nil {
		where = append(where, fmt.Sprintf("e.emp_id = ANY($%d)", len(args)+1))
		args = append(args, params.EmpIDs)
	}

	query := repo.Join(
		employeeFindQuery,
		repo.JoinWhere(where...),
		"ORDER BY e.emp_id",
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)
	employees, err := g.queryEmployees(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get paginated employees")
	}
	return employees, nil
}

func (g *PgEmployeeRepository) GetByEmpID(ctx context.Context, empID string) (employee.Employee, error) {
	employees, err := g.queryEmployees(ctx, repo.Join(employeeFindQuery, "WHERE e.emp_id = $1"), empID)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query employee with emp_id: %s", empID))
	}
	if len(employees) == 0 {
		return nil, fmt.Errorf("emp_id: %s: %w", empID, ErrEmployeeNotFound)
	}
	return employees[0], nil
}

func (g *PgEmployeeRepository) DirectReports(ctx context.Context, managerID string) ([]employee.Employee, error) {
	employees, err := g.queryEmployees(ctx, repo.Join(employeeFindQuery, "WHERE e.manager_id = $1"), managerID)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query direct reports of: %s", managerID))
	}
	return employees, nil
}

func (g *PgEmployeeRepository) EmpIDExists(ctx context.Context, empID string) (bool, error) {
	return g.exists(ctx, "WHERE e.emp_id = $1", empID)
}

func (g *PgEmployeeRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return g.exists(ctx, "WHERE e.emp_email = $1", email)
}

func (g *PgEmployeeRepository) Create(ctx context.Context, data employee.Employee) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	dbEmployee := ToDBEmployee(data)
	fields := []string{
		"emp_id",
		"emp_name",
		"emp_email",
		"emp_phone",
		"emp_designation",
		"emp_department",
		"emp_hierarchy",
		"manager_id",
		"created_at",
		"updated_at",
	}
	values := []interface{}{
		dbEmployee.EmpID,
		dbEmployee.Name,
		dbEmployee.Email,
		dbEmployee.Phone,
		dbEmployee.Designation,
		dbEmployee.Department,
		dbEmployee.Hierarchy,
		dbEmployee.ManagerID,
		dbEmployee.CreatedAt,
		dbEmployee.UpdatedAt,
	}

	q := repo.Insert("employees", fields, "id")
	if err := tx.QueryRow(ctx, q, values...).Scan(&dbEmployee.ID); err != nil {
		return nil, errors.Wrap(err, "failed to insert employee")
	}

	return g.GetByEmpID(ctx, dbEmployee.EmpID)
}

func (g *PgEmployeeRepository) Update(ctx context.Context, data employee.Employee) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	dbEmployee := ToDBEmployee(data)
	fields := []string{
		"emp_name",
		"emp_email",
		"emp_phone",
		"emp_designation",
		"emp_department",
		"emp_hierarchy",
		"manager_id",
		"updated_at",
	}
	values := []interface{}{
		dbEmployee.Name,
		dbEmployee.Email,
		dbEmployee.Phone,
		dbEmployee.Designation,
		dbEmployee.Department,
		dbEmployee.Hierarchy,
		dbEmployee.ManagerID,
		dbEmployee.UpdatedAt,
	}

	q := repo.Update("employees", fields, fmt.Sprintf("emp_id = $%d", len(values)+1))
	values = append(values, dbEmployee.EmpID)
	if _, err := tx.Exec(ctx, q, values...); err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to update employee: %s", dbEmployee.EmpID))
	}

	return g.GetByEmpID(ctx, dbEmployee.EmpID)
}

func (g *PgEmployeeRepository) exists(ctx context.Context, where string, args ...interface{}) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get transaction")
	}

	query := repo.Exists(repo.Join(employeeExistsQuery, where))
	exists := false
	if err := tx.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "checking employee existence failed")
	}
	return exists, nil
}

func (g *PgEmployeeRepository) queryEmployees(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var dbEmployees []*models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(
			&e.ID,
			&e.EmpID,
			&e.Name,
			&e.Email,
			&e.Phone,
			&e.Designation,
			&e.Department,
			&e.Hierarchy,
			&e.ManagerID,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan employee row")
		}
		dbEmployees = append(dbEmployees, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	entities := make([]employee.Employee, 0, len(dbEmployees))
	for _, e := range dbEmployees {
		entities = append(entities, ToDomainEmployee(e))
	}
	return entities, nil
}
