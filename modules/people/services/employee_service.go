package services

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iota-uz/teamtrack/modules/people/domain/aggregates/employee"
	"github.com/iota-uz/teamtrack/modules/people/domain/hierarchy"
	"github.com/iota-uz/teamtrack/modules/people/infrastructure/persistence"
	"github.com/iota-uz/teamtrack/pkg/composables"
	"github.com/iota-uz/teamtrack/pkg/csvutil"
	"github.com/iota-uz/teamtrack/pkg/eventbus"
	"github.com/iota-uz/teamtrack/pkg/serrors"
)

// employeeCSVHeader is the column set shared by the upload endpoint and the
// data CLI. The first three columns are required per row.
var employeeCSVHeader = []string{
	"emp_id", "emp_name", "emp_email", "emp_phone",
	"emp_designation", "emp_department", "emp_hierarchy", "manager_id",
}

// ImportSummary reports a bulk employee import: rows that failed validation
// or collided with existing records are skipped, not fatal.
type ImportSummary struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

type EmployeeService struct {
	repo      employee.Repository
	engine    *hierarchy.Engine
	publisher eventbus.EventBus
}

func NewEmployeeService(repo employee.Repository, engine *hierarchy.Engine, publisher eventbus.EventBus) *EmployeeService {
	return &EmployeeService{
		repo:      repo,
		engine:    engine,
		publisher: publisher,
	}
}

// Engine exposes the hierarchy engine for collaborators that scope by
// organizational position, such as the task service.
func (s *EmployeeService) Engine() *hierarchy.Engine {
	return s.engine
}

func (s *EmployeeService) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]employee.Employee, error) {
		return s.repo.GetAll(txCtx)
	})
}

func (s *EmployeeService) GetByEmpID(ctx context.Context, empID string) (employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (employee.Employee, error) {
		return s.repo.GetByEmpID(txCtx, empID)
	})
}

func (s *EmployeeService) Create(ctx context.Context, data *employee.CreateDTO) (employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (employee.Employee, error) {
		entity := data.ToEntity()

		taken, err := s.repo.EmpIDExists(txCtx, entity.EmpID())
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, serrors.BadRequest("EMP_ID_TAKEN", "user with this emp_id already exists")
		}

		taken, err = s.repo.EmailExists(txCtx, entity.Email())
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, serrors.BadRequest("EMAIL_TAKEN", "user with this emp_email already exists")
		}

		if entity.ManagerID() != "" {
			if err := s.engine.ValidateManager(txCtx, entity.ManagerID(), entity.Designation(), entity.EmpID()); err != nil {
				return nil, mapHierarchyError(err)
			}
		}

		created, err := s.repo.Create(txCtx, entity)
		if err != nil {
			return nil, mapEmployeePgError(err)
		}
		s.publisher.Publish(employee.CreatedEvent{Result: created})
		return created, nil
	})
}

// Update applies a partial update to the employee identified by empID. The
// manager reference is re-validated only when it actually changes, against
// the designation the record will hold after the update.
func (s *EmployeeService) Update(ctx context.Context, empID string, data *employee.UpdateDTO) (employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (employee.Employee, error) {
		stored, err := s.repo.GetByEmpID(txCtx, empID)
		if errors.Is(err, persistence.ErrEmployeeNotFound) {
			return nil, serrors.NotFound("USER_NOT_FOUND", "user not found")
		}
		if err != nil {
			return nil, err
		}

		if data.Email != "" && data.Email != stored.Email() {
			taken, err := s.repo.EmailExists(txCtx, data.Email)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, serrors.BadRequest("EMAIL_TAKEN", "user with this emp_email already exists")
			}
		}

		entity := data.Apply(stored)
		if data.ManagerID != "" && data.ManagerID != stored.ManagerID() {
			if err := s.engine.ValidateManager(txCtx, entity.ManagerID(), entity.Designation(), entity.EmpID()); err != nil {
				return nil, mapHierarchyError(err)
			}
		}

		updated, err := s.repo.Update(txCtx, entity)
		if err != nil {
			return nil, mapEmployeePgError(err)
		}
		s.publisher.Publish(employee.UpdatedEvent{Result: updated})
		return updated, nil
	})
}

// VisibleEmployees lists the employees callerID may see, optionally rooted at
// targetID. A target outside the caller's view scope yields an empty result
// rather than an error, so callers cannot probe for identities they are not
// allowed to observe.
func (s *EmployeeService) VisibleEmployees(ctx context.Context, callerID, targetID string) ([]employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]employee.Employee, error) {
		callerScope, err := s.engine.ViewScope(txCtx, callerID)
		if err != nil {
			return nil, err
		}

		targetRoot := targetID
		if targetRoot == "" {
			targetRoot = callerID
		}
		if !callerScope.Contains(targetRoot) {
			return []employee.Employee{}, nil
		}

		displayScope, err := s.engine.ViewScope(txCtx, targetRoot)
		if err != nil {
			return nil, err
		}
		return s.repo.GetPaginated(txCtx, &employee.FindParams{EmpIDs: displayScope.IDs()})
	})
}

// ImportCSV reads employee rows and inserts them one by one. Rows missing a
// required field, colliding on emp_id or email, or failing manager
// validation are counted as skipped; anything else aborts the import.
func (s *EmployeeService) ImportCSV(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	cr := csvutil.NewReader(r)
	header, err := csvutil.ReadHeader(cr)
	if err != nil {
		return nil, serrors.BadRequest("INVALID_FILE", err.Error())
	}
	if err := csvutil.RequireColumns(header, "emp_id", "emp_name", "emp_email"); err != nil {
		return nil, serrors.BadRequest("INVALID_FILE", err.Error())
	}
	index := csvutil.HeaderIndex(header)

	summary := &ImportSummary{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, serrors.BadRequest("INVALID_FILE", err.Error())
		}

		dto := &employee.CreateDTO{
			EmpID:       csvutil.Field(record, index, "emp_id"),
			Name:        csvutil.Field(record, index, "emp_name"),
			Email:       csvutil.Field(record, index, "emp_email"),
			Phone:       csvutil.Field(record, index, "emp_phone"),
			Designation: csvutil.Field(record, index, "emp_designation"),
			Department:  csvutil.Field(record, index, "emp_department"),
			Hierarchy:   csvutil.Field(record, index, "emp_hierarchy"),
			ManagerID:   csvutil.Field(record, index, "manager_id"),
		}
		if _, ok := dto.Ok(); !ok {
			summary.Skipped++
			continue
		}
		if _, err := s.Create(ctx, dto); err != nil {
			if _, ok := serrors.AsBase(err); ok {
				summary.Skipped++
				continue
			}
			return nil, err
		}
		summary.Added++
	}
	return summary, nil
}

// ExportCSV writes the whole directory, ordered by emp_id, and returns the
// number of rows written.
func (s *EmployeeService) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	employees, err := s.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(employeeCSVHeader); err != nil {
		return 0, err
	}
	for _, e := range employees {
		row := []string{
			e.EmpID(), e.Name(), e.Email(), e.Phone(),
			e.Designation(), e.Department(), e.Hierarchy(), e.ManagerID(),
		}
		if err := cw.Write(row); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(employees), cw.Error()
}

// mapHierarchyError converts engine failures into the coded errors the API
// surfaces.
func mapHierarchyError(err error) error {
	if errors.Is(err, hierarchy.ErrManagerNotFound) {
		return serrors.BadRequest("MANAGER_NOT_FOUND", "manager not found")
	}
	var selfErr *hierarchy.SelfManagementError
	if errors.As(err, &selfErr) {
		return serrors.BadRequest("SELF_MANAGEMENT_NOT_ALLOWED", selfErr.Error())
	}
	var rankErr *hierarchy.InsufficientManagerRankError
	if errors.As(err, &rankErr) {
		return serrors.BadRequest("INSUFFICIENT_MANAGER_RANK", rankErr.Error())
	}
	return err
}

// mapEmployeePgError converts unique violations that race past the
// pre-checks into the same coded errors the pre-checks produce.
func mapEmployeePgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "employees_emp_id_key":
		return serrors.BadRequest("EMP_ID_TAKEN", "user with this emp_id already exists")
	case "employees_emp_email_key":
		return serrors.BadRequest("EMAIL_TAKEN", "user with this emp_email already exists")
	}
	return err
}
