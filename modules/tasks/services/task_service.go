package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iota-uz/teamtrack/modules/people/domain/hierarchy"
	peoplepersistence "github.com/iota-uz/teamtrack/modules/people/infrastructure/persistence"
	peopleservices "github.com/iota-uz/teamtrack/modules/people/services"
	"github.com/iota-uz/teamtrack/modules/tasks/domain/aggregates/task"
	"github.com/iota-uz/teamtrack/modules/tasks/infrastructure/persistence"
	"github.com/iota-uz/teamtrack/pkg/composables"
	"github.com/iota-uz/teamtrack/pkg/csvutil"
	"github.com/iota-uz/teamtrack/pkg/eventbus"
	"github.com/iota-uz/teamtrack/pkg/serrors"
)

type TaskService struct {
	repo      task.Repository
	employees *peopleservices.EmployeeService
	publisher eventbus.EventBus
}

func NewTaskService(repo task.Repository, employees *peopleservices.EmployeeService, publisher eventbus.EventBus) *TaskService {
	return &TaskService{
		repo:      repo,
		employees: employees,
		publisher: publisher,
	}
}

// Create stores a task, generating a 16-hex-char id when the caller did not
// supply one. The assignee must exist and sit below the managerial tier.
func (s *TaskService) Create(ctx context.Context, data *task.CreateDTO) (task.Task, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (task.Task, error) {
		dto := *data
		if dto.ID == "" {
			id, err := newTaskID()
			if err != nil {
				return nil, err
			}
			dto.ID = id
		}
		entity := dto.ToEntity()

		taken, err := s.repo.Exists(txCtx, entity.ID())
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, serrors.BadRequest("TASK_ID_TAKEN", "task with this ID already exists")
		}

		if err := s.validateAssignment(txCtx, entity); err != nil {
			return nil, err
		}

		created, err := s.repo.Create(txCtx, entity)
		if err != nil {
			return nil, mapTaskPgError(err)
		}
		s.publisher.Publish(task.CreatedEvent{Result: created})
		return created, nil
	})
}

// Update replaces every stored field of the task with the incoming row. The
// assignment rules are re-checked in full, exactly as on create.
func (s *TaskService) Update(ctx context.Context, taskID string, data *task.UpdateDTO) (task.Task, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (task.Task, error) {
		if _, err := s.repo.GetByID(txCtx, taskID); err != nil {
			if errors.Is(err, persistence.ErrTaskNotFound) {
				return nil, serrors.NotFound("TASK_NOT_FOUND", "task not found")
			}
			return nil, err
		}

		entity := data.ToEntity(taskID)
		if err := s.validateAssignment(txCtx, entity); err != nil {
			return nil, err
		}

		updated, err := s.repo.Update(txCtx, entity)
		if err != nil {
			return nil, err
		}
		s.publisher.Publish(task.UpdatedEvent{Result: updated})
		return updated, nil
	})
}

// VisibleTasks lists the tasks assigned to anyone inside the caller's view,
// optionally rooted at targetID. A target outside the caller's view scope
// yields an empty result rather than an error.
func (s *TaskService) VisibleTasks(ctx context.Context, callerID, targetID string) ([]task.Task, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) ([]task.Task, error) {
		engine := s.employees.Engine()

		callerScope, err := engine.ViewScope(txCtx, callerID)
		if err != nil {
			return nil, err
		}

		targetRoot := targetID
		if targetRoot == "" {
			targetRoot = callerID
		}
		if !callerScope.Contains(targetRoot) {
			return []task.Task{}, nil
		}

		displayScope, err := engine.ViewScope(txCtx, targetRoot)
		if err != nil {
			return nil, err
		}
		return s.repo.GetPaginated(txCtx, &task.FindParams{AssigneeIDs: displayScope.IDs()})
	})
}

// BulkImport loads a CSV of tasks inside one transaction. Every row is
// validated before anything is inserted, and the first problem aborts the
// whole batch; a clean file reports the number of rows added.
func (s *TaskService) BulkImport(ctx context.Context, r io.Reader) (int, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (int, error) {
		cr := csvutil.NewReader(r)
		header, err := csvutil.ReadHeader(cr)
		if err != nil {
			return 0, serrors.BadRequest("INVALID_FILE", err.Error())
		}
		index := csvutil.HeaderIndex(header)
		_, hasID := index["id"]
		_, hasStatus := index["task_status"]
		_, hasDuration := index["task_duration"]

		var records [][]string
		for {
			record, err := cr.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return 0, serrors.BadRequest("INVALID_FILE", err.Error())
			}
			records = append(records, record)
		}

		validated := make([]task.Task, 0, len(records))
		for i, record := range records {
			rowNum := i + 1

			name := csvutil.Field(record, index, "task_name")
			if name == "" {
				return 0, serrors.BadRequest("INVALID_ROW", fmt.Sprintf("Row %d: task_name is required", rowNum))
			}
			assignedTo := csvutil.Field(record, index, "task_assigned_to")
			if assignedTo == "" {
				return 0, serrors.BadRequest("INVALID_ROW", fmt.Sprintf("Row %d: task_assigned_to is required", rowNum))
			}

			// A file without a duration column defaults every row to "0",
			// which is rejected; an empty cell in a present column is kept.
			duration := "0"
			if hasDuration {
				duration = csvutil.Field(record, index, "task_duration")
			}
			if duration == "0" {
				return 0, serrors.BadRequest("INVALID_ROW", fmt.Sprintf("Row %d: task_duration cannot be 0", rowNum))
			}

			assignee, err := s.employees.GetByEmpID(txCtx, assignedTo)
			if errors.Is(err, peoplepersistence.ErrEmployeeNotFound) {
				return 0, serrors.BadRequest("INVALID_ROW", fmt.Sprintf("Row %d: assigned user '%s' not found", rowNum, assignedTo))
			}
			if err != nil {
				return 0, err
			}
			if err := s.employees.Engine().CheckAssignable(assignee); err != nil {
				var notAssignable *hierarchy.NotAssignableError
				if errors.As(err, &notAssignable) {
					return 0, serrors.BadRequest("INVALID_ROW", fmt.Sprintf("Row %d: %s", rowNum, notAssignable.Error()))
				}
				return 0, err
			}

			id := ""
			if hasID {
				id = csvutil.Field(record, index, "id")
			}
			if id == "" {
				id, err = newTaskID()
				if err != nil {
					return 0, err
				}
			}
			status := "todo"
			if hasStatus {
				status = csvutil.Field(record, index, "task_status")
			}

			validated = append(validated, task.New(id, name,
				task.WithDescription(csvutil.Field(record, index, "task_description")),
				task.WithStatus(status),
				task.WithAssignedTo(assignedTo),
				task.WithAssignedBy(csvutil.Field(record, index, "task_assigned_by")),
				task.WithAssignedDate(csvutil.Field(record, index, "task_assigned_date")),
				task.WithDueDate(csvutil.Field(record, index, "task_due_date")),
				task.WithPriority(csvutil.Field(record, index, "task_priority")),
				task.WithTags(csvutil.Field(record, index, "task_tags")),
				task.WithNotes(csvutil.Field(record, index, "task_notes")),
				task.WithCreatedDate(csvutil.Field(record, index, "task_created_at")),
				task.WithUpdatedDate(csvutil.Field(record, index, "task_updated_at")),
				task.WithDuration(duration),
			))
		}

		added := 0
		for _, entity := range validated {
			taken, err := s.repo.Exists(txCtx, entity.ID())
			if err != nil {
				return 0, err
			}
			if taken {
				return 0, serrors.BadRequest("TASK_ID_TAKEN", fmt.Sprintf("task ID %s already exists", entity.ID()))
			}
			if _, err := s.repo.Create(txCtx, entity); err != nil {
				return 0, mapTaskPgError(err)
			}
			added++
		}
		return added, nil
	})
}

// validateAssignment enforces the field rules shared by create and update:
// non-zero duration, an assignee that exists, and an assignee below the
// managerial tier.
func (s *TaskService) validateAssignment(ctx context.Context, entity task.Task) error {
	if entity.Duration() == "0" {
		return serrors.BadRequest("INVALID_DURATION", "task duration cannot be 0")
	}
	if entity.AssignedTo() == "" {
		return serrors.BadRequest("ASSIGNEE_REQUIRED", "task must be assigned to a user")
	}

	assignee, err := s.employees.GetByEmpID(ctx, entity.AssignedTo())
	if errors.Is(err, peoplepersistence.ErrEmployeeNotFound) {
		return serrors.BadRequest("ASSIGNEE_NOT_FOUND", "assigned user not found")
	}
	if err != nil {
		return err
	}

	if err := s.employees.Engine().CheckAssignable(assignee); err != nil {
		var notAssignable *hierarchy.NotAssignableError
		if errors.As(err, &notAssignable) {
			return serrors.BadRequest("RANK_TOO_HIGH", notAssignable.Error())
		}
		return err
	}
	return nil
}

func newTaskID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "failed to generate task id")
	}
	return hex.EncodeToString(b), nil
}

// mapTaskPgError converts a primary-key violation that raced past the
// pre-check into the same coded error the pre-check produces.
func mapTaskPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "tasks_pkey" {
		return serrors.BadRequest("TASK_ID_TAKEN", "task with this ID already exists")
	}
	return err
}
