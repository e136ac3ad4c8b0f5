package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/iota-uz/teamtrack/modules/tasks/domain/aggregates/task"
	"github.com/iota-uz/teamtrack/modules/tasks/infrastructure/persistence/models"
	"github.com/iota-uz/teamtrack/pkg/composables"
	"github.com/iota-uz/teamtrack/pkg/repo"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

const (
	taskFindQuery = `
        SELECT
            t.id,
            t.task_name,
            t.task_description,
            t.task_status,
            t.task_assigned_to,
            t.task_assigned_by,
            t.task_assigned_date,
            t.task_due_date,
            t.task_priority,
            t.task_tags,
            t.task_notes,
            t.task_created_at,
            t.task_updated_at,
            t.task_duration
        FROM tasks t`

	taskExistsQuery = `SELECT 1 FROM tasks t`
)

type PgTaskRepository struct{}

func NewTaskRepository() task.Repository {
	return &PgTaskRepository{}
}

func (g *PgTaskRepository) GetPaginated(ctx context.Context, params *task.FindParams) ([]task.Task, error) {
	if params == nil {
		params = &task.FindParams{}
	}

	var where []string
	var args []interface{}
	if params.AssigneeIDs != nil {
		where = append(where, fmt.Sprintf("t.task_assigned_to = ANY($%d)", len(args)+1))
		args = append(args, params.AssigneeIDs)
	}

	query := repo.Join(
		taskFindQuery,
		repo.JoinWhere(where...),
		"ORDER BY t.id",
		repo.FormatLimitOffset(params.Limit, params.Offset),
	)
	tasks, err := g.queryTasks(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get paginated tasks")
	}
	return tasks, nil
}

func (g *PgTaskRepository) GetByID(ctx context.Context, id string) (task.Task, error) {
	tasks, err := g.queryTasks(ctx, repo.Join(taskFindQuery, "WHERE t.id = $1"), id)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query task with id: %s", id))
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("id: %s: %w", id, ErrTaskNotFound)
	}
	return tasks[0], nil
}

func (g *PgTaskRepository) Exists(ctx context.Context, id string) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, errors.Wrap(err, "failed to get transaction")
	}

	query := repo.Exists(repo.Join(taskExistsQuery, "WHERE t.id = $1"))
	exists := false
	if err := tx.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "checking task existence failed")
	}
	return exists, nil
}

func (g *PgTaskRepository) Create(ctx context.Context, data task.Task) (task.Task, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	dbTask := ToDBTask(data)
	fields := []string{
		"id",
		"task_name",
		"task_description",
		"task_status",
		"task_assigned_to",
		"task_assigned_by",
		"task_assigned_date",
		"task_due_date",
		"task_priority",
		"task_tags",
		"task_notes",
		"task_created_at",
		"task_updated_at",
		"task_duration",
	}
	values := []interface{}{
		dbTask.ID,
		dbTask.Name,
		dbTask.Description,
		dbTask.Status,
		dbTask.AssignedTo,
		dbTask.AssignedBy,
		dbTask.AssignedDate,
		dbTask.DueDate,
		dbTask.Priority,
		dbTask.Tags,
		dbTask.Notes,
		dbTask.CreatedDate,
		dbTask.UpdatedDate,
		dbTask.Duration,
	}

	if _, err := tx.Exec(ctx, repo.Insert("tasks", fields), values...); err != nil {
		return nil, errors.Wrap(err, "failed to insert task")
	}

	return g.GetByID(ctx, dbTask.ID)
}

func (g *PgTaskRepository) Update(ctx context.Context, data task.Task) (task.Task, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	dbTask := ToDBTask(data)
	fields := []string{
		"task_name",
		"task_description",
		"task_status",
		"task_assigned_to",
		"task_assigned_by",
		"task_assigned_date",
		"task_due_date",
		"task_priority",
		"task_tags",
		"task_notes",
		"task_created_at",
		"task_updated_at",
		"task_duration",
	}
	values := []interface{}{
		dbTask.Name,
		dbTask.Description,
		dbTask.Status,
		dbTask.AssignedTo,
		dbTask.AssignedBy,
		dbTask.AssignedDate,
		dbTask.DueDate,
		dbTask.Priority,
		dbTask.Tags,
		dbTask.Notes,
		dbTask.CreatedDate,
		dbTask.UpdatedDate,
		dbTask.Duration,
	}

	q := repo.Update("tasks", fields, fmt.Sprintf("id = $%d", len(values)+1))
	values = append(values, dbTask.ID)
	if _, err := tx.Exec(ctx, q, values...); err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to update task: %s", dbTask.ID))
	}

	return g.GetByID(ctx, dbTask.ID)
}

func (g *PgTaskRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]task.Task, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var dbTasks []*models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Description,
			&t.Status,
			&t.AssignedTo,
			&t.AssignedBy,
			&t.AssignedDate,
			&t.DueDate,
			&t.Priority,
			&t.Tags,
			&t.Notes,
			&t.CreatedDate,
			&t.UpdatedDate,
			&t.Duration,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan task row")
		}
		dbTasks = append(dbTasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	entities := make([]task.Task, 0, len(dbTasks))
	for _, t := range dbTasks {
		entities = append(entities, ToDomainTask(t))
	}
	return entities, nil
}
