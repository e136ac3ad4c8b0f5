package services

import (
	"context"
	"encoding/hex"
	"sort"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/teamtrack/modules/people/domain/aggregates/employee"
	"github.com/iota-uz/teamtrack/modules/people/domain/hierarchy"
	peoplepersistence "github.com/iota-uz/teamtrack/modules/people/infrastructure/persistence"
	peopleservices "github.com/iota-uz/teamtrack/modules/people/services"
	"github.com/iota-uz/teamtrack/modules/tasks/domain/aggregates/task"
	"github.com/iota-uz/teamtrack/modules/tasks/infrastructure/persistence"
	"github.com/iota-uz/teamtrack/pkg/composables"
	"github.com/iota-uz/teamtrack/pkg/serrors"
)

// noopTx satisfies pgx.Tx without implementing anything; placing it in the
// context makes the transactional wrappers run their callbacks in place, so
// services can be driven against in-memory repositories.
type noopTx struct{ pgx.Tx }

func txContext() context.Context {
	return composables.WithTx(context.Background(), noopTx{})
}

type memoryEmployeeRepo struct {
	employees []employee.Employee
}

func (m *memoryEmployeeRepo) GetAll(_ context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, len(m.employees))
	copy(out, m.employees)
	sort.Slice(out, func(i, j int) bool { return out[i].EmpID() < out[j].EmpID() })
	return out, nil
}

func (m *memoryEmployeeRepo) GetPaginated(_ context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	var allowed map[string]struct{}
	if params.EmpIDs != nil {
		allowed = make(map[string]struct{}, len(params.EmpIDs))
		for _, id := range params.EmpIDs {
			allowed[id] = struct{}{}
		}
	}
	out := make([]employee.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		if allowed != nil {
			if _, ok := allowed[e.EmpID()]; !ok {
				continue
			}
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmpID() < out[j].EmpID() })
	return out, nil
}

func (m *memoryEmployeeRepo) GetByEmpID(_ context.Context, empID string) (employee.Employee, error) {
	for _, e := range m.employees {
		if e.EmpID() == empID {
			return e, nil
		}
	}
	return nil, peoplepersistence.ErrEmployeeNotFound
}

func (m *memoryEmployeeRepo) EmpIDExists(ctx context.Context, empID string) (bool, error) {
	_, err := m.GetByEmpID(ctx, empID)
	return err == nil, nil
}

func (m *memoryEmployeeRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, e := range m.employees {
		if e.Email() == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryEmployeeRepo) DirectReports(_ context.Context, managerID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range m.employees {
		if e.ManagerID() == managerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memoryEmployeeRepo) Create(_ context.Context, data employee.Employee) (employee.Employee, error) {
	m.employees = append(m.employees, data)
	return data, nil
}

func (m *memoryEmployeeRepo) Update(_ context.Context, data employee.Employee) (employee.Employee, error) {
	for i, e := range m.employees {
		if e.EmpID() == data.EmpID() {
			m.employees[i] = data
			return data, nil
		}
	}
	return nil, peoplepersistence.ErrEmployeeNotFound
}

type memoryTaskRepo struct {
	tasks []task.Task
}

func (m *memoryTaskRepo) GetPaginated(_ context.Context, params *task.FindParams) ([]task.Task, error) {
	var allowed map[string]struct{}
	if params.AssigneeIDs != nil {
		allowed = make(map[string]struct{}, len(params.AssigneeIDs))
		for _, id := range params.AssigneeIDs {
			allowed[id] = struct{}{}
		}
	}
	out := make([]task.Task, 0, len(m.tasks))
	for _, tk := range m.tasks {
		if allowed != nil {
			if _, ok := allowed[tk.AssignedTo()]; !ok {
				continue
			}
		}
		out = append(out, tk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (m *memoryTaskRepo) GetByID(_ context.Context, id string) (task.Task, error) {
	for _, tk := range m.tasks {
		if tk.ID() == id {
			return tk, nil
		}
	}
	return nil, persistence.ErrTaskNotFound
}

func (m *memoryTaskRepo) Exists(ctx context.Context, id string) (bool, error) {
	_, err := m.GetByID(ctx, id)
	return err == nil, nil
}

func (m *memoryTaskRepo) Create(_ context.Context, data task.Task) (task.Task, error) {
	m.tasks = append(m.tasks, data)
	return data, nil
}

func (m *memoryTaskRepo) Update(_ context.Context, data task.Task) (task.Task, error) {
	for i, tk := range m.tasks {
		if tk.ID() == data.ID() {
			m.tasks[i] = data
			return data, nil
		}
	}
	return nil, persistence.ErrTaskNotFound
}

type capturingPublisher struct {
	events []interface{}
}

func (p *capturingPublisher) Publish(args ...interface{})     { p.events = append(p.events, args...) }
func (p *capturingPublisher) Subscribe(handler interface{})   {}
func (p *capturingPublisher) Unsubscribe(handler interface{}) {}
func (p *capturingPublisher) Clear()                          {}
func (p *capturingPublisher) SubscribersCount() int           { return 0 }

func newTasksFixture() (*memoryTaskRepo, *memoryEmployeeRepo, *capturingPublisher, *TaskService) {
	employees := &memoryEmployeeRepo{}
	engine := hierarchy.NewEngine(hierarchy.DefaultRankTable(), peopleservices.NewEmployeeDirectory(employees))
	employeeService := peopleservices.NewEmployeeService(employees, engine, &capturingPublisher{})
	tasks := &memoryTaskRepo{}
	publisher := &capturingPublisher{}
	return tasks, employees, publisher, NewTaskService(tasks, employeeService, publisher)
}

func seedEmployee(t *testing.T, repo *memoryEmployeeRepo, empID, designation, managerID string) {
	t.Helper()
	_, err := repo.Create(context.Background(), employee.New(
		empID, strings.ToUpper(empID), empID+"@corp.test",
		employee.WithDesignation(designation),
		employee.WithManagerID(managerID),
	))
	require.NoError(t, err)
}

func seedTask(t *testing.T, repo *memoryTaskRepo, id, name, assignedTo string) {
	t.Helper()
	_, err := repo.Create(context.Background(), task.New(id, name,
		task.WithAssignedTo(assignedTo),
		task.WithDuration("5"),
	))
	require.NoError(t, err)
}

func requireCoded(t *testing.T, err error, code string, status int) *serrors.BaseError {
	t.Helper()
	require.Error(t, err)
	be, ok := serrors.AsBase(err)
	require.True(t, ok, "expected a coded error, got %v", err)
	require.Equal(t, code, be.Code)
	require.Equal(t, status, be.Status)
	return be
}

func TestTaskService_Create(t *testing.T) {
	ctx := txContext()

	t.Run("stores the task and publishes", func(t *testing.T) {
		tasks, employees, publisher, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")

		created, err := svc.Create(ctx, &task.CreateDTO{
			ID:         "t1",
			Name:       "Ship the report",
			Status:     "todo",
			AssignedTo: "se1a",
			Duration:   "5",
		})
		require.NoError(t, err)
		require.Equal(t, "t1", created.ID())
		require.Equal(t, "Ship the report", created.Name())
		require.Len(t, tasks.tasks, 1)

		require.Len(t, publisher.events, 1)
		ev, ok := publisher.events[0].(task.CreatedEvent)
		require.True(t, ok)
		require.Equal(t, "t1", ev.Result.ID())
	})

	t.Run("generates a hex id when absent", func(t *testing.T) {
		_, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")

		created, err := svc.Create(ctx, &task.CreateDTO{
			Name:       "Untracked chore",
			AssignedTo: "se1a",
			Duration:   "2",
		})
		require.NoError(t, err)
		require.Len(t, created.ID(), 16)
		_, err = hex.DecodeString(created.ID())
		require.NoError(t, err)
	})

	t.Run("duplicate id refused before other checks", func(t *testing.T) {
		tasks, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")
		seedTask(t, tasks, "t1", "Existing", "se1a")

		// Even a row that would also fail the duration rule reports the
		// duplicate first.
		_, err := svc.Create(ctx, &task.CreateDTO{ID: "t1", Name: "Other", AssignedTo: "se1a", Duration: "0"})
		requireCoded(t, err, "TASK_ID_TAKEN", 400)
		require.Len(t, tasks.tasks, 1)
	})

	t.Run("zero duration refused", func(t *testing.T) {
		_, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")

		_, err := svc.Create(ctx, &task.CreateDTO{ID: "t1", Name: "Chore", AssignedTo: "se1a", Duration: "0"})
		requireCoded(t, err, "INVALID_DURATION", 400)
	})

	t.Run("empty duration passes through", func(t *testing.T) {
		_, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")

		created, err := svc.Create(ctx, &task.CreateDTO{ID: "t1", Name: "Chore", AssignedTo: "se1a"})
		require.NoError(t, err)
		require.Equal(t, "", created.Duration())
	})

	t.Run("missing assignee refused", func(t *testing.T) {
		_, _, _, svc := newTasksFixture()

		_, err := svc.Create(ctx, &task.CreateDTO{ID: "t1", Name: "Chore", Duration: "5"})
		requireCoded(t, err, "ASSIGNEE_REQUIRED", 400)
	})

	t.Run("unknown assignee refused", func(t *testing.T) {
		_, _, _, svc := newTasksFixture()

		_, err := svc.Create(ctx, &task.CreateDTO{ID: "t1", Name: "Chore", AssignedTo: "ghost", Duration: "5"})
		requireCoded(t, err, "ASSIGNEE_NOT_FOUND", 400)
	})

	t.Run("managerial assignee refused", func(t *testing.T) {
		_, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "em1", "EM", "")

		_, err := svc.Create(ctx, &task.CreateDTO{ID: "t1", Name: "Chore", AssignedTo: "em1", Duration: "5"})
		be := requireCoded(t, err, "RANK_TOO_HIGH", 400)
		require.Contains(t, be.Message, `"em1"`)
	})
}

func TestTaskService_Update(t *testing.T) {
	ctx := txContext()

	t.Run("unknown task", func(t *testing.T) {
		_, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")

		_, err := svc.Update(ctx, "ghost", &task.UpdateDTO{Name: "Chore", AssignedTo: "se1a", Duration: "5"})
		requireCoded(t, err, "TASK_NOT_FOUND", 404)
	})

	t.Run("replaces the whole row", func(t *testing.T) {
		tasks, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")
		_, err := tasks.Create(ctx, task.New("t1", "Old name",
			task.WithDescription("old description"),
			task.WithAssignedTo("se1a"),
			task.WithPriority("high"),
			task.WithDuration("5"),
		))
		require.NoError(t, err)

		updated, err := svc.Update(ctx, "t1", &task.UpdateDTO{
			Name:       "New name",
			AssignedTo: "se1a",
			Duration:   "8",
		})
		require.NoError(t, err)
		require.Equal(t, "New name", updated.Name())
		require.Equal(t, "8", updated.Duration())
		// Fields the caller left out are cleared, not preserved.
		require.Equal(t, "", updated.Description())
		require.Equal(t, "", updated.Priority())
	})

	t.Run("assignment rules re-checked", func(t *testing.T) {
		tasks, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")
		seedEmployee(t, employees, "em1", "EM", "")
		seedTask(t, tasks, "t1", "Chore", "se1a")

		_, err := svc.Update(ctx, "t1", &task.UpdateDTO{Name: "Chore", AssignedTo: "se1a", Duration: "0"})
		requireCoded(t, err, "INVALID_DURATION", 400)

		_, err = svc.Update(ctx, "t1", &task.UpdateDTO{Name: "Chore", AssignedTo: "ghost", Duration: "5"})
		requireCoded(t, err, "ASSIGNEE_NOT_FOUND", 400)

		_, err = svc.Update(ctx, "t1", &task.UpdateDTO{Name: "Chore", AssignedTo: "em1", Duration: "5"})
		requireCoded(t, err, "RANK_TOO_HIGH", 400)
	})

	t.Run("publishes updated event", func(t *testing.T) {
		tasks, employees, publisher, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")
		seedTask(t, tasks, "t1", "Chore", "se1a")

		_, err := svc.Update(ctx, "t1", &task.UpdateDTO{Name: "Renamed", AssignedTo: "se1a", Duration: "5"})
		require.NoError(t, err)

		require.Len(t, publisher.events, 1)
		ev, ok := publisher.events[0].(task.UpdatedEvent)
		require.True(t, ok)
		require.Equal(t, "Renamed", ev.Result.Name())
	})
}

func seedTaskOrg(t *testing.T, employees *memoryEmployeeRepo, tasks *memoryTaskRepo) {
	t.Helper()
	seedEmployee(t, employees, "owner1", "OWNER", "")
	seedEmployee(t, employees, "em1", "EM", "owner1")
	seedEmployee(t, employees, "l1a", "L1", "em1")
	seedEmployee(t, employees, "se1a", "SE1", "l1a")
	seedEmployee(t, employees, "sse1", "SSE", "l1a")

	seedTask(t, tasks, "t-em", "Budget review", "em1")
	seedTask(t, tasks, "t-l1", "Sprint planning", "l1a")
	seedTask(t, tasks, "t-se1", "Fix the build", "se1a")
	seedTask(t, tasks, "t-sse", "Write the RFC", "sse1")
}

func taskIDs(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, tk := range tasks {
		out[i] = tk.ID()
	}
	return out
}

func TestTaskService_VisibleTasks(t *testing.T) {
	ctx := txContext()

	t.Run("below team scope sees only own tasks", func(t *testing.T) {
		tasks, employees, _, svc := newTasksFixture()
		seedTaskOrg(t, employees, tasks)

		visible, err := svc.VisibleTasks(ctx, "se1a", "")
		require.NoError(t, err)
		require.Equal(t, []string{"t-se1"}, taskIDs(visible))
	})

	t.Run("manager sees the closure's tasks", func(t *testing.T) {
		tasks, employees, _, svc := newTasksFixture()
		seedTaskOrg(t, employees, tasks)

		visible, err := svc.VisibleTasks(ctx, "l1a", "")
		require.NoError(t, err)
		require.Equal(t, []string{"t-l1", "t-se1", "t-sse"}, taskIDs(visible))
	})

	t.Run("target inside scope rescopes the display", func(t *testing.T) {
		tasks, employees, _, svc := newTasksFixture()
		seedTaskOrg(t, employees, tasks)

		visible, err := svc.VisibleTasks(ctx, "owner1", "l1a")
		require.NoError(t, err)
		require.Equal(t, []string{"t-l1", "t-se1", "t-sse"}, taskIDs(visible))
	})

	t.Run("target outside scope yields empty result", func(t *testing.T) {
		tasks, employees, _, svc := newTasksFixture()
		seedTaskOrg(t, employees, tasks)

		visible, err := svc.VisibleTasks(ctx, "l1a", "em1")
		require.NoError(t, err)
		require.Empty(t, visible)
	})

	t.Run("unknown caller yields empty result", func(t *testing.T) {
		tasks, employees, _, svc := newTasksFixture()
		seedTaskOrg(t, employees, tasks)

		visible, err := svc.VisibleTasks(ctx, "ghost", "")
		require.NoError(t, err)
		require.Empty(t, visible)
	})
}

func TestTaskService_BulkImport(t *testing.T) {
	ctx := txContext()

	t.Run("imports a clean file", func(t *testing.T) {
		tasks, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")

		input := strings.Join([]string{
			"id,task_name,task_description,task_status,task_assigned_to,task_duration",
			"t1,Ship it,Final report,done,se1a,5",
			"t2,Review,,inprogress,se1a,3",
		}, "\n")

		added, err := svc.BulkImport(ctx, strings.NewReader(input))
		require.NoError(t, err)
		require.Equal(t, 2, added)

		stored, err := tasks.GetByID(ctx, "t1")
		require.NoError(t, err)
		require.Equal(t, "done", stored.Status())
		require.Equal(t, "5", stored.Duration())
		require.Equal(t, "se1a", stored.AssignedTo())
	})

	t.Run("fails fast on the first bad row", func(t *testing.T) {
		tasks, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")

		input := strings.Join([]string{
			"id,task_name,task_assigned_to,task_duration",
			"t1,One,se1a,5",
			"t2,,se1a,5",
			"t3,Three,se1a,5",
		}, "\n")

		_, err := svc.BulkImport(ctx, strings.NewReader(input))
		be := requireCoded(t, err, "INVALID_ROW", 400)
		require.Equal(t, "Row 2: task_name is required", be.Message)
		require.Empty(t, tasks.tasks, "nothing is inserted when validation fails")
	})

	t.Run("missing assignee cell", func(t *testing.T) {
		_, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")

		input := "id,task_name,task_assigned_to,task_duration\nt1,One,,5\n"
		_, err := svc.BulkImport(ctx, strings.NewReader(input))
		be := requireCoded(t, err, "INVALID_ROW", 400)
		require.Equal(t, "Row 1: task_assigned_to is required", be.Message)
	})

	t.Run("absent duration column defaults to zero and is rejected", func(t *testing.T) {
		_, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")

		input := "id,task_name,task_assigned_to\nt1,One,se1a\n"
		_, err := svc.BulkImport(ctx, strings.NewReader(input))
		be := requireCoded(t, err, "INVALID_ROW", 400)
		require.Equal(t, "Row 1: task_duration cannot be 0", be.Message)
	})

	t.Run("empty duration cell is kept as empty", func(t *testing.T) {
		tasks, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")

		input := "id,task_name,task_assigned_to,task_duration\nt1,One,se1a,\n"
		added, err := svc.BulkImport(ctx, strings.NewReader(input))
		require.NoError(t, err)
		require.Equal(t, 1, added)

		stored, err := tasks.GetByID(ctx, "t1")
		require.NoError(t, err)
		require.Equal(t, "", stored.Duration())
	})

	t.Run("unknown assignee row", func(t *testing.T) {
		_, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")

		input := "id,task_name,task_assigned_to,task_duration\nt1,One,ghost,5\n"
		_, err := svc.BulkImport(ctx, strings.NewReader(input))
		be := requireCoded(t, err, "INVALID_ROW", 400)
		require.Equal(t, "Row 1: assigned user 'ghost' not found", be.Message)
	})

	t.Run("managerial assignee row", func(t *testing.T) {
		_, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "em1", "EM", "")

		input := "id,task_name,task_assigned_to,task_duration\nt1,One,em1,5\n"
		_, err := svc.BulkImport(ctx, strings.NewReader(input))
		be := requireCoded(t, err, "INVALID_ROW", 400)
		require.True(t, strings.HasPrefix(be.Message, "Row 1: tasks cannot be assigned to"), be.Message)
	})

	t.Run("duplicate id inside the batch", func(t *testing.T) {
		_, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")

		input := strings.Join([]string{
			"id,task_name,task_assigned_to,task_duration",
			"t1,One,se1a,5",
			"t1,Two,se1a,5",
		}, "\n")

		_, err := svc.BulkImport(ctx, strings.NewReader(input))
		be := requireCoded(t, err, "TASK_ID_TAKEN", 400)
		require.Equal(t, "task ID t1 already exists", be.Message)
	})

	t.Run("duplicate of a stored id", func(t *testing.T) {
		tasks, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")
		seedTask(t, tasks, "t1", "Existing", "se1a")

		input := "id,task_name,task_assigned_to,task_duration\nt1,One,se1a,5\n"
		_, err := svc.BulkImport(ctx, strings.NewReader(input))
		requireCoded(t, err, "TASK_ID_TAKEN", 400)
	})

	t.Run("generates ids and defaults status when columns are absent", func(t *testing.T) {
		tasks, employees, _, svc := newTasksFixture()
		seedEmployee(t, employees, "se1a", "SE1", "")

		input := "task_name,task_assigned_to,task_duration\nOne,se1a,5\n"
		added, err := svc.BulkImport(ctx, strings.NewReader(input))
		require.NoError(t, err)
		require.Equal(t, 1, added)

		require.Len(t, tasks.tasks, 1)
		stored := tasks.tasks[0]
		require.Len(t, stored.ID(), 16)
		require.Equal(t, "todo", stored.Status())
	})

	t.Run("empty file", func(t *testing.T) {
		_, _, _, svc := newTasksFixture()

		_, err := svc.BulkImport(ctx, strings.NewReader(""))
		requireCoded(t, err, "INVALID_FILE", 400)
	})
}
