package tasks

import (
	"embed"

	peopleservices "github.com/iota-uz/teamtrack/modules/people/services"
	"github.com/iota-uz/teamtrack/modules/tasks/infrastructure/persistence"
	"github.com/iota-uz/teamtrack/modules/tasks/presentation/controllers"
	"github.com/iota-uz/teamtrack/modules/tasks/services"
	"github.com/iota-uz/teamtrack/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

// Register wires the task service on top of the people module's employee
// service, so assignment checks share one hierarchy engine. The people module
// must be registered first.
func (m *Module) Register(app application.Application) error {
	employeeService := app.Service(peopleservices.EmployeeService{}).(*peopleservices.EmployeeService)
	taskService := services.NewTaskService(
		persistence.NewTaskRepository(),
		employeeService,
		app.EventPublisher(),
	)

	app.Migrations().RegisterSchema(&MigrationFiles)
	app.RegisterServices(taskService)
	app.RegisterControllers(
		controllers.NewTasksController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "tasks"
}
