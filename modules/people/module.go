package people

import (
	"embed"

	"github.com/iota-uz/teamtrack/modules/people/domain/hierarchy"
	"github.com/iota-uz/teamtrack/modules/people/infrastructure/persistence"
	"github.com/iota-uz/teamtrack/modules/people/presentation/controllers"
	"github.com/iota-uz/teamtrack/modules/people/services"
	"github.com/iota-uz/teamtrack/pkg/application"
	"github.com/iota-uz/teamtrack/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/*.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	employeeRepo := persistence.NewEmployeeRepository()
	engine := hierarchy.NewEngine(hierarchy.DefaultRankTable(), services.NewEmployeeDirectory(employeeRepo))
	employeeService := services.NewEmployeeService(employeeRepo, engine, app.EventPublisher())
	authService := services.NewAuthService(
		persistence.NewSessionRepository(app.RDB()),
		employeeService,
		app.EventPublisher(),
		configuration.Use().SessionDuration,
	)

	app.Migrations().RegisterSchema(&MigrationFiles)
	app.RegisterServices(
		employeeService,
		authService,
	)
	app.RegisterControllers(
		controllers.NewSystemController(app),
		controllers.NewAuthController(app),
		controllers.NewEmployeesController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "people"
}
