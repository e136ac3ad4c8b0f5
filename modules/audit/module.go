package audit

import (
	"embed"

	"github.com/iota-uz/teamtrack/modules/audit/handlers"
	"github.com/iota-uz/teamtrack/modules/audit/infrastructure/persistence"
	"github.com/iota-uz/teamtrack/modules/audit/presentation/controllers"
	"github.com/iota-uz/teamtrack/modules/audit/services"
	peopleservices "github.com/iota-uz/teamtrack/modules/people/services"
	"github.com/iota-uz/teamtrack/pkg/application"
)

//go:embed infrastructure/persistence/schema/*.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

// Register wires the audit trail: a recorder fed by the people module's
// session events and a scoped listing that shares its hierarchy engine. The
// people module must be registered first.
func (m *Module) Register(app application.Application) error {
	employeeService := app.Service(peopleservices.EmployeeService{}).(*peopleservices.EmployeeService)
	auditService := services.NewAuditService(persistence.NewAuthLogRepository(), employeeService)

	app.Migrations().RegisterSchema(&MigrationFiles)
	app.RegisterServices(auditService)
	app.RegisterControllers(
		controllers.NewAuthLogsController(app),
	)
	handlers.RegisterSessionEventHandlers(app)
	return nil
}

func (m *Module) Name() string {
	return "audit"
}
