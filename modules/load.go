package modules

import (
	"github.com/go-faster/errors"

	"github.com/iota-uz/teamtrack/modules/audit"
	"github.com/iota-uz/teamtrack/modules/people"
	"github.com/iota-uz/teamtrack/modules/tasks"
	"github.com/iota-uz/teamtrack/pkg/application"
)

// BuiltInModules in registration order. The people module must come first:
// tasks resolves the employee service out of the registry, and audit
// subscribes to the session events people publishes.
var BuiltInModules = []application.Module{
	people.NewModule(),
	tasks.NewModule(),
	audit.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return errors.Wrap(err, "failed to register module "+module.Name())
		}
	}
	return nil
}
