package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/teamtrack/modules/people/domain/hierarchy"
	"github.com/iota-uz/teamtrack/modules/people/infrastructure/persistence"
	"github.com/iota-uz/teamtrack/modules/people/services"
	"github.com/iota-uz/teamtrack/pkg/configuration"
	"github.com/iota-uz/teamtrack/pkg/eventbus"
	"github.com/iota-uz/teamtrack/pkg/logging"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Import and export the employee directory",
	}

	cmd.AddCommand(newUsersImportCmd())
	cmd.AddCommand(newUsersExportCmd())
	return cmd
}

func connectDB(ctx context.Context) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, configuration.Use().Database.Opts)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db connect failed: %w", err)
	}
	return pool, nil
}

// employeeService wires the directory service the way the people module does,
// minus the session layer the CLI has no use for.
func employeeService() *services.EmployeeService {
	repo := persistence.NewEmployeeRepository()
	engine := hierarchy.NewEngine(hierarchy.DefaultRankTable(), services.NewEmployeeDirectory(repo))
	publisher := eventbus.NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))
	return services.NewEmployeeService(repo, engine, publisher)
}
