package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/teamtrack/modules"
	"github.com/iota-uz/teamtrack/pkg/application"
	"github.com/iota-uz/teamtrack/pkg/eventbus"
	"github.com/iota-uz/teamtrack/pkg/logging"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Apply or drop the database schema",
	}

	cmd.AddCommand(newSchemaApplyCmd())
	cmd.AddCommand(newSchemaDropCmd())
	return cmd
}

func newSchemaApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Create the tables and indexes every module registers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(cmd.Context(), false)
		},
	}
}

func newSchemaDropCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Drop every table the modules own",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return withCode(exitSafetyNet, fmt.Errorf("refusing to drop the schema without --yes"))
			}
			return runSchema(cmd.Context(), true)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the destructive drop")
	return cmd
}

type schemaReport struct {
	Status string `json:"status"`
}

func runSchema(ctx context.Context, drop bool) error {
	pool, err := connectDB(ctx)
	if err != nil {
		return withCode(exitDB, err)
	}
	defer pool.Close()

	// Loading the modules collects the schema files they embed.
	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel)),
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		return withCode(exitDB, err)
	}

	if drop {
		if err := app.Migrations().Rollback(); err != nil {
			return withCode(exitDB, err)
		}
		return writeJSONLine(schemaReport{Status: "dropped"})
	}
	if err := app.Migrations().Run(); err != nil {
		return withCode(exitDB, err)
	}
	return writeJSONLine(schemaReport{Status: "applied"})
}
