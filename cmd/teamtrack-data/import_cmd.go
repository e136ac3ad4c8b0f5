package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iota-uz/teamtrack/pkg/composables"
	"github.com/iota-uz/teamtrack/pkg/serrors"
)

type importOptions struct {
	file   string
	dryRun bool
}

func newUsersImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import employees from a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsersImport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Input CSV file (required)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Validate against the live directory without writing")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

type importReport struct {
	Status  string `json:"status"`
	File    string `json:"file"`
	Added   int    `json:"added"`
	Skipped int    `json:"skipped"`
}

func runUsersImport(ctx context.Context, opts importOptions) error {
	if strings.TrimSpace(opts.file) == "" {
		return withCode(exitUsage, fmt.Errorf("--file is required"))
	}

	f, err := os.Open(opts.file)
	if err != nil {
		return withCode(exitValidation, err)
	}
	defer func() { _ = f.Close() }()

	pool, err := connectDB(ctx)
	if err != nil {
		return withCode(exitDB, err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("begin tx: %w", err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Every insert joins this transaction. Rows that would collide or fail
	// validation are skipped before their INSERT runs, so one bad row never
	// aborts the transaction mid-file.
	txCtx := composables.WithTx(composables.WithPool(ctx, pool), tx)
	summary, err := employeeService().ImportCSV(txCtx, f)
	if err != nil {
		if _, ok := serrors.AsBase(err); ok {
			return withCode(exitValidation, fmt.Errorf("%s: %w", opts.file, err))
		}
		return withCode(exitDB, err)
	}

	status := "applied"
	if opts.dryRun {
		status = "dry_run"
	} else if err := tx.Commit(ctx); err != nil {
		return withCode(exitDB, fmt.Errorf("commit tx: %w", err))
	}

	return writeJSONLine(importReport{
		Status:  status,
		File:    opts.file,
		Added:   summary.Added,
		Skipped: summary.Skipped,
	})
}
