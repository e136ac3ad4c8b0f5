package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iota-uz/teamtrack/pkg/composables"
)

type exportOptions struct {
	out string
}

func newUsersExportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the employee directory to CSV, ordered by emp_id",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsersExport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "-", "Output file, or - for stdout")

	return cmd
}

type exportReport struct {
	Status string `json:"status"`
	Out    string `json:"out"`
	Rows   int    `json:"rows"`
}

func runUsersExport(ctx context.Context, opts exportOptions) error {
	pool, err := connectDB(ctx)
	if err != nil {
		return withCode(exitDB, err)
	}
	defer pool.Close()

	toStdout := opts.out == "" || opts.out == "-"
	var w io.Writer = os.Stdout
	if !toStdout {
		f, err := os.Create(opts.out)
		if err != nil {
			return withCode(exitDB, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	rows, err := employeeService().ExportCSV(composables.WithPool(ctx, pool), w)
	if err != nil {
		return withCode(exitDB, err)
	}

	// A summary line after the records would corrupt a stdout export.
	if toStdout {
		return nil
	}
	return writeJSONLine(exportReport{Status: "exported", Out: opts.out, Rows: rows})
}
