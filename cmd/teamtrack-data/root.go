package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "teamtrack-data",
		Short:         "Employee directory import/export and schema tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newUsersCmd())
	cmd.AddCommand(newSchemaCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
