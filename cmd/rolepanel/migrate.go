package main

import (
	"fmt"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/app"
	"github.com/spf13/cobra"
)

func newMigrateCommand(flags *configFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and sync the permission catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.load()
			core, err := app.OpenCore(commandContext(cmd), cfg, app.NewLogger(cfg))
			if err != nil {
				return err
			}
			defer core.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "database %s is up to date\n", cfg.DatabaseDriver)
			return nil
		},
	}
}
