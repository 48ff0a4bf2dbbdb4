package main

import (
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/app"
	"github.com/spf13/cobra"
)

func newServeCommand(flags *configFlags) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.load()
			if port > 0 {
				cfg.Port = port
			}

			application, err := app.New(commandContext(cmd), cfg)
			if err != nil {
				return err
			}
			return application.Run()
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (env PORT)")
	return cmd
}
