package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/app"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// configFlags overlay command line values on the environment config.
type configFlags struct {
	driver          string
	databaseFile    string
	databaseURL     string
	permissionsFile string
	natsURL         string
}

func (f *configFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.driver, "db-driver", "", "Database driver: sqlite or postgres (env DATABASE_DRIVER)")
	fs.StringVar(&f.databaseFile, "db-file", "", "SQLite database file (env DATABASE_FILE)")
	fs.StringVar(&f.databaseURL, "db-url", "", "Postgres connection string (env DATABASE_URL)")
	fs.StringVar(&f.permissionsFile, "permissions", "", "YAML permission catalog (env PERMISSIONS_FILE)")
	fs.StringVar(&f.natsURL, "nats-url", "", "NATS endpoint for audit events (env NATS_URL)")
}

func (f *configFlags) load() app.Config {
	cfg := app.LoadConfig()
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&cfg.DatabaseDriver, f.driver)
	override(&cfg.DatabaseFile, f.databaseFile)
	override(&cfg.DatabaseURL, f.databaseURL)
	override(&cfg.PermissionsFile, f.permissionsFile)
	override(&cfg.NatsURL, f.natsURL)
	return cfg
}

func newRootCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:           "rolepanel",
		Short:         "Role administration service for the web panel",
		Version:       app.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags.register(cmd.PersistentFlags())

	cmd.AddCommand(newServeCommand(flags))
	cmd.AddCommand(newMigrateCommand(flags))
	cmd.AddCommand(newTokenCommand(flags))
	cmd.AddCommand(newImportCommand(flags))
	cmd.AddCommand(newExportCommand(flags))
	cmd.AddCommand(newAuditCommand(flags))
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
