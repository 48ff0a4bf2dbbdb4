package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/app"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/audit"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/roleimport"
	"github.com/aussiebroadwan/rolepanel/pkg/slogx"
	"github.com/spf13/cobra"
)

func newImportCommand(flags *configFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create or update roles from an .xlsx or .csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.load()
			logger := app.NewLogger(cfg)
			ctx := audit.WithActor(slogx.WithContext(commandContext(cmd), logger), domain.ActorCLI)

			core, err := app.OpenCore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer core.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := core.Roles.ImportRoles(ctx, filepath.Base(args[0]), f)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Import completed: %d created, %d updated\n", res.Created, res.Updated)
			return nil
		},
	}
}

func newExportCommand(flags *configFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write the role import template",
		Long:  "Write the import template listing every editable role. FILE defaults to " + roleimport.TemplateFilename + ".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := roleimport.TemplateFilename
			if len(args) == 1 {
				path = args[0]
			}

			cfg := flags.load()
			logger := app.NewLogger(cfg)
			ctx := slogx.WithContext(commandContext(cmd), logger)

			core, err := app.OpenCore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer core.Close()

			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := core.Roles.ExportImportTemplate(ctx, f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
}
