package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/audit"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/aussiebroadwan/rolepanel/pkg/bus"
	"github.com/spf13/cobra"
)

func newAuditCommand(flags *configFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit event operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newAuditTailCommand(flags))
	return cmd
}

func newAuditTailCommand(flags *configFlags) *cobra.Command {
	var durable string

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print audit events as they are published",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.load()
			if cfg.NatsURL == "" {
				return errors.New("audit tail requires NATS_URL or --nats-url")
			}

			b, err := bus.New(cfg.NatsURL)
			if err != nil {
				return err
			}
			defer b.Close()

			ctx := commandContext(cmd)
			out := cmd.OutOrStdout()
			sub, err := b.Subscribe(ctx, cfg.AuditSubject+".>", durable, func(_ context.Context, data []byte) error {
				e, err := audit.DecodeEntry(data)
				if err != nil {
					// Unparseable events are acknowledged and skipped.
					fmt.Fprintf(cmd.ErrOrStderr(), "skipping malformed event: %v\n", err)
					return nil
				}
				printEntry(out, e)
				return nil
			})
			if err != nil {
				return err
			}
			defer sub.Close()

			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&durable, "durable", "rolepanel-audit-tail", "JetStream durable consumer name")
	return cmd
}

func printEntry(w io.Writer, e domain.AuditEntry) {
	name := e.EntityID
	var perms []string
	switch {
	case e.After != nil:
		name, perms = e.After.Name, e.After.Permissions
	case e.Before != nil:
		name, perms = e.Before.Name, e.Before.Permissions
	}
	fmt.Fprintf(w, "%s %-6s %-12s actor=%s role=%s permissions=[%s]\n",
		e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"), e.Action, e.Title, e.Actor, name, strings.Join(perms, ", "))
}
