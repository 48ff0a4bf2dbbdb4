package main

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/app"
	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/domain"
	"github.com/spf13/cobra"
)

func newTokenCommand(flags *configFlags) *cobra.Command {
	var (
		subject      string
		capabilities []string
		ttl          time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.load()
			signer, err := app.InitTokenSigner(cfg)
			if err != nil {
				return err
			}

			tok, err := app.MintToken(signer, cfg, subject, capabilities, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "operator", "Token subject, recorded as the audit actor")
	cmd.Flags().StringSliceVar(&capabilities, "cap",
		[]string{domain.CapabilityRole, domain.CapabilityRoleEdit}, "Capabilities to grant")
	cmd.Flags().DurationVar(&ttl, "ttl", app.DefaultTokenTTL, "Token lifetime")
	return cmd
}
