package main

import (
	"errors"
	"fmt"
	"time"

	"Noteboard/internal/auth"
	"Noteboard/internal/config"
	dom "Noteboard/internal/domain"
	"Noteboard/migrations"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "noteboardctl",
		Short:         "Operator tooling for the Noteboard API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newHashCmd(), newTokenCmd(), newMigrateCmd())
	return root
}

func newHashCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := bcrypt.GenerateFromPassword([]byte(args[0]), cost)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(h))
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		subject string
		role    string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token signed with JWT_SECRET",
		Long: `Mint an access token for an existing user id, signed with the
secret, issuer and TTL the API is configured with.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if role != dom.RoleUser && role != dom.RoleAdmin {
				return fmt.Errorf("role must be %q or %q", dom.RoleUser, dom.RoleAdmin)
			}
			if ttl <= 0 {
				ttl = cfg.JWT.AccessTTL.Duration()
			}
			tok, err := auth.NewTokens(cfg.JWT.Secret, ttl, cfg.JWT.Issuer).Issue(subject, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "", "user id to put in the token (required)")
	cmd.Flags().StringVar(&role, "role", dom.RoleUser, "role claim: user or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, defaults to JWT_ACCESS_TTL")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:       "migrate [up|down|status|version|reset]",
		Short:     "Run the embedded Postgres migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status", "version", "reset"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				dsn = cfg.PG.DSN
			}
			if dsn == "" {
				return errors.New("set --dsn or PG_DSN")
			}
			return migrations.Run(cmd.Context(), dsn, args[0])
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "Postgres connection string, defaults to PG_DSN")
	return cmd
}
