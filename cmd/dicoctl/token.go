package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dicoslang/backoffice/internal/config"
	appMiddleware "github.com/dicoslang/backoffice/internal/middleware"
	"github.com/dicoslang/backoffice/internal/services"
)

func tokenCmd() *cobra.Command {
	var (
		user string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a staff account (development)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()
			store, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			u, err := store.Users.GetByEmail(ctx, user)
			if errors.Is(err, services.ErrUserNotFound) {
				u, err = store.Users.GetByID(ctx, user)
			}
			if err != nil {
				return fmt.Errorf("user %q: %w", user, err)
			}
			if !u.IsStaff() {
				return fmt.Errorf("user %q is not staff", user)
			}

			if ttl <= 0 {
				ttl = cfg.JWTExpiration
			}
			token, err := appMiddleware.IssueToken(cfg.JWTSecret, u, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Email or id of the account")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to JWT_EXPIRATION)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
