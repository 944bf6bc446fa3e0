package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dicoslang/backoffice/internal/config"
	"github.com/dicoslang/backoffice/internal/models"
	"github.com/dicoslang/backoffice/internal/services"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage back-office staff accounts",
	}
	cmd.AddCommand(adminCreateCmd())
	return cmd
}

func adminCreateCmd() *cobra.Command {
	var (
		email    string
		pseudo   string
		password string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a staff account, or reset the password of an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.SaveUserRequest{
				Username: pseudo,
				Email:    email,
				Status:   models.UserStatusActive,
				Role:     models.UserRole(role),
			}
			if errs := req.Validate(); len(errs) > 0 {
				return fmt.Errorf("invalid account: %v", errs)
			}
			if req.Role == models.RoleUser {
				return errors.New("role must be admin or editor")
			}
			if len(password) < 8 {
				return errors.New("password must be at least 8 characters")
			}

			ctx := cmd.Context()
			store, closeStore, err := openStore(ctx, config.Load())
			if err != nil {
				return err
			}
			defer closeStore()

			user, err := store.Users.GetByEmail(ctx, email)
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				user = &models.User{}
			case err != nil:
				return err
			}
			req.Apply(user)

			hash, err := services.HashPassword(password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash

			saved, err := store.Users.Save(ctx, user)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) id=%s\n", saved.Role, saved.Username, saved.Email, saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Login email")
	cmd.Flags().StringVar(&pseudo, "pseudo", "", "Display name")
	cmd.Flags().StringVar(&password, "password", "", "Local login password")
	cmd.Flags().StringVar(&role, "role", string(models.RoleAdmin), "admin or editor")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pseudo")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
