package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sandeepkv93/chefschoice/internal/storage"
)

func newLoginCmd(v *viper.Viper) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the access token used for your own recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			token = strings.TrimSpace(token)
			if token == "" {
				prompted, err := promptToken()
				if err != nil {
					return err
				}
				token = prompted
			}

			a, err := openApp(ctx, v)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			if err := a.store.PutCredential(ctx, storage.Credential{
				Key:       storage.TokenKey,
				Value:     token,
				UpdatedAt: time.Now().UTC(),
			}); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged in")
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "access token (prompted when omitted)")
	return cmd
}

func promptToken() (string, error) {
	var token string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Access token").
				Description("Token issued by the recipe service").
				EchoMode(huh.EchoModePassword).
				Value(&token).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("token is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", errors.New("login cancelled")
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

func newLogoutCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := openApp(ctx, v)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			err = a.store.DeleteCredential(ctx, storage.TokenKey)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("remove token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
