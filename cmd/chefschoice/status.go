package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sandeepkv93/chefschoice/internal/storage"
)

func newStatusCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the service and whether a token is stored",
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

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "service: %s\n", a.cfg.BaseURL)
			c, err := a.store.GetCredential(ctx, storage.TokenKey)
			switch {
			case errors.Is(err, storage.ErrNotFound):
				fmt.Fprintln(out, "identity: anonymous")
			case err != nil:
				return fmt.Errorf("read token: %w", err)
			default:
				fmt.Fprintf(out, "identity: authenticated (token stored %s)\n", c.UpdatedAt.Format("2006-01-02 15:04 MST"))
			}
			return nil
		},
	}
}
