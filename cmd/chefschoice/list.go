package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sandeepkv93/chefschoice/internal/catalog"
	"github.com/sandeepkv93/chefschoice/internal/model"
	"github.com/sandeepkv93/chefschoice/internal/update"
	"github.com/sandeepkv93/chefschoice/internal/views"
)

func newListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the recipes of the configured view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printRecipes(cmd, v, func(ctx context.Context, a *app, d *catalog.Dispatcher) ([]model.Recipe, error) {
				id, err := a.identity(ctx)
				if err != nil {
					return nil, err
				}
				return d.Search(ctx, "", id)
			})
		},
	}
}

func newSearchCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Search recipes by text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return printRecipes(cmd, v, func(ctx context.Context, a *app, d *catalog.Dispatcher) ([]model.Recipe, error) {
				id, err := a.identity(ctx)
				if err != nil {
					return nil, err
				}
				return d.Search(ctx, query, id)
			})
		},
	}
}

type fetchFunc func(ctx context.Context, a *app, d *catalog.Dispatcher) ([]model.Recipe, error)

func printRecipes(cmd *cobra.Command, v *viper.Viper, fetch fetchFunc) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	a, err := openApp(ctx, v)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	surface := catalog.SurfaceCatalog
	if a.cfg.View == update.ViewHome {
		surface = catalog.SurfaceHome
	}
	loader := catalog.NewLoader(a.client, surface, a.log)
	d := catalog.NewDispatcher(loader, a.client, a.log)

	c := catalog.NewCollection()
	seq := c.Begin()
	recipes, err := fetch(ctx, a, d)
	if err != nil {
		return err
	}
	if err := c.Apply(seq, recipes); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), views.RenderProjection(catalog.Project(c, catalog.EditSession{})))
	return err
}
