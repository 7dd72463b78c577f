// Package catalog holds the client-side synchronization core: choosing the
// data source for an identity, reconciling asynchronous results into state,
// search dispatch, the single-record edit session and the list projection.
package catalog

import (
	"context"

	"github.com/sandeepkv93/chefschoice/internal/api"
	"github.com/sandeepkv93/chefschoice/internal/model"
)

// Source is the read side of the recipe service.
type Source interface {
	ListHomePublic(ctx context.Context) ([]model.Recipe, error)
	ListCatalogPublic(ctx context.Context) ([]model.Recipe, error)
	ListOwned(ctx context.Context, token string) ([]model.Recipe, error)
	SearchPublic(ctx context.Context, query string) (api.SearchResult, error)
	SearchOwned(ctx context.Context, query, token string) (api.SearchResult, error)
}

// Writer is the write side of the recipe service.
type Writer interface {
	UpdateRecipe(ctx context.Context, id string, draft model.Draft) error
	DeleteRecipe(ctx context.Context, id string) error
}

// Surface names the view a loader serves. The two surfaces differ only in
// which public listing an anonymous visitor sees.
type Surface string

const (
	SurfaceHome    Surface = "home"
	SurfaceCatalog Surface = "catalog"
)

func (s Surface) IsValid() bool {
	switch s {
	case SurfaceHome, SurfaceCatalog:
		return true
	default:
		return false
	}
}

var _ Source = (*api.Client)(nil)
var _ Writer = (*api.Client)(nil)
