package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/sandeepkv93/chefschoice/internal/api"
	"github.com/sandeepkv93/chefschoice/internal/model"
	"github.com/sandeepkv93/chefschoice/internal/session"
)

// Dispatcher runs a search for the current query text. An empty query
// restores the base listing through the loader.
type Dispatcher struct {
	loader *Loader
	source Source
	log    *zap.Logger
}

func NewDispatcher(loader *Loader, source Source, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{loader: loader, source: source, log: log}
}

func (d *Dispatcher) Search(ctx context.Context, query string, id session.Identity) ([]model.Recipe, error) {
	if query == "" {
		return d.loader.Load(ctx, id)
	}

	var (
		res api.SearchResult
		err error
	)
	if id.Authenticated() {
		res, err = d.source.SearchOwned(ctx, query, id.Token)
	} else {
		res, err = d.source.SearchPublic(ctx, query)
	}
	if err != nil {
		d.log.Warn("catalog search failed",
			zap.String("query", query),
			zap.Stringer("identity", id),
			zap.Error(err),
		)
		return nil, err
	}
	if res.NoMatch {
		d.log.Debug("catalog search matched nothing", zap.String("query", query), zap.String("message", res.Message))
		return []model.Recipe{}, nil
	}
	if res.Recipes == nil {
		return []model.Recipe{}, nil
	}
	return res.Recipes, nil
}
