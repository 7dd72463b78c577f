package catalog

import (
	"context"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sandeepkv93/chefschoice/internal/model"
	"github.com/sandeepkv93/chefschoice/internal/session"
)

// Loader fetches the unfiltered listing for an identity.
type Loader struct {
	source  Source
	surface Surface
	log     *zap.Logger
	flight  singleflight.Group
}

func NewLoader(source Source, surface Surface, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if !surface.IsValid() {
		surface = SurfaceCatalog
	}
	return &Loader{source: source, surface: surface, log: log}
}

func (l *Loader) Surface() Surface {
	return l.surface
}

// Load returns the full listing for id; callers replace their collection
// wholesale. Identical loads already in flight share one request, but
// completed results are never reused. A shared request is not cancelled by
// any single caller; each caller stops waiting when its own ctx ends.
func (l *Loader) Load(ctx context.Context, id session.Identity) ([]model.Recipe, error) {
	key := string(l.surface) + "|" + id.Token
	ch := l.flight.DoChan(key, func() (any, error) {
		return l.fetch(context.WithoutCancel(ctx), id)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		l.log.Warn("catalog load failed",
			zap.String("surface", string(l.surface)),
			zap.Stringer("identity", id),
			zap.Error(err),
		)
		return nil, err
	}
	recipes := v.([]model.Recipe)
	if shared {
		recipes = slices.Clone(recipes)
	}
	l.log.Debug("catalog loaded",
		zap.String("surface", string(l.surface)),
		zap.Stringer("identity", id),
		zap.Int("recipes", len(recipes)),
	)
	return recipes, nil
}

func (l *Loader) fetch(ctx context.Context, id session.Identity) ([]model.Recipe, error) {
	if id.Authenticated() {
		return l.source.ListOwned(ctx, id.Token)
	}
	if l.surface == SurfaceHome {
		return l.source.ListHomePublic(ctx)
	}
	return l.source.ListCatalogPublic(ctx)
}
