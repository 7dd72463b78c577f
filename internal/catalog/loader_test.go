package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/chefschoice/internal/model"
	"github.com/sandeepkv93/chefschoice/internal/session"
)

func TestLoadAnonymousUsesSurfacePublicListing(t *testing.T) {
	cases := []struct {
		surface Surface
		method  string
	}{
		{SurfaceHome, "ListHomePublic"},
		{SurfaceCatalog, "ListCatalogPublic"},
	}
	for _, tc := range cases {
		t.Run(string(tc.surface), func(t *testing.T) {
			svc := newFakeService()
			svc.home = []model.Recipe{pasta()}
			svc.public = []model.Recipe{pasta(), salad()}
			loader := NewLoader(svc, tc.surface, nil)

			_, err := loader.Load(context.Background(), session.Anonymous)
			require.NoError(t, err)

			calls := svc.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, tc.method, calls[0].Method)
			assert.Empty(t, calls[0].Token, "anonymous load must not carry a credential")
		})
	}
}

func TestLoadAuthenticatedUsesOwnedListingWithToken(t *testing.T) {
	for _, surface := range []Surface{SurfaceHome, SurfaceCatalog} {
		svc := newFakeService()
		svc.owned = []model.Recipe{salad()}
		loader := NewLoader(svc, surface, nil)

		recipes, err := loader.Load(context.Background(), session.Identity{Token: "tok-9"})
		require.NoError(t, err)
		require.Len(t, recipes, 1)
		assert.Equal(t, "r2", recipes[0].ID)

		calls := svc.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, sourceCall{Method: "ListOwned", Token: "tok-9"}, calls[0])
	}
}

func TestLoadFailureIsReturned(t *testing.T) {
	svc := newFakeService()
	svc.listErr = errors.New("unreachable")
	loader := NewLoader(svc, SurfaceCatalog, nil)

	recipes, err := loader.Load(context.Background(), session.Anonymous)
	require.Error(t, err)
	assert.Nil(t, recipes)
}

func TestLoadRefetchesEveryTime(t *testing.T) {
	svc := newFakeService()
	svc.public = []model.Recipe{pasta()}
	loader := NewLoader(svc, SurfaceCatalog, nil)

	for range 3 {
		_, err := loader.Load(context.Background(), session.Anonymous)
		require.NoError(t, err)
	}
	assert.Len(t, svc.Calls(), 3)
}

func TestNewLoaderDefaultsUnknownSurface(t *testing.T) {
	loader := NewLoader(newFakeService(), Surface("kitchen"), nil)
	assert.Equal(t, SurfaceCatalog, loader.Surface())
}

func TestLoadCancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	svc := newFakeService()
	svc.public = []model.Recipe{pasta(), salad()}
	svc.gate = make(chan struct{})
	loader := NewLoader(svc, SurfaceCatalog, nil)

	type result struct {
		recipes []model.Recipe
		err     error
	}
	first := make(chan result, 1)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		r, err := loader.Load(ctx, session.Anonymous)
		first <- result{r, err}
	}()
	require.Eventually(t, func() bool { return len(svc.Calls()) == 1 }, time.Second, time.Millisecond)

	cancel()
	got := <-first
	assert.ErrorIs(t, got.err, context.Canceled)

	second := make(chan result, 1)
	go func() {
		r, err := loader.Load(context.Background(), session.Anonymous)
		second <- result{r, err}
	}()
	time.Sleep(20 * time.Millisecond)
	close(svc.gate)

	got = <-second
	require.NoError(t, got.err)
	assert.Len(t, got.recipes, 2)
}
