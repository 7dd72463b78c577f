package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/chefschoice/internal/api"
	"github.com/sandeepkv93/chefschoice/internal/model"
	"github.com/sandeepkv93/chefschoice/internal/session"
)

// run issues one search through the collection the way the TUI does.
func run(t *testing.T, d *Dispatcher, c *Collection, query string, id session.Identity) {
	t.Helper()
	seq := c.Begin()
	recipes, err := d.Search(context.Background(), query, id)
	if err != nil {
		require.NoError(t, c.Fail(seq, err))
		return
	}
	require.NoError(t, c.Apply(seq, recipes))
}

func TestAnonymousSearchAndClearRefetches(t *testing.T) {
	svc := newFakeService()
	svc.public = []model.Recipe{pasta(), salad()}
	svc.searches["pasta"] = api.Matches([]model.Recipe{pasta()})
	d := newDispatcher(svc, SurfaceCatalog)
	id := session.Anonymous

	c := NewCollection()
	run(t, d, &c, "", id)
	require.Len(t, c.Recipes, 2)

	run(t, d, &c, "pasta", id)
	require.Len(t, c.Recipes, 1)
	assert.Equal(t, "r1", c.Recipes[0].ID)

	run(t, d, &c, "", id)
	require.Len(t, c.Recipes, 2)

	var methods []string
	for _, call := range svc.Calls() {
		methods = append(methods, call.Method)
		assert.Empty(t, call.Token)
	}
	assert.Equal(t, []string{"ListCatalogPublic", "SearchPublic", "ListCatalogPublic"}, methods)
}

func TestSearchFailureKeepsPreviousResults(t *testing.T) {
	svc := newFakeService()
	svc.public = []model.Recipe{pasta(), salad()}
	d := newDispatcher(svc, SurfaceCatalog)

	c := NewCollection()
	run(t, d, &c, "", session.Anonymous)

	svc.listErr = &api.FetchError{Op: "search", Status: 500}
	run(t, d, &c, "pa", session.Anonymous)

	assert.Equal(t, StatusFailed, c.Status)
	assert.Len(t, c.Recipes, 2)
	var fe *api.FetchError
	assert.ErrorAs(t, c.Err, &fe)
}

func TestSaveThenReloadShowsServerState(t *testing.T) {
	svc := newFakeService()
	svc.home = []model.Recipe{pasta()}
	d := newDispatcher(svc, SurfaceHome)

	c := NewCollection()
	run(t, d, &c, "", session.Anonymous)

	var s EditSession
	r, ok := c.Find("r1")
	require.True(t, ok)
	s.BeginEdit(r)
	require.NoError(t, s.UpdateField(model.FieldTitle, "Pasta al limone"))
	require.NoError(t, s.Save(context.Background(), svc))

	updated := pasta()
	updated.Title = svc.updated["r1"].Title
	svc.home = []model.Recipe{updated}
	run(t, d, &c, "", session.Anonymous)

	p := Project(c, s)
	require.Len(t, p.Items, 1)
	require.NotNil(t, p.Items[0].Card)
	assert.Equal(t, "Pasta al limone", p.Items[0].Card.Title)
}
