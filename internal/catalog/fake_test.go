package catalog

import (
	"context"
	"sync"

	"github.com/sandeepkv93/chefschoice/internal/api"
	"github.com/sandeepkv93/chefschoice/internal/model"
)

type sourceCall struct {
	Method string
	Query  string
	Token  string
}

// fakeService records every call and answers from canned data.
type fakeService struct {
	mu       sync.Mutex
	calls    []sourceCall
	home     []model.Recipe
	public   []model.Recipe
	owned    []model.Recipe
	searches map[string]api.SearchResult
	listErr  error
	writeErr error
	updated  map[string]model.Draft
	deleted  []string
	// gate, when set, blocks list calls until closed or the call's
	// context ends.
	gate chan struct{}
}

func newFakeService() *fakeService {
	return &fakeService{
		searches: make(map[string]api.SearchResult),
		updated:  make(map[string]model.Draft),
	}
}

func (f *fakeService) record(c sourceCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeService) Calls() []sourceCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sourceCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeService) list(ctx context.Context, method, token string, data []model.Recipe) ([]model.Recipe, error) {
	f.record(sourceCall{Method: method, Token: token})
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Recipe, len(data))
	copy(out, data)
	return out, nil
}

func (f *fakeService) ListHomePublic(ctx context.Context) ([]model.Recipe, error) {
	return f.list(ctx, "ListHomePublic", "", f.home)
}

func (f *fakeService) ListCatalogPublic(ctx context.Context) ([]model.Recipe, error) {
	return f.list(ctx, "ListCatalogPublic", "", f.public)
}

func (f *fakeService) ListOwned(ctx context.Context, token string) ([]model.Recipe, error) {
	return f.list(ctx, "ListOwned", token, f.owned)
}

func (f *fakeService) SearchPublic(_ context.Context, query string) (api.SearchResult, error) {
	f.record(sourceCall{Method: "SearchPublic", Query: query})
	return f.search(query)
}

func (f *fakeService) SearchOwned(_ context.Context, query, token string) (api.SearchResult, error) {
	f.record(sourceCall{Method: "SearchOwned", Query: query, Token: token})
	return f.search(query)
}

func (f *fakeService) search(query string) (api.SearchResult, error) {
	if f.listErr != nil {
		return api.SearchResult{}, f.listErr
	}
	res, ok := f.searches[query]
	if !ok {
		return api.NoMatch("no match"), nil
	}
	return res, nil
}

func (f *fakeService) UpdateRecipe(_ context.Context, id string, draft model.Draft) error {
	f.record(sourceCall{Method: "UpdateRecipe", Query: id})
	if f.writeErr != nil {
		return &api.UpdateError{Op: "update", ID: id, Err: f.writeErr}
	}
	f.mu.Lock()
	f.updated[id] = draft
	f.mu.Unlock()
	return nil
}

func (f *fakeService) DeleteRecipe(_ context.Context, id string) error {
	f.record(sourceCall{Method: "DeleteRecipe", Query: id})
	if f.writeErr != nil {
		return &api.UpdateError{Op: "delete", ID: id, Err: f.writeErr}
	}
	f.mu.Lock()
	f.deleted = append(f.deleted, id)
	f.mu.Unlock()
	return nil
}

func pasta() model.Recipe {
	return model.Recipe{
		ID:           "r1",
		Title:        "Pasta",
		Ingredients:  []string{"pasta", "water", "salt"},
		Instructions: "Boil water\nAdd pasta\nDrain",
		ImageURL:     "https://img/pasta.png",
	}
}

func salad() model.Recipe {
	return model.Recipe{
		ID:           "r2",
		Title:        "Salad",
		Ingredients:  []string{"lettuce", "oil"},
		Instructions: "Chop\nToss",
		ImageURL:     "https://img/salad.png",
	}
}
