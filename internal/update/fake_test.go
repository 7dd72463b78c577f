package update

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/chefschoice/internal/api"
	"github.com/sandeepkv93/chefschoice/internal/model"
)

type fakeRecipes struct {
	mu       sync.Mutex
	calls    []string
	home     []model.Recipe
	public   []model.Recipe
	owned    []model.Recipe
	searches map[string][]model.Recipe
	listErr  error
	writeErr error
	updated  map[string]model.Draft
	deleted  []string
}

func newFakeRecipes() *fakeRecipes {
	return &fakeRecipes{
		home:     []model.Recipe{pasta(), salad()},
		public:   []model.Recipe{pasta(), salad()},
		searches: make(map[string][]model.Recipe),
		updated:  make(map[string]model.Draft),
	}
}

func (f *fakeRecipes) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeRecipes) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRecipes) list(call string, data []model.Recipe) ([]model.Recipe, error) {
	f.record(call)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Recipe(nil), data...), nil
}

func (f *fakeRecipes) ListHomePublic(context.Context) ([]model.Recipe, error) {
	return f.list("GET /auth/public", f.home)
}

func (f *fakeRecipes) ListCatalogPublic(context.Context) ([]model.Recipe, error) {
	return f.list("GET /auth/recipe/public", f.public)
}

func (f *fakeRecipes) ListOwned(_ context.Context, token string) ([]model.Recipe, error) {
	return f.list("GET /auth/recipe token="+token, f.owned)
}

func (f *fakeRecipes) SearchPublic(_ context.Context, query string) (api.SearchResult, error) {
	f.record("GET /searchRecipes/" + query)
	return f.search(query)
}

func (f *fakeRecipes) SearchOwned(_ context.Context, query, token string) (api.SearchResult, error) {
	f.record("GET /auth/searchRecipes/" + query + " token=" + token)
	return f.search(query)
}

func (f *fakeRecipes) search(query string) (api.SearchResult, error) {
	if f.listErr != nil {
		return api.SearchResult{}, f.listErr
	}
	if found, ok := f.searches[query]; ok {
		return api.Matches(found), nil
	}
	return api.NoMatch("No recipes found"), nil
}

func (f *fakeRecipes) UpdateRecipe(_ context.Context, id string, d model.Draft) error {
	f.record("PUT /api/recipe/" + id)
	if f.writeErr != nil {
		return &api.UpdateError{Op: "update", ID: id, Err: f.writeErr}
	}
	f.mu.Lock()
	f.updated[id] = d
	f.mu.Unlock()
	return nil
}

func (f *fakeRecipes) DeleteRecipe(_ context.Context, id string) error {
	f.record("DELETE /api/recipe/" + id)
	if f.writeErr != nil {
		return &api.UpdateError{Op: "delete", ID: id, Err: f.writeErr}
	}
	f.mu.Lock()
	f.deleted = append(f.deleted, id)
	f.mu.Unlock()
	return nil
}

type recordingNotifier struct {
	sent []Notification
}

func (r *recordingNotifier) Send(n Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

func pasta() model.Recipe {
	return model.Recipe{
		ID:           "r1",
		Title:        "Pasta",
		Ingredients:  []string{"pasta", "water"},
		Instructions: "Boil water\nAdd pasta\nDrain",
	}
}

func salad() model.Recipe {
	return model.Recipe{
		ID:           "r2",
		Title:        "Salad",
		Ingredients:  []string{"lettuce"},
		Instructions: "Toss",
	}
}

func newTestModel(f *fakeRecipes) Model {
	m := NewModel(Services{Source: f, Writer: f})
	m.statusTTL = time.Millisecond
	return m
}

// drain runs cmd and every command batched inside it, returning the
// messages that reach the model. Spinner ticks and status clears are dropped.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch typed := msg.(type) {
	case nil, spinner.TickMsg, ClearStatusMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range typed {
			out = append(out, drain(t, c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// settle feeds the messages produced by cmd back into m until no more
// messages are produced.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	pending := drain(t, cmd)
	for len(pending) > 0 {
		msg := pending[0]
		pending = pending[1:]
		updated, next := m.Update(msg)
		m = updated.(Model)
		pending = append(pending, drain(t, next)...)
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmds []tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "home":
			msg = tea.KeyMsg{Type: tea.KeyHome}
		case "ctrl+s":
			msg = tea.KeyMsg{Type: tea.KeyCtrlS}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, cmd := m.Update(msg)
		m = updated.(Model)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func mounted(t *testing.T, f *fakeRecipes) Model {
	t.Helper()
	m := newTestModel(f)
	return settle(t, m, m.Init())
}
