package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/chefschoice/internal/catalog"
	"github.com/sandeepkv93/chefschoice/internal/session"
)

func searchCmd(ctx context.Context, d *catalog.Dispatcher, id session.Identity, v View, seq uint64, query string) tea.Cmd {
	return func() tea.Msg {
		recipes, err := d.Search(ctx, query, id)
		if err != nil {
			return catalogFailedMsg{View: v, Seq: seq, Err: err}
		}
		return catalogLoadedMsg{View: v, Seq: seq, Recipes: recipes}
	}
}

func saveCmd(ctx context.Context, w catalog.Writer, req catalog.SaveRequest) tea.Cmd {
	return func() tea.Msg {
		return recipeSavedMsg{Req: req, Err: w.UpdateRecipe(ctx, req.ID, req.Draft)}
	}
}

func deleteCmd(ctx context.Context, w catalog.Writer, id string) tea.Cmd {
	return func() tea.Msg {
		return recipeDeletedMsg{ID: id, Err: w.DeleteRecipe(ctx, id)}
	}
}

// clearStatusCmd clears the status bar after a delay unless a newer status
// replaced it in the meantime.
func clearStatusCmd(id uint64, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
