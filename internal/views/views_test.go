package views

import (
	"errors"
	"strings"
	"testing"

	"github.com/sandeepkv93/chefschoice/internal/catalog"
	"github.com/sandeepkv93/chefschoice/internal/model"
)

func TestRenderStepsNumbersEachStep(t *testing.T) {
	got := RenderSteps([]string{"Boil water", "Add pasta", "Drain"})
	want := "1. Boil water\n2. Add pasta\n3. Drain"
	if got != want {
		t.Fatalf("unexpected steps:\n%q\nwant\n%q", got, want)
	}
}

func TestRenderStepsKeepsTextAsWritten(t *testing.T) {
	steps := []string{
		"Heat <oven> to 180",
		"Mix 2 * 3 *eggs* and __butter__",
		"- garnish",
		"",
		"# Serve [warm](now)",
	}
	got := RenderSteps(steps)
	want := "1. Heat <oven> to 180\n" +
		"2. Mix 2 * 3 *eggs* and __butter__\n" +
		"3. - garnish\n" +
		"4. \n" +
		"5. # Serve [warm](now)"
	if got != want {
		t.Fatalf("unexpected steps:\n%q\nwant\n%q", got, want)
	}

	out := RenderCard(CardData{ID: "r9", Title: "Bake", Steps: steps})
	for _, want := range []string{"1. Heat <oven> to 180", "2. Mix 2 * 3 *eggs* and __butter__", "3. - garnish", "5. # Serve [warm](now)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("card missing %q:\n%s", want, out)
		}
	}
}

func TestRenderHelpPanelRendersBindings(t *testing.T) {
	out := RenderHelpPanel(HelpPanelData{
		CurrentView:   "Home",
		Bindings:      []string{"`e` edit selected recipe", "`x` delete selected recipe"},
		HelpView:      "e edit",
		MarkdownStyle: StylePlain,
	})
	for _, want := range []string{"help: home", "edit selected recipe", "delete selected recipe", "e edit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("help panel missing %q:\n%s", want, out)
		}
	}
}

func TestRenderCardShowsRecipe(t *testing.T) {
	out := RenderCard(CardData{
		ID:          "r1",
		Title:       "Pasta",
		ImageURL:    "https://img/pasta.png",
		Ingredients: []string{"pasta", "salt"},
		Steps:       []string{"Boil water", "Add pasta", "Drain"},
	})
	for _, want := range []string{"Pasta", "id: r1", "image: https://img/pasta.png", "- pasta", "- salt", "Boil water", "Add pasta", "Drain"} {
		if !strings.Contains(out, want) {
			t.Fatalf("card missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPlaceholderKinds(t *testing.T) {
	if got := RenderPlaceholder(PlaceholderData{Kind: catalog.PlaceholderPending, SpinnerView: "*"}); !strings.Contains(got, "* loading recipes") {
		t.Fatalf("unexpected pending placeholder: %q", got)
	}
	if got := RenderPlaceholder(PlaceholderData{Kind: catalog.PlaceholderEmpty}); got != "(no recipes)" {
		t.Fatalf("unexpected empty placeholder: %q", got)
	}
	if got := RenderPlaceholder(PlaceholderData{Kind: catalog.PlaceholderFailed, Err: errors.New("offline")}); !strings.Contains(got, "offline") {
		t.Fatalf("unexpected failed placeholder: %q", got)
	}
	if got := RenderPlaceholder(PlaceholderData{Kind: catalog.PlaceholderNone}); got != "" {
		t.Fatalf("expected no placeholder, got %q", got)
	}
}

func TestRenderProjectionMixesCardsAndForms(t *testing.T) {
	p := catalog.Projection{Items: []catalog.Item{
		{ID: "r1", Form: &catalog.Form{ID: "r1", Draft: model.Draft{Title: "Draft title", Ingredients: []string{"a", "b"}}, Saving: true}},
		{ID: "r2", Card: &catalog.Card{ID: "r2", Title: "Salad", Steps: []string{"Toss"}}},
	}}
	out := RenderProjection(p)
	for _, want := range []string{"editing r1", "Draft title", "saving...", "Salad", "Toss"} {
		if !strings.Contains(out, want) {
			t.Fatalf("projection missing %q:\n%s", want, out)
		}
	}
}

func TestRenderListPanelPlaceholderBeforeItems(t *testing.T) {
	out := RenderListPanel(ListPanelData{
		Title:       "catalog",
		SearchView:  "search> pas",
		Placeholder: PlaceholderData{Kind: catalog.PlaceholderEmpty},
	})
	want := "catalog:\nsearch> pas\n(no recipes)"
	if out != want {
		t.Fatalf("unexpected panel:\n%q\nwant\n%q", out, want)
	}
}

func TestRenderCommandPalette(t *testing.T) {
	if RenderCommandPalette(false, "x") != "" {
		t.Fatal("inactive palette must render nothing")
	}
	if got := RenderCommandPalette(true, "reload"); got != "command: reload" {
		t.Fatalf("unexpected palette: %q", got)
	}
}
