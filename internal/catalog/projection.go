package catalog

import (
	"slices"

	"github.com/sandeepkv93/chefschoice/internal/model"
)

type Placeholder string

const (
	PlaceholderNone    Placeholder = ""
	PlaceholderPending Placeholder = "pending"
	PlaceholderEmpty   Placeholder = "empty"
	PlaceholderFailed  Placeholder = "failed"
)

// Card is the read-only projection of a recipe.
type Card struct {
	ID          string
	Title       string
	ImageURL    string
	Ingredients []string
	Steps       []string
}

// Form is the editable projection of the recipe under edit.
type Form struct {
	ID     string
	Draft  model.Draft
	Saving bool
}

// Item holds exactly one of Card or Form.
type Item struct {
	ID   string
	Card *Card
	Form *Form
}

type Projection struct {
	Items       []Item
	Placeholder Placeholder
	Err         error
}

// Project turns the collection and edit session into display items. It has
// no side effects and the same inputs always give the same output.
func Project(c Collection, s EditSession) Projection {
	out := Projection{Items: make([]Item, 0, len(c.Recipes)), Err: c.Err}
	if len(c.Recipes) == 0 {
		switch c.Status {
		case StatusFailed:
			out.Placeholder = PlaceholderFailed
		case StatusLoaded:
			out.Placeholder = PlaceholderEmpty
		default:
			out.Placeholder = PlaceholderPending
		}
		return out
	}
	for _, r := range c.Recipes {
		if s.Editing() && s.TargetID() == r.ID {
			out.Items = append(out.Items, Item{ID: r.ID, Form: &Form{
				ID:     r.ID,
				Draft:  s.Buffer(),
				Saving: s.Saving(),
			}})
			continue
		}
		out.Items = append(out.Items, Item{ID: r.ID, Card: &Card{
			ID:          r.ID,
			Title:       r.Title,
			ImageURL:    r.ImageURL,
			Ingredients: slices.Clone(r.Ingredients),
			Steps:       r.Steps(),
		}})
	}
	return out
}
