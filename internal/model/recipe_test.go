package model

import (
	"errors"
	"reflect"
	"testing"
)

func TestRecipeStepsSplitOnNewline(t *testing.T) {
	r := Recipe{ID: "r1", Instructions: "Boil water\nAdd pasta\nDrain"}
	got := r.Steps()
	want := []string{"Boil water", "Add pasta", "Drain"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("steps = %#v, want %#v", got, want)
	}
}

func TestRecipeStepsAlwaysAtLeastOne(t *testing.T) {
	if got := (Recipe{ID: "r1"}).Steps(); len(got) != 1 || got[0] != "" {
		t.Fatalf("expected a single empty step, got %#v", got)
	}
	if got := (Recipe{ID: "r1", Instructions: "Serve"}).Steps(); len(got) != 1 || got[0] != "Serve" {
		t.Fatalf("expected single step, got %#v", got)
	}
}

func TestRecipeValidateRequiresID(t *testing.T) {
	if err := (Recipe{Title: "no id"}).Validate(); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	if err := (Recipe{ID: "abc"}).Validate(); err != nil {
		t.Fatalf("expected valid recipe, got %v", err)
	}
}

func TestDraftFromCopiesIngredients(t *testing.T) {
	r := Recipe{ID: "r1", Title: "Soup", Ingredients: []string{"water", "salt"}}
	d := DraftFrom(r)
	d.Ingredients[0] = "broth"
	if r.Ingredients[0] != "water" {
		t.Fatalf("draft must not alias recipe ingredients, recipe now %#v", r.Ingredients)
	}
}

func TestDraftSetChangesOnlyNamedField(t *testing.T) {
	d := DraftFrom(Recipe{
		ID:           "r1",
		Title:        "Pasta",
		Ingredients:  []string{"pasta", "water"},
		Instructions: "Boil\nDrain",
		ImageURL:     "https://img/pasta.png",
	})
	if err := d.Set(FieldTitle, "X"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	want := Draft{
		Title:        "X",
		Ingredients:  []string{"pasta", "water"},
		Instructions: "Boil\nDrain",
		ImageURL:     "https://img/pasta.png",
	}
	if !reflect.DeepEqual(d, want) {
		t.Fatalf("draft = %#v, want %#v", d, want)
	}
}

func TestDraftSetIngredientsFromLines(t *testing.T) {
	var d Draft
	if err := d.Set(FieldIngredients, "flour\r\neggs\nmilk"); err != nil {
		t.Fatalf("set ingredients: %v", err)
	}
	if !reflect.DeepEqual(d.Ingredients, []string{"flour", "eggs", "milk"}) {
		t.Fatalf("unexpected ingredients: %#v", d.Ingredients)
	}
	if d.Value(FieldIngredients) != "flour\neggs\nmilk" {
		t.Fatalf("unexpected ingredients text: %q", d.Value(FieldIngredients))
	}
	if err := d.Set(FieldIngredients, ""); err != nil || len(d.Ingredients) != 0 {
		t.Fatalf("expected empty ingredients, got %#v (%v)", d.Ingredients, err)
	}
}

func TestDraftSetAcceptsEmptyValues(t *testing.T) {
	d := Draft{Title: "keep", ImageURL: "https://x"}
	if err := d.Set(FieldTitle, ""); err != nil {
		t.Fatalf("empty title must be accepted: %v", err)
	}
	if err := d.Set(FieldImageURL, "not a url"); err != nil {
		t.Fatalf("malformed url must be accepted: %v", err)
	}
	if d.Title != "" || d.ImageURL != "not a url" {
		t.Fatalf("unexpected draft: %#v", d)
	}
}

func TestDraftSetUnknownField(t *testing.T) {
	var d Draft
	err := d.Set(Field("calories"), "200")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}
