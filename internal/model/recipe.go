package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingID    = errors.New("model: recipe id is required")
	ErrUnknownField = errors.New("model: unknown recipe field")
)

type Field string

const (
	FieldTitle        Field = "title"
	FieldIngredients  Field = "ingredients"
	FieldInstructions Field = "instructions"
	FieldImageURL     Field = "imageUrl"
)

// EditableFields lists the draft fields in form order.
var EditableFields = []Field{FieldTitle, FieldIngredients, FieldInstructions, FieldImageURL}

func (f Field) IsValid() bool {
	switch f {
	case FieldTitle, FieldIngredients, FieldInstructions, FieldImageURL:
		return true
	default:
		return false
	}
}

// Recipe mirrors the record served by the remote catalog. ID is assigned by
// the remote store and never changes.
type Recipe struct {
	ID           string   `json:"_id"`
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	ImageURL     string   `json:"imageUrl"`
}

func (r Recipe) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrMissingID
	}
	return nil
}

// Steps splits the newline-delimited instructions into ordered steps.
// There is always at least one step, possibly empty.
func (r Recipe) Steps() []string {
	return SplitSteps(r.Instructions)
}

func SplitSteps(instructions string) []string {
	return strings.Split(instructions, "\n")
}

// Draft is the editable shadow copy of a Recipe held by an edit session.
type Draft struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	ImageURL     string   `json:"imageUrl"`
}

func DraftFrom(r Recipe) Draft {
	ingredients := make([]string, len(r.Ingredients))
	copy(ingredients, r.Ingredients)
	return Draft{
		Title:        r.Title,
		Ingredients:  ingredients,
		Instructions: r.Instructions,
		ImageURL:     r.ImageURL,
	}
}

// Set replaces exactly one field. Values are not validated; the ingredients
// field takes one ingredient per line.
func (d *Draft) Set(field Field, value string) error {
	switch field {
	case FieldTitle:
		d.Title = value
	case FieldIngredients:
		d.Ingredients = splitIngredients(value)
	case FieldInstructions:
		d.Instructions = value
	case FieldImageURL:
		d.ImageURL = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Value returns the text form of a field, as shown in an edit form.
func (d Draft) Value(field Field) string {
	switch field {
	case FieldTitle:
		return d.Title
	case FieldIngredients:
		return strings.Join(d.Ingredients, "\n")
	case FieldInstructions:
		return d.Instructions
	case FieldImageURL:
		return d.ImageURL
	default:
		return ""
	}
}

func splitIngredients(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(strings.ReplaceAll(value, "\r\n", "\n"), "\n")
}
