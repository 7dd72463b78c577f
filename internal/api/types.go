package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandeepkv93/chefschoice/internal/model"
)

// Endpoint paths of the remote catalog service.
const (
	PathHomePublic    = "/auth/public"
	PathCatalogPublic = "/auth/recipe/public"
	PathOwned         = "/auth/recipe"
	PathPublicSearch  = "/searchRecipes/"
	PathOwnedSearch   = "/auth/searchRecipes/"
	PathRecipe        = "/api/recipe/"
)

// SearchResult is either a list of matches or a no-match signal carrying the
// service's message.
type SearchResult struct {
	Recipes []model.Recipe
	NoMatch bool
	Message string
}

func Matches(recipes []model.Recipe) SearchResult {
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	return SearchResult{Recipes: recipes}
}

func NoMatch(message string) SearchResult {
	return SearchResult{Recipes: []model.Recipe{}, NoMatch: true, Message: message}
}

type messageBody struct {
	Message *string `json:"message"`
}

func decodeRecipes(op string, body []byte) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := json.Unmarshal(body, &recipes); err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	return normalizeRecipes(op, recipes)
}

func normalizeRecipes(op string, recipes []model.Recipe) ([]model.Recipe, error) {
	if recipes == nil {
		return []model.Recipe{}, nil
	}
	for i := range recipes {
		if err := recipes[i].Validate(); err != nil {
			return nil, &ParseError{Op: op, Err: fmt.Errorf("recipe %d: %w", i, err)}
		}
		if recipes[i].Ingredients == nil {
			recipes[i].Ingredients = []string{}
		}
	}
	return recipes, nil
}

// decodeSearch tells a match list (JSON array) from a no-match object
// (JSON object with a message field).
func decodeSearch(op string, body []byte) (SearchResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return SearchResult{}, &ParseError{Op: op, Err: errors.New("empty body")}
	}
	switch trimmed[0] {
	case '[':
		recipes, err := decodeRecipes(op, trimmed)
		if err != nil {
			return SearchResult{}, err
		}
		return Matches(recipes), nil
	case '{':
		var msg messageBody
		if err := json.Unmarshal(trimmed, &msg); err != nil {
			return SearchResult{}, &ParseError{Op: op, Err: err}
		}
		if msg.Message == nil {
			return SearchResult{}, &ParseError{Op: op, Err: errors.New("object without message field")}
		}
		return NoMatch(*msg.Message), nil
	default:
		return SearchResult{}, &ParseError{Op: op, Err: fmt.Errorf("unexpected body starting with %q", trimmed[0])}
	}
}
