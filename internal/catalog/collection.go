package catalog

import (
	"errors"

	"github.com/sandeepkv93/chefschoice/internal/model"
)

// ErrStale is returned when a result arrives for a request that has been
// superseded by a newer one.
var ErrStale = errors.New("catalog: stale result")

type Status string

const (
	StatusPending Status = "pending"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

// Collection is the render-ready recipe list. Every load or search takes a
// sequence number from Begin; a result only commits if it is newer than the
// last committed one, so a slow response can never overwrite a later query.
type Collection struct {
	Status  Status
	Recipes []model.Recipe
	Err     error

	issued  uint64
	applied uint64
}

func NewCollection() Collection {
	return Collection{Status: StatusPending, Recipes: []model.Recipe{}}
}

// Begin reserves the sequence number for a new request.
func (c *Collection) Begin() uint64 {
	c.issued++
	return c.issued
}

// InFlight reports whether a request newer than the committed state exists.
func (c Collection) InFlight() bool {
	return c.issued > c.applied
}

// Apply replaces the recipes wholesale with the result of request seq.
func (c *Collection) Apply(seq uint64, recipes []model.Recipe) error {
	if seq <= c.applied || seq > c.issued {
		return ErrStale
	}
	if recipes == nil {
		recipes = []model.Recipe{}
	}
	c.applied = seq
	c.Recipes = recipes
	c.Status = StatusLoaded
	c.Err = nil
	return nil
}

// Fail records the failure of request seq. The previous recipes stay.
func (c *Collection) Fail(seq uint64, err error) error {
	if seq <= c.applied || seq > c.issued {
		return ErrStale
	}
	c.applied = seq
	c.Status = StatusFailed
	c.Err = err
	return nil
}

// Find returns the recipe with the given id.
func (c Collection) Find(id string) (model.Recipe, bool) {
	for _, r := range c.Recipes {
		if r.ID == id {
			return r, true
		}
	}
	return model.Recipe{}, false
}
