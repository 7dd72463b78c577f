package catalog

import (
	"context"
	"errors"
	"slices"

	"github.com/sandeepkv93/chefschoice/internal/model"
)

var (
	ErrNotEditing  = errors.New("catalog: no recipe is being edited")
	ErrSavePending = errors.New("catalog: save already in progress")
)

type EditState string

const (
	EditIdle    EditState = "idle"
	EditEditing EditState = "editing"
)

// EditSession tracks the single recipe under edit, if any. Starting an edit
// discards any earlier buffer without confirmation.
type EditSession struct {
	state    EditState
	targetID string
	buffer   model.Draft
	saving   bool
	gen      uint64
}

// SaveRequest is what a save sends: the target id and the whole buffer.
type SaveRequest struct {
	ID    string
	Draft model.Draft

	gen uint64
}

func (s EditSession) State() EditState {
	if s.state == "" {
		return EditIdle
	}
	return s.state
}

func (s EditSession) Editing() bool {
	return s.state == EditEditing
}

func (s EditSession) Saving() bool {
	return s.saving
}

func (s EditSession) TargetID() string {
	return s.targetID
}

// Buffer returns a copy of the edit buffer.
func (s EditSession) Buffer() model.Draft {
	d := s.buffer
	d.Ingredients = slices.Clone(s.buffer.Ingredients)
	return d
}

func (s *EditSession) BeginEdit(r model.Recipe) {
	s.gen++
	s.state = EditEditing
	s.targetID = r.ID
	s.buffer = model.DraftFrom(r)
	s.saving = false
}

// UpdateField changes one buffer field. Values are forwarded unvalidated.
func (s *EditSession) UpdateField(field model.Field, value string) error {
	if !s.Editing() {
		return ErrNotEditing
	}
	return s.buffer.Set(field, value)
}

// Cancel drops the buffer without contacting the service.
func (s *EditSession) Cancel() {
	s.gen++
	s.state = EditIdle
	s.targetID = ""
	s.buffer = model.Draft{}
	s.saving = false
}

// StartSave marks a save as pending and returns what must be sent.
func (s *EditSession) StartSave() (SaveRequest, error) {
	if !s.Editing() {
		return SaveRequest{}, ErrNotEditing
	}
	if s.saving {
		return SaveRequest{}, ErrSavePending
	}
	s.saving = true
	return SaveRequest{ID: s.targetID, Draft: s.Buffer(), gen: s.gen}, nil
}

// FinishSave applies the outcome of req. Success returns the session to
// idle; failure keeps the buffer so the user can retry. Outcomes of saves
// for an edit that was since cancelled or replaced return ErrStale.
func (s *EditSession) FinishSave(req SaveRequest, err error) error {
	if req.gen != s.gen || !s.Editing() {
		return ErrStale
	}
	s.saving = false
	if err != nil {
		return err
	}
	s.Cancel()
	return nil
}

// Save runs a whole save synchronously against w.
func (s *EditSession) Save(ctx context.Context, w Writer) error {
	req, err := s.StartSave()
	if err != nil {
		return err
	}
	return s.FinishSave(req, w.UpdateRecipe(ctx, req.ID, req.Draft))
}

// Deleted tells the session that recipe id no longer exists.
func (s *EditSession) Deleted(id string) {
	if s.Editing() && s.targetID == id {
		s.Cancel()
	}
}

// Delete removes recipe id from the service.
func (s *EditSession) Delete(ctx context.Context, w Writer, id string) error {
	if err := w.DeleteRecipe(ctx, id); err != nil {
		return err
	}
	s.Deleted(id)
	return nil
}
