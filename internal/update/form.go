package update

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/chefschoice/internal/model"
	"github.com/sandeepkv93/chefschoice/internal/views"
)

// formField is one editable buffer field. Multi-line fields use a textarea.
type formField struct {
	Field     model.Field
	multiline bool
	input     textinput.Model
	area      textarea.Model
}

func (f formField) Value() string {
	if f.multiline {
		return f.area.Value()
	}
	return f.input.Value()
}

func (f formField) View() string {
	if f.multiline {
		return f.area.View()
	}
	return f.input.View()
}

// editForm mirrors the edit buffer in bubbles components.
type editForm struct {
	targetID string
	fields   []formField
	focus    int
}

func newEditForm(id string, d model.Draft) editForm {
	f := editForm{targetID: id}
	for _, name := range model.EditableFields {
		field := formField{Field: name}
		switch name {
		case model.FieldIngredients, model.FieldInstructions:
			field.multiline = true
			field.area = textarea.New()
			field.area.SetWidth(50)
			field.area.SetHeight(5)
			field.area.ShowLineNumbers = false
			field.area.CharLimit = 0
			field.area.Cursor.SetMode(cursor.CursorStatic)
			field.area.SetValue(d.Value(name))
		default:
			field.input = textinput.New()
			field.input.Prompt = ""
			field.input.CharLimit = 1024
			field.input.Width = 48
			field.input.Cursor.SetMode(cursor.CursorStatic)
			field.input.SetValue(d.Value(name))
		}
		f.fields = append(f.fields, field)
	}
	f.applyFocus()
	return f
}

func (f editForm) active() bool {
	return f.targetID != ""
}

func (f editForm) Focused() model.Field {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focus].Field
}

func (f *editForm) next() {
	if len(f.fields) == 0 {
		return
	}
	f.focus = (f.focus + 1) % len(f.fields)
	f.applyFocus()
}

func (f *editForm) prev() {
	if len(f.fields) == 0 {
		return
	}
	f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
	f.applyFocus()
}

func (f *editForm) applyFocus() {
	for i := range f.fields {
		if f.fields[i].multiline {
			if i == f.focus {
				f.fields[i].area.Focus()
			} else {
				f.fields[i].area.Blur()
			}
			continue
		}
		if i == f.focus {
			f.fields[i].input.Focus()
		} else {
			f.fields[i].input.Blur()
		}
	}
}

// set replaces a field value, used when the buffer changes outside the form.
func (f *editForm) set(name model.Field, value string) {
	for i := range f.fields {
		if f.fields[i].Field != name {
			continue
		}
		if f.fields[i].multiline {
			f.fields[i].area.SetValue(value)
		} else {
			f.fields[i].input.SetValue(value)
		}
	}
}

// update routes a key to the focused field and returns its new value.
func (f *editForm) update(msg tea.KeyMsg) (model.Field, string, tea.Cmd) {
	if len(f.fields) == 0 {
		return "", "", nil
	}
	field := &f.fields[f.focus]
	var cmd tea.Cmd
	switch {
	case field.multiline && msg.Type == tea.KeyRunes:
		field.area.InsertString(string(msg.Runes))
	case field.multiline:
		field.area, cmd = field.area.Update(msg)
	default:
		field.input, cmd = field.input.Update(msg)
	}
	return field.Field, field.Value(), cmd
}

func (f editForm) render(saving bool, spinnerView string) string {
	data := views.FormData{ID: f.targetID, Saving: saving, SpinnerView: spinnerView}
	for i, field := range f.fields {
		data.Fields = append(data.Fields, views.FormFieldData{
			Label:   string(field.Field),
			View:    field.View(),
			Focused: i == f.focus,
		})
	}
	return views.RenderForm(data)
}
