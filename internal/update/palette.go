package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/chefschoice/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Search: func(a commands.SearchArgs) (commands.Result, error) {
			if m.CurrentView != ViewCatalog {
				next = m.switchView(ViewCatalog)
			}
			m.searchInput.SetValue(a.Query)
			next = tea.Batch(next, m.search(a.Query))
			if a.Query == "" {
				return commands.Result{Message: "showing all recipes"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("searching for %q", a.Query)}, nil
		},
		Reload: func() (commands.Result, error) {
			next = m.reload(m.CurrentView)
			return commands.Result{Message: "reloading"}, nil
		},
		Edit: func(a commands.EditArgs) (commands.Result, error) {
			if err := m.beginEdit(a.ID); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			return commands.Result{Message: fmt.Sprintf("editing %s", a.ID)}, nil
		},
		Set: func(a commands.SetArgs) (commands.Result, error) {
			if err := m.setField(a.Field, a.Value); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s updated", a.Field)}, nil
		},
		Save: func() (commands.Result, error) {
			c, err := m.save()
			if err != nil {
				return commands.Result{}, err
			}
			next = c
			return commands.Result{Message: "saving..."}, nil
		},
		Cancel: func() (commands.Result, error) {
			if !m.Edit.Editing() {
				return commands.Result{}, errors.New("no recipe is being edited")
			}
			m.cancelEdit()
			return commands.Result{Message: "edit cancelled"}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			c, err := m.deleteRecipe(a.ID)
			if err != nil {
				return commands.Result{}, err
			}
			next = c
			return commands.Result{Message: fmt.Sprintf("deleting %s...", a.ID)}, nil
		},
		View: func(a commands.ViewArgs) (commands.Result, error) {
			v, _ := ParseView(a.Name)
			next = m.switchView(v)
			return commands.Result{Message: fmt.Sprintf("switched to %s", v)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	return m, next
}
