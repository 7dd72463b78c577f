package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/chefschoice/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("`%s` %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView:   string(m.CurrentView),
		Bindings:      plain,
		MarkdownStyle: views.StyleAuto,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Home, Action: "switch to Home"},
		{Key: m.Keys.Catalog, Action: "switch to Catalog"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: "r", Action: "reload"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	if m.form.active() {
		return []KeyBinding{
			{Key: "tab", Action: "next field"},
			{Key: "ctrl+s", Action: "save recipe"},
			{Key: "esc", Action: "discard changes"},
		}
	}
	switch m.CurrentView {
	case ViewHome:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "e", Action: "edit selected recipe"},
			{Key: "x", Action: "delete selected recipe"},
		}
	case ViewCatalog:
		return []KeyBinding{
			{Key: m.Keys.Search, Action: "focus search box"},
			{Key: "j/k", Action: "move selection"},
			{Key: "x", Action: "delete selected recipe"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
