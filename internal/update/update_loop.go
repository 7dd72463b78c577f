package update

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/chefschoice/internal/catalog"
	"github.com/sandeepkv93/chefschoice/internal/model"
	"github.com/sandeepkv93/chefschoice/internal/views"
)

// Init mounts the starting view.
func (m Model) Init() tea.Cmd {
	return m.mountCmd()
}

// mountCmd is what Init would return for the current view. Tests use it to
// drive the mount load without a program.
func (m *Model) mountCmd() tea.Cmd {
	return m.reload(m.CurrentView)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = typed.Width, typed.Height
		m.listViewport.Width = max(20, typed.Width/2-4)
		m.listViewport.Height = max(5, typed.Height-8)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case spinner.TickMsg:
		if !m.busy() {
			m.spinnerActive = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case catalogLoadedMsg:
		s := m.surfaceFor(typed.View)
		if err := s.Collection.Apply(typed.Seq, typed.Recipes); err != nil {
			m.log.Debug("discarding stale catalog result", zap.String("view", string(typed.View)), zap.Uint64("seq", typed.Seq))
			return m, nil
		}
		s.clampCursor()
		if m.Status.IsError {
			m.Status = StatusBar{}
		}
		return m, nil
	case catalogFailedMsg:
		s := m.surfaceFor(typed.View)
		if err := s.Collection.Fail(typed.Seq, typed.Err); err != nil {
			return m, nil
		}
		m.LastError = typed.Err
		m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		return m, nil
	case recipeSavedMsg:
		return m.onSaved(typed)
	case recipeDeletedMsg:
		return m.onDeleted(typed)
	case SwitchViewMsg:
		if _, ok := ParseView(string(typed.View)); !ok {
			return m, nil
		}
		return m, m.switchView(typed.View)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		if typed.ID == 0 || typed.ID == m.statusID {
			m.Status = StatusBar{}
		}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}

	if m.Palette.Active {
		if keyStr == m.Keys.Help {
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
		return m.handlePaletteKey(msg)
	}
	if m.form.active() {
		return m.handleFormKey(msg)
	}
	if m.searchFocused {
		return m.handleSearchKey(msg)
	}

	switch keyStr {
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Home:
		return m, m.switchView(ViewHome)
	case m.Keys.Catalog:
		return m, m.switchView(ViewCatalog)
	case m.Keys.Search:
		if m.CurrentView != ViewCatalog {
			m.Status = StatusBar{Text: "search is available in the catalog view", IsError: true}
			return m, nil
		}
		m.searchFocused = true
		m.searchInput.Focus()
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case "j", "down":
		s := m.surface()
		if s.Cursor < len(s.Collection.Recipes)-1 {
			s.Cursor++
		}
		return m, nil
	case "k", "up":
		s := m.surface()
		if s.Cursor > 0 {
			s.Cursor--
		}
		return m, nil
	case "r":
		return m, m.reload(m.CurrentView)
	case "e":
		r, ok := m.surface().Selected()
		if !ok {
			return m, nil
		}
		if err := m.beginEdit(r.ID); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
		return m, nil
	case "x":
		r, ok := m.surface().Selected()
		if !ok {
			return m, nil
		}
		cmd, err := m.deleteRecipe(r.ID)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
		return m, cmd
	case "pgdown", "pgup", "ctrl+d", "ctrl+u":
		m.listViewport.SetContent(m.renderList())
		var cmd tea.Cmd
		m.listViewport, cmd = m.listViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.searchFocused = false
		m.searchInput.Blur()
		return m, nil
	}
	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	query := m.searchInput.Value()
	if query == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.search(query))
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.cancelEdit()
		m.Status = StatusBar{Text: "edit cancelled"}
		return m, nil
	case "tab":
		m.form.next()
		return m, nil
	case "shift+tab":
		m.form.prev()
		return m, nil
	case "ctrl+s":
		cmd, err := m.save()
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
		return m, cmd
	}
	if m.Edit.Saving() {
		return m, nil
	}
	field, value, cmd := m.form.update(msg)
	if err := m.Edit.UpdateField(field, value); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
	return m, cmd
}

// switchView shows v and remounts it: its query is cleared and the base
// listing is fetched again.
func (m *Model) switchView(v View) tea.Cmd {
	if m.form.active() && v != ViewHome {
		m.cancelEdit()
	}
	m.CurrentView = v
	m.searchFocused = false
	m.searchInput.Blur()
	return m.reload(v)
}

// reload fetches the base listing of view v. The catalog search box is
// cleared so it matches what is shown.
func (m *Model) reload(v View) tea.Cmd {
	s := m.surfaceFor(v)
	s.Query = ""
	if v == ViewCatalog {
		m.searchInput.SetValue("")
	}
	return m.dispatch(v, "")
}

func (m *Model) search(query string) tea.Cmd {
	s := m.surfaceFor(ViewCatalog)
	s.Query = query
	return m.dispatch(ViewCatalog, query)
}

func (m *Model) dispatch(v View, query string) tea.Cmd {
	s := m.surfaceFor(v)
	if s.dispatcher == nil {
		return nil
	}
	seq := s.Collection.Begin()
	return m.withSpinner(searchCmd(m.ctx, s.dispatcher, m.Identity, v, seq, query))
}

// transientStatus shows a non-error status that clears itself.
func (m *Model) transientStatus(text string) tea.Cmd {
	m.statusID++
	m.Status = StatusBar{Text: text}
	return clearStatusCmd(m.statusID, m.statusTTL)
}

func (m *Model) withSpinner(cmd tea.Cmd) tea.Cmd {
	if m.spinnerActive {
		return cmd
	}
	m.spinnerActive = true
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) busy() bool {
	return m.Home.Collection.InFlight() || m.Catalog.Collection.InFlight() || m.Edit.Saving()
}

func (m *Model) beginEdit(id string) error {
	if m.CurrentView != ViewHome {
		return errors.New("editing is available in the home view")
	}
	r, ok := m.Home.Collection.Find(id)
	if !ok {
		return fmt.Errorf("recipe %s is not listed", id)
	}
	m.Edit.BeginEdit(r)
	m.form = newEditForm(r.ID, m.Edit.Buffer())
	m.Status = StatusBar{Text: fmt.Sprintf("editing %s", r.Title)}
	return nil
}

func (m *Model) setField(field model.Field, value string) error {
	if err := m.Edit.UpdateField(field, value); err != nil {
		return err
	}
	m.form.set(field, m.Edit.Buffer().Value(field))
	return nil
}

func (m *Model) cancelEdit() {
	m.Edit.Cancel()
	m.form = editForm{}
}

func (m *Model) save() (tea.Cmd, error) {
	if m.writer == nil {
		return nil, errors.New("saving is not configured")
	}
	req, err := m.Edit.StartSave()
	if err != nil {
		return nil, err
	}
	m.Status = StatusBar{Text: "saving..."}
	return m.withSpinner(saveCmd(m.ctx, m.writer, req)), nil
}

func (m Model) onSaved(msg recipeSavedMsg) (tea.Model, tea.Cmd) {
	err := m.Edit.FinishSave(msg.Req, msg.Err)
	if errors.Is(err, catalog.ErrStale) {
		m.log.Debug("discarding stale save result", zap.String("id", msg.Req.ID))
		return m, nil
	}
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Save failed", err.Error(), "error")
		return m, nil
	}
	m.form = editForm{}
	m.notify("Recipe saved", msg.Req.Draft.Title, "info")
	return m, tea.Batch(m.reload(ViewHome), m.transientStatus(fmt.Sprintf("saved %s", msg.Req.Draft.Title)))
}

func (m *Model) deleteRecipe(id string) (tea.Cmd, error) {
	if m.writer == nil {
		return nil, errors.New("deleting is not configured")
	}
	if _, ok := m.surface().Collection.Find(id); !ok {
		return nil, fmt.Errorf("recipe %s is not listed", id)
	}
	m.Status = StatusBar{Text: fmt.Sprintf("deleting %s...", id)}
	return deleteCmd(m.ctx, m.writer, id), nil
}

func (m Model) onDeleted(msg recipeDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.LastError = msg.Err
		m.Status = StatusBar{Text: msg.Err.Error(), IsError: true}
		m.notify("Delete failed", msg.Err.Error(), "error")
		return m, nil
	}
	if m.Edit.Editing() && m.Edit.TargetID() == msg.ID {
		m.form = editForm{}
	}
	m.Edit.Deleted(msg.ID)
	m.notify("Recipe deleted", msg.ID, "info")
	clearCmd := m.transientStatus(fmt.Sprintf("deleted %s", msg.ID))
	if s := m.surface(); s.Query != "" {
		return m, tea.Batch(m.search(s.Query), clearCmd)
	}
	return m, tea.Batch(m.reload(m.CurrentView), clearCmd)
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	vp := m.listViewport
	vp.SetContent(m.renderList())
	right := strings.TrimSpace(strings.Join([]string{
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	}, "\n"))

	notification := ""
	if n := len(m.Notifications); n > 0 {
		last := m.Notifications[n-1]
		notification = views.RenderNotification(last.Level, last.Title+": "+last.Body)
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("chefschoice | view: %s | %s", m.CurrentView, m.Identity),
		LeftPane:     vp.View(),
		RightPane:    right,
		StatusLine:   status,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s home | %s catalog | %s search | %s cmd | e edit | x delete | r reload | %s help | %s quit",
			m.Keys.Home, m.Keys.Catalog, m.Keys.Search, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderList() string {
	s := m.Home
	if m.CurrentView == ViewCatalog {
		s = m.Catalog
	}
	edit := m.Edit
	if m.CurrentView != ViewHome {
		edit = catalog.EditSession{}
	}
	p := catalog.Project(s.Collection, edit)

	items := make([]string, 0, len(p.Items))
	for i, item := range p.Items {
		switch {
		case item.Form != nil:
			items = append(items, m.form.render(item.Form.Saving, m.spinner.View()))
		case item.Card != nil:
			items = append(items, views.RenderCard(views.CardFromProjection(*item.Card, i == s.Cursor)))
		}
	}
	data := views.ListPanelData{
		Title: strings.ToLower(string(m.CurrentView)),
		Placeholder: views.PlaceholderData{
			Kind:        p.Placeholder,
			SpinnerView: m.spinner.View(),
			Err:         p.Err,
		},
		Items: items,
	}
	if m.CurrentView == ViewCatalog {
		data.SearchView = m.searchInput.View()
	}
	return views.RenderListPanel(data)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value())
}
