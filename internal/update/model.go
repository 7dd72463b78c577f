package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/sandeepkv93/chefschoice/internal/catalog"
	"github.com/sandeepkv93/chefschoice/internal/model"
	"github.com/sandeepkv93/chefschoice/internal/session"
)

type View string

const (
	ViewHome    View = "Home"
	ViewCatalog View = "Catalog"
)

// ParseView accepts a view name in any case.
func ParseView(raw string) (View, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "home":
		return ViewHome, true
	case "catalog":
		return ViewCatalog, true
	default:
		return "", false
	}
}

func (v View) surface() catalog.Surface {
	if v == ViewHome {
		return catalog.SurfaceHome
	}
	return catalog.SurfaceCatalog
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Home    string
	Catalog string
	Search  string
	Palette string
	Help    string
	Quit    string
}

// SurfaceState is the per-view slice of state. Both views share the same
// load and search pattern and differ only in their public listing.
type SurfaceState struct {
	Collection catalog.Collection
	Cursor     int
	Query      string

	dispatcher *catalog.Dispatcher
}

func (s SurfaceState) Selected() (model.Recipe, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Collection.Recipes) {
		return model.Recipe{}, false
	}
	return s.Collection.Recipes[s.Cursor], true
}

func (s *SurfaceState) clampCursor() {
	if s.Cursor >= len(s.Collection.Recipes) {
		s.Cursor = len(s.Collection.Recipes) - 1
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// DesktopNotifier is the toast surface.
type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Services are the collaborators the model talks to.
type Services struct {
	Source   catalog.Source
	Writer   catalog.Writer
	Identity session.Identity
	Log      *zap.Logger
	Notifier DesktopNotifier
}

type Model struct {
	CurrentView    View
	Identity       session.Identity
	Home           SurfaceState
	Catalog        SurfaceState
	Edit           catalog.EditSession
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	ctx      context.Context
	writer   catalog.Writer
	log      *zap.Logger
	notifier DesktopNotifier

	searchInput   textinput.Model
	searchFocused bool
	commandInput  textinput.Model
	form          editForm
	spinner       spinner.Model
	spinnerActive bool
	statusID      uint64
	statusTTL     time.Duration
	helpModel     help.Model
	listViewport  viewport.Model
	width         int
	height        int
}

// SwitchViewMsg changes the visible surface and remounts it.
type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

// ClearStatusMsg clears the status bar. A non-zero ID only clears the
// status it was issued for.
type ClearStatusMsg struct {
	ID uint64
}

type AppErrorMsg struct {
	Err error
}

type catalogLoadedMsg struct {
	View    View
	Seq     uint64
	Recipes []model.Recipe
}

type catalogFailedMsg struct {
	View View
	Seq  uint64
	Err  error
}

type recipeSavedMsg struct {
	Req catalog.SaveRequest
	Err error
}

type recipeDeletedMsg struct {
	ID  string
	Err error
}

func NewModel(svc Services) Model {
	return NewModelWithConfig(svc, DefaultRuntimeConfig())
}

func NewModelWithConfig(svc Services, cfg RuntimeConfig) Model {
	log := svc.Log
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		CurrentView:    ViewHome,
		Identity:       svc.Identity,
		DesktopEnabled: cfg.DesktopNotifications,
		Keys: GlobalKeyMap{
			Home:    "1",
			Catalog: "2",
			Search:  "/",
			Palette: ":",
			Help:    "?",
			Quit:    "q",
		},
		ctx:       context.Background(),
		writer:    svc.Writer,
		log:       log,
		notifier:  NoopDesktopNotifier{},
		width:     120,
		height:    40,
		statusTTL: 3 * time.Second,
	}
	if svc.Notifier != nil {
		m.notifier = svc.Notifier
	}
	if cfg.View == ViewCatalog {
		m.CurrentView = ViewCatalog
	}
	m.Home = newSurface(svc.Source, catalog.SurfaceHome, log)
	m.Catalog = newSurface(svc.Source, catalog.SurfaceCatalog, log)
	m.initBubbleComponents()
	return m
}

// WithContext sets the context every request of the program runs under.
func (m Model) WithContext(ctx context.Context) Model {
	if ctx != nil {
		m.ctx = ctx
	}
	return m
}

func newSurface(src catalog.Source, surface catalog.Surface, log *zap.Logger) SurfaceState {
	loader := catalog.NewLoader(src, surface, log)
	return SurfaceState{
		Collection: catalog.NewCollection(),
		dispatcher: catalog.NewDispatcher(loader, src, log),
	}
}

func (m *Model) initBubbleComponents() {
	m.searchInput = textinput.New()
	m.searchInput.Prompt = "search> "
	m.searchInput.Placeholder = "type to search recipes"
	m.searchInput.CharLimit = 256
	m.searchInput.Width = 42
	m.searchInput.Cursor.SetMode(cursor.CursorStatic)

	m.commandInput = textinput.New()
	m.commandInput.Prompt = ":"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48
	m.commandInput.Cursor.SetMode(cursor.CursorStatic)

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.listViewport = viewport.New(56, 30)
}

func (m *Model) surface() *SurfaceState {
	if m.CurrentView == ViewCatalog {
		return &m.Catalog
	}
	return &m.Home
}

func (m *Model) surfaceFor(v View) *SurfaceState {
	if v == ViewCatalog {
		return &m.Catalog
	}
	return &m.Home
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.log.Debug("desktop notification failed", zap.Error(err))
		}
	}
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}
