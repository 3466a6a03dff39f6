package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/booktrack/internal/prefs"
	"github.com/five82/booktrack/internal/request"
)

// Options configures the UI.
type Options struct {
	Context context.Context
	API     request.Doer
	// BaseURL is shown in the header.
	BaseURL          string
	Logger           *zap.Logger
	ThemeName        string
	PrefsPath        string
	Route            string
	AlertDuration    time.Duration
	PlaceholderImage string
	Clock            request.Clock
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	env       env
	baseURL   string
	prefsPath string
	log       *zap.Logger

	// UI state
	theme    Theme
	keys     keyMap
	width    int
	height   int
	ready    bool
	showHelp bool

	// Routing
	route    Route
	path     string
	history  []string
	screen   screen
	screenID int
}

// New creates the root model mounted at opts.Route.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	keys := defaultKeyMap()
	m := Model{
		ctx:       ctx,
		baseURL:   opts.BaseURL,
		prefsPath: prefsPath,
		log:       log,
		theme:     GetTheme(themeName),
		keys:      keys,
		env: env{
			ctx:           ctx,
			api:           opts.API,
			log:           log,
			keys:          keys,
			alertDuration: opts.AlertDuration,
			placeholder:   opts.PlaceholderImage,
			clock:         opts.Clock,
		},
	}
	m.mount(opts.Route)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.screen.Init(), m.watchContext())
}

// watchContext quits the program once the context is cancelled.
func (m Model) watchContext() tea.Cmd {
	if m.ctx.Done() == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		<-ctx.Done()
		return tea.QuitMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeScreen()
		return m, nil

	case navigateMsg:
		return m.navigate(msg.path, true)

	case stateChangedMsg:
		if msg.screen != m.screenID {
			return m, nil
		}
		return m, m.screen.Update(msg)

	case requestDoneMsg:
		if msg.screen != m.screenID {
			return m, nil
		}
		if msg.err != nil && !errors.Is(msg.err, request.ErrClosed) {
			m.log.Debug("screen request failed", zap.String("route", m.path), zap.String("op", msg.op), zap.Error(msg.err))
		}
		return m, m.screen.Update(msg)
	}

	return m, m.screen.Update(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input. Global keys only apply while no text
// input owns the keyboard.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.screen.Capturing() {
		return m, m.screen.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				m.log.Warn("save preferences", zap.String("path", m.prefsPath), zap.Error(err))
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.AddBook):
		if m.route.Kind == RouteAdd {
			return m, nil
		}
		return m.navigate("/addnew", true)

	case key.Matches(msg, m.keys.Home):
		if m.route.Kind == RouteList {
			return m, nil
		}
		return m.navigate("/", true)

	case key.Matches(msg, m.keys.Back):
		return m.back()
	}

	return m, m.screen.Update(msg)
}

// navigate switches to path. A detail screen that is already mounted is
// pointed at the new id instead of being rebuilt.
func (m Model) navigate(path string, record bool) (tea.Model, tea.Cmd) {
	next := ParseRoute(path)
	if record && m.path != "" {
		m.history = append(m.history, m.path)
	}

	if detail, ok := m.screen.(*detailScreen); ok && next.Kind == RouteDetail && m.route.Kind == RouteDetail {
		m.route = next
		m.path = next.Path()
		m.log.Debug("route changed", zap.String("route", m.path))
		return m, detail.setID(next.ID)
	}

	m.mount(path)
	m.resizeScreen()
	return m, m.screen.Init()
}

func (m Model) back() (tea.Model, tea.Cmd) {
	if len(m.history) == 0 {
		if m.route.Kind == RouteList {
			return m, nil
		}
		return m.navigate("/", false)
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return m.navigate(prev, false)
}

// mount closes the current screen and builds the one for path.
func (m *Model) mount(path string) {
	if m.screen != nil {
		m.screen.Close()
	}
	m.screenID++
	m.route = ParseRoute(path)
	m.path = m.route.Path()

	switch m.route.Kind {
	case RouteList:
		m.screen = newListScreen(m.screenID, m.env)
	case RouteDetail:
		m.screen = newDetailScreen(m.screenID, m.env, m.route.ID, m.theme)
	case RouteAdd:
		m.screen = newAddScreen(m.screenID, m.env)
	default:
		m.path = path
		m.screen = &staticScreen{
			title:   "Page not found",
			message: "Nothing lives at " + path + ". Press H for the book list.",
		}
	}
	m.log.Debug("route mounted", zap.String("route", m.path), zap.String("book_id", string(m.route.ID)))
}

func (m Model) resizeScreen() {
	if !m.ready {
		return
	}
	m.screen.Resize(m.width, m.bodyHeight())
}

// Route returns the path of the mounted screen.
func (m Model) Route() string {
	return m.path
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		m = fm
	}
	m.close()
	return err
}

func (m Model) close() {
	if m.screen != nil {
		m.screen.Close()
	}
}
