package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/booktrack/internal/request"
)

// screen is one mounted route. Screens are created on navigation and closed
// when the route changes; each owns its own request manager.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(theme Theme) string
	Resize(width, height int)

	// Status reports the request state the root layout renders.
	Loading() bool
	Alert() request.Alert

	// Capturing is true while a text input owns the keyboard.
	Capturing() bool
	Commands() []command

	Close()
}

type command struct {
	key  string
	desc string
}

// env holds what every screen needs to issue requests.
type env struct {
	ctx           context.Context
	api           request.Doer
	log           *zap.Logger
	keys          keyMap
	alertDuration time.Duration
	placeholder   string
	clock         request.Clock
}

func (e env) managerOptions() []request.Option {
	opts := []request.Option{
		request.WithLogger(e.log),
		request.WithAlertDuration(e.alertDuration),
	}
	if e.clock != nil {
		opts = append(opts, request.WithClock(e.clock))
	}
	return opts
}

// staticScreen renders a fixed message. It backs unknown routes.
type staticScreen struct {
	title   string
	message string
}

func (s *staticScreen) Init() tea.Cmd { return nil }
func (s *staticScreen) Update(tea.Msg) tea.Cmd { return nil }
func (s *staticScreen) Resize(int, int) {}
func (s *staticScreen) Loading() bool { return false }
func (s *staticScreen) Alert() request.Alert { return request.Alert{} }
func (s *staticScreen) Capturing() bool { return false }
func (s *staticScreen) Close() {}
func (s *staticScreen) Commands() []command { return []command{{"H", "Books"}, {"a", "Add"}} }
func (s *staticScreen) View(theme Theme) string {
	styles := theme.Styles()
	return styles.Text.Bold(true).Render(s.title) + "\n\n" + styles.MutedText.Render(s.message)
}
