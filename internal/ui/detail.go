package ui

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/booktrack/internal/books"
	"github.com/five82/booktrack/internal/request"
)

// detailScreen shows a single book in a scrollable viewport.
type detailScreen struct {
	sid int
	env env
	id  books.ID
	mgr *request.Manager[books.Book]

	state   request.State[books.Book]
	pending bool

	spinner  spinner.Model
	viewport viewport.Model
	theme    Theme
	width    int
}

func newDetailScreen(sid int, e env, id books.ID, theme Theme) *detailScreen {
	opts := append(e.managerOptions(),
		request.WithSuccessMessage(http.MethodGet, "Book loaded successfully"))
	return &detailScreen{
		sid:      sid,
		env:      e,
		id:       id,
		theme:    theme,
		mgr:      request.New[books.Book](e.api, opts...),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		viewport: viewport.New(0, 0),
	}
}

func (s *detailScreen) Init() tea.Cmd {
	if s.id == "" {
		return nil
	}
	return tea.Batch(waitForChange(s.sid, s.mgr.Changes()), s.spinner.Tick, s.load())
}

func (s *detailScreen) load() tea.Cmd {
	if s.id == "" {
		return nil
	}
	s.pending = true
	endpoint := books.Endpoint(s.id)
	return runRequest(s.sid, "show", func() error {
		return s.mgr.Get(s.env.ctx, endpoint)
	})
}

// setID points the screen at another book and fetches it. The same id is a
// no-op.
func (s *detailScreen) setID(id books.ID) tea.Cmd {
	if id == s.id {
		return nil
	}
	wasEmpty := s.id == ""
	s.id = id
	s.viewport.GotoTop()
	if wasEmpty {
		return tea.Batch(waitForChange(s.sid, s.mgr.Changes()), s.spinner.Tick, s.load())
	}
	return s.load()
}

func (s *detailScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case stateChangedMsg:
		s.sync()
		return waitForChange(s.sid, s.mgr.Changes())

	case requestDoneMsg:
		s.pending = false
		s.sync()
		return nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		keys := s.env.keys
		switch {
		case key.Matches(msg, keys.Reload):
			return s.load()
		case key.Matches(msg, keys.Top):
			s.viewport.GotoTop()
			return nil
		case key.Matches(msg, keys.Bottom):
			s.viewport.GotoBottom()
			return nil
		}
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (s *detailScreen) sync() {
	s.state = s.mgr.Snapshot()
	s.refreshContent()
}

func (s *detailScreen) refreshContent() {
	if s.state.Data == nil {
		s.viewport.SetContent("")
		return
	}
	s.viewport.SetContent(renderBookDetail(s.theme, *s.state.Data, s.width))
}

func (s *detailScreen) Resize(width, height int) {
	s.width = width
	s.viewport.Width = width
	s.viewport.Height = max(1, height)
	s.refreshContent()
}

func (s *detailScreen) Loading() bool        { return s.state.Loading || s.pending }
func (s *detailScreen) Alert() request.Alert { return s.state.Alert }
func (s *detailScreen) Capturing() bool      { return false }
func (s *detailScreen) Close()               { s.mgr.Close() }

func (s *detailScreen) Commands() []command {
	return []command{
		{"j/k", "Scroll"},
		{"r", "Reload"},
		{"esc", "Back"},
		{"H", "Books"},
		{"?", "More"},
	}
}

func (s *detailScreen) View(theme Theme) string {
	styles := theme.Styles()
	if s.theme.Name != theme.Name {
		s.theme = theme
		s.refreshContent()
	}

	switch {
	case s.id == "":
		return styles.Text.Bold(true).Render("No book selected") + "\n\n" +
			styles.MutedText.Render("Pick a book from the list to see its details.")
	case s.Loading():
		return s.spinner.View() + " " + styles.MutedText.Render("Loading book...")
	case s.state.Data == nil:
		return styles.MutedText.Render(fmt.Sprintf("Book %s could not be loaded.", s.id))
	}
	return s.viewport.View()
}

// renderBookDetail lays out every field of a book.
func renderBookDetail(theme Theme, book books.Book, width int) string {
	styles := theme.Styles()
	label := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted)).
		Width(12)

	row := func(name, value string) string {
		if strings.TrimSpace(value) == "" {
			value = styles.FaintText.Render("-")
		}
		return label.Render(name) + value
	}

	genres := make([]string, 0, len(book.Genres))
	for _, g := range book.Genres {
		genres = append(genres, styles.Chip.Render(g))
	}

	completed := "No"
	if book.Completed {
		completed = styles.SuccessText.Render("Yes")
	}

	lines := []string{
		styles.Text.Bold(true).Render(book.Name),
		styles.MutedText.Render(book.Author),
		"",
		row("Rating", renderStars(theme, book.Rating())),
		row("Genres", strings.Join(genres, " ")),
		row("Completed", completed),
		row("Started", book.Start.String()),
		row("Finished", book.End.String()),
		row("Image", styles.AccentText.Render(book.Img)),
	}

	description := strings.TrimSpace(book.Description)
	if description != "" {
		body := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Text))
		if width > 4 {
			body = body.Width(width - 2)
		}
		lines = append(lines, "", styles.AccentText.Bold(true).Render("Description"), body.Render(description))
	}

	return strings.Join(lines, "\n")
}
