package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/booktrack/internal/books"
	"github.com/five82/booktrack/internal/request"
)

const (
	maxStars   = 5
	cardHeight = 6 // 4 content lines plus the border
)

// listScreen shows every book as a card with a free-text name filter.
type listScreen struct {
	sid int
	env env
	mgr *request.Manager[[]books.Book]

	state   request.State[[]books.Book]
	pending bool

	filter   textinput.Model
	spinner  spinner.Model
	visible  []books.Book
	selected int
	offset   int

	width  int
	height int
}

func newListScreen(sid int, e env) *listScreen {
	filter := textinput.New()
	filter.Placeholder = "Search books"
	filter.Prompt = "/ "
	filter.CharLimit = 120

	return &listScreen{
		sid:     sid,
		env:     e,
		mgr:     request.New[[]books.Book](e.api, e.managerOptions()...),
		filter:  filter,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *listScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForChange(s.sid, s.mgr.Changes()), s.spinner.Tick}
	if !s.state.HasData() {
		cmds = append(cmds, s.load())
	}
	return tea.Batch(cmds...)
}

// load fetches the whole collection.
func (s *listScreen) load() tea.Cmd {
	s.pending = true
	return runRequest(s.sid, "list", func() error {
		return s.mgr.Get(s.env.ctx, "books")
	})
}

func (s *listScreen) Update(msg tea.Msg) tea.Cmd {
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
		return s.handleKey(msg)
	}
	return nil
}

func (s *listScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	keys := s.env.keys

	if s.filter.Focused() {
		switch msg.String() {
		case "esc", "enter":
			s.filter.Blur()
			return nil
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.refilter()
		return cmd
	}

	switch {
	case key.Matches(msg, keys.Filter):
		return s.filter.Focus()
	case key.Matches(msg, keys.Reload):
		return s.load()
	case key.Matches(msg, keys.Open):
		if book, ok := s.selectedBook(); ok {
			return navigate(book.Path())
		}
	case key.Matches(msg, keys.Up):
		s.moveSelection(-1)
	case key.Matches(msg, keys.Down):
		s.moveSelection(1)
	case key.Matches(msg, keys.Top):
		s.moveSelection(-len(s.visible))
	case key.Matches(msg, keys.Bottom):
		s.moveSelection(len(s.visible))
	case key.Matches(msg, keys.PageUp):
		s.moveSelection(-s.pageSize())
	case key.Matches(msg, keys.PageDown):
		s.moveSelection(s.pageSize())
	}
	return nil
}

// sync re-reads the manager state and recomputes the filtered view.
func (s *listScreen) sync() {
	s.state = s.mgr.Snapshot()
	s.refilter()
}

func (s *listScreen) refilter() {
	var all []books.Book
	if s.state.Data != nil {
		all = *s.state.Data
	}
	s.visible = books.FilterByName(all, s.filter.Value())
	s.moveSelection(0)
}

func (s *listScreen) moveSelection(delta int) {
	s.selected += delta
	if s.selected >= len(s.visible) {
		s.selected = len(s.visible) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}

	page := s.pageSize()
	if s.selected < s.offset {
		s.offset = s.selected
	}
	if s.selected >= s.offset+page {
		s.offset = s.selected - page + 1
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

func (s *listScreen) selectedBook() (books.Book, bool) {
	if s.selected < 0 || s.selected >= len(s.visible) {
		return books.Book{}, false
	}
	return s.visible[s.selected], true
}

func (s *listScreen) pageSize() int {
	rows := (s.height - 2) / cardHeight
	if rows < 1 {
		return 1
	}
	return rows
}

func (s *listScreen) Resize(width, height int) {
	s.width = width
	s.height = height
	s.filter.Width = max(10, width-4)
	s.moveSelection(0)
}

func (s *listScreen) Loading() bool        { return s.state.Loading || s.pending }
func (s *listScreen) Alert() request.Alert { return s.state.Alert }
func (s *listScreen) Capturing() bool      { return s.filter.Focused() }
func (s *listScreen) Close()               { s.mgr.Close() }

func (s *listScreen) Commands() []command {
	if s.filter.Focused() {
		return []command{{"enter", "Done"}, {"esc", "Leave search"}}
	}
	return []command{
		{"/", "Search"},
		{"j/k", "Navigate"},
		{"enter", "Learn more"},
		{"a", "Add"},
		{"r", "Reload"},
		{"?", "More"},
	}
}

func (s *listScreen) View(theme Theme) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(s.filter.View())
	b.WriteString("\n\n")

	switch {
	case s.Loading():
		b.WriteString(s.spinner.View() + " " + styles.MutedText.Render("Loading books..."))
	case len(s.visible) == 0:
		if strings.TrimSpace(s.filter.Value()) != "" {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("No books match %q.", s.filter.Value())))
		} else {
			b.WriteString(styles.MutedText.Render("No books yet. Press a to add one."))
		}
	default:
		end := min(len(s.visible), s.offset+s.pageSize())
		cards := make([]string, 0, end-s.offset)
		for i := s.offset; i < end; i++ {
			cards = append(cards, renderCard(theme, s.visible[i], i == s.selected, s.width))
		}
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
		if len(s.visible) > end-s.offset {
			b.WriteString("\n")
			b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d-%d of %d", s.offset+1, end, len(s.visible))))
		}
	}
	return b.String()
}

// renderCard draws one book: genres, name, author, rating and its link.
func renderCard(theme Theme, book books.Book, selected bool, width int) string {
	styles := theme.Styles()

	chips := make([]string, 0, len(book.Genres))
	for _, g := range book.Genres {
		chips = append(chips, styles.Chip.Render(g))
	}
	genres := styles.FaintText.Render("no genres")
	if len(chips) > 0 {
		genres = strings.Join(chips, " ")
	}

	footer := renderStars(theme, book.Rating()) + "  " +
		styles.AccentText.Render("Learn More "+book.Path())

	body := strings.Join([]string{
		genres,
		styles.Text.Bold(true).Render(book.Name),
		styles.MutedText.Render(book.Author),
		footer,
	}, "\n")

	card := styles.Card
	if selected {
		card = styles.SelectedCard
	}
	if width > 4 {
		card = card.Width(width - 2)
	}
	return card.Render(body)
}

// renderStars draws a five-star rating, clamping out-of-range values.
func renderStars(theme Theme, n int) string {
	n = max(0, min(maxStars, n))
	styles := theme.Styles()
	return styles.Star.Render(strings.Repeat("★", n)) +
		styles.FaintText.Render(strings.Repeat("☆", maxStars-n))
}
