package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/booktrack/internal/books"
	"github.com/five82/booktrack/internal/request"
)

// formField is one row of the add form. Checkbox rows have no input.
type formField struct {
	field    books.Field
	label    string
	input    textinput.Model
	checkbox bool
}

// addScreen edits a draft book and posts it.
type addScreen struct {
	sid int
	env env
	mgr *request.Manager[books.Book]

	state      request.State[books.Book]
	draft      books.Draft
	fields     []formField
	fieldErrs  map[books.Field]string
	focus      int // index into fields, len(fields) is the submit button, -1 is none
	submitting bool

	spinner spinner.Model
	width   int
}

func newAddScreen(sid int, e env) *addScreen {
	s := &addScreen{
		sid:       sid,
		env:       e,
		mgr:       request.New[books.Book](e.api, e.managerOptions()...),
		draft:     books.NewDraft(),
		fieldErrs: make(map[books.Field]string),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	s.fields = []formField{
		newTextField(books.FieldName, "Title", "", 200),
		newTextField(books.FieldAuthor, "Author", "", 200),
		newTextField(books.FieldImg, "Image (url)", "https://...", 500),
		newTextField(books.FieldGenres, "Genres", "Fantasy, Science Fiction", 300),
		{field: books.FieldCompleted, label: "Completed", checkbox: true},
		newTextField(books.FieldStart, "Started", "YYYY-MM-DD", 10),
		newTextField(books.FieldEnd, "Finished", "YYYY-MM-DD", 10),
		newTextField(books.FieldStars, "Stars", "0-5", 1),
		newTextField(books.FieldDescription, "Description", "", 1000),
	}
	s.setFocus(0)
	return s
}

func newTextField(field books.Field, label, placeholder string, limit int) formField {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = limit
	return formField{field: field, label: label, input: in}
}

func (s *addScreen) Init() tea.Cmd {
	return tea.Batch(waitForChange(s.sid, s.mgr.Changes()), s.spinner.Tick, textinput.Blink)
}

func (s *addScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case stateChangedMsg:
		s.state = s.mgr.Snapshot()
		return waitForChange(s.sid, s.mgr.Changes())

	case requestDoneMsg:
		s.state = s.mgr.Snapshot()
		if msg.op != "add" {
			return nil
		}
		// Leave for the list whether or not the post succeeded.
		s.submitting = false
		return navigate("/")

	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if f := s.focusedInput(); f != nil {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return cmd
	}
	return nil
}

func (s *addScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	keys := s.env.keys

	switch {
	case key.Matches(msg, keys.Submit):
		return s.submit()
	case msg.String() == "tab" || msg.String() == "down":
		s.moveFocus(1)
		return nil
	case msg.String() == "shift+tab" || msg.String() == "up":
		s.moveFocus(-1)
		return nil
	}

	if s.focus < 0 {
		// Nothing focused: the root handles global keys, enter re-enters the form.
		if msg.String() == "enter" {
			s.setFocus(0)
		}
		return nil
	}

	if key.Matches(msg, keys.Blur) {
		s.setFocus(-1)
		return nil
	}

	if s.focus == len(s.fields) {
		if msg.String() == "enter" || msg.String() == " " {
			return s.submit()
		}
		return nil
	}

	f := &s.fields[s.focus]
	if f.checkbox {
		if key.Matches(msg, keys.ToggleCheck) || msg.String() == "enter" {
			s.edit(books.Change{Field: f.field, Checked: !s.draft.Completed})
		}
		return nil
	}
	if msg.String() == "enter" {
		s.moveFocus(1)
		return nil
	}

	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if after := f.input.Value(); after != before {
		s.edit(books.Change{Field: f.field, Value: after})
	}
	return cmd
}

// edit applies one change event to the draft. A rejected value is shown next
// to its field and the draft keeps the previous value.
func (s *addScreen) edit(ch books.Change) {
	if err := s.draft.Apply(ch); err != nil {
		s.fieldErrs[ch.Field] = err.Error()
		return
	}
	delete(s.fieldErrs, ch.Field)
	if ch.Field == books.FieldCompleted && !s.draft.Completed {
		// Finished is only editable for completed books.
		s.clearField(books.FieldEnd)
	}
}

// setValue types value into the named field as a single edit.
func (s *addScreen) setValue(field books.Field, value string) {
	for i := range s.fields {
		if s.fields[i].field == field && !s.fields[i].checkbox {
			s.fields[i].input.SetValue(value)
			s.edit(books.Change{Field: field, Value: value})
			return
		}
	}
}

func (s *addScreen) clearField(field books.Field) {
	for i := range s.fields {
		if s.fields[i].field == field {
			s.fields[i].input.SetValue("")
		}
	}
	_ = s.draft.Apply(books.Change{Field: field})
	delete(s.fieldErrs, field)
}

func (s *addScreen) submit() tea.Cmd {
	if s.submitting {
		return nil
	}
	for _, f := range s.fields {
		if msg, ok := s.fieldErrs[f.field]; ok {
			s.mgr.Notify(request.AlertError, "Error: "+f.label+": "+msg)
			return nil
		}
	}

	draft := s.draft.WithPlaceholderImage(s.env.placeholder)
	if err := draft.Validate(); err != nil {
		s.mgr.Notify(request.AlertError, "Error: "+err.Error())
		return nil
	}

	s.submitting = true
	return runRequest(s.sid, "add", func() error {
		return s.mgr.Post(s.env.ctx, "books", draft)
	})
}

func (s *addScreen) moveFocus(delta int) {
	next := s.focus
	for range len(s.fields) + 1 {
		next += delta
		if next < 0 {
			next = len(s.fields)
		}
		if next > len(s.fields) {
			next = 0
		}
		if s.focusable(next) {
			break
		}
	}
	s.setFocus(next)
}

func (s *addScreen) focusable(i int) bool {
	if i == len(s.fields) {
		return true
	}
	return s.fields[i].field != books.FieldEnd || s.draft.Completed
}

func (s *addScreen) setFocus(i int) {
	for j := range s.fields {
		if j == i && !s.fields[j].checkbox {
			s.fields[j].input.Focus()
		} else {
			s.fields[j].input.Blur()
		}
	}
	s.focus = i
}

func (s *addScreen) focusedInput() *formField {
	if s.focus < 0 || s.focus >= len(s.fields) || s.fields[s.focus].checkbox {
		return nil
	}
	return &s.fields[s.focus]
}

func (s *addScreen) Resize(width, _ int) {
	s.width = width
	for i := range s.fields {
		s.fields[i].input.Width = max(10, min(60, width-20))
	}
}

func (s *addScreen) Loading() bool        { return s.state.Loading || s.submitting }
func (s *addScreen) Alert() request.Alert { return s.state.Alert }
func (s *addScreen) Close()               { s.mgr.Close() }

// Capturing is true while any form row has focus. Global keys apply only
// once esc has blurred the form.
func (s *addScreen) Capturing() bool {
	return s.focus >= 0
}

func (s *addScreen) Commands() []command {
	if s.focus < 0 {
		return []command{{"enter", "Edit form"}, {"esc", "Back"}, {"?", "More"}}
	}
	return []command{
		{"tab", "Next"},
		{"shift+tab", "Prev"},
		{"space", "Toggle"},
		{"ctrl+s", "Add new"},
		{"esc", "Leave form"},
	}
}

func (s *addScreen) View(theme Theme) string {
	styles := theme.Styles()
	label := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted)).
		Width(14)
	focusedLabel := label.Foreground(lipgloss.Color(theme.Accent)).Bold(true)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Add a book"))
	b.WriteString("\n\n")

	for i, f := range s.fields {
		l := label
		if i == s.focus {
			l = focusedLabel
		}
		b.WriteString(l.Render(f.label))

		switch {
		case f.checkbox:
			box := "[ ]"
			if s.draft.Completed {
				box = "[x]"
			}
			b.WriteString(styles.Text.Render(box))
		case !s.focusable(i):
			b.WriteString(styles.FaintText.Render("(mark as completed first)"))
		default:
			b.WriteString(f.input.View())
		}
		if f.field == books.FieldStars && s.draft.Stars != nil {
			b.WriteString("  " + renderStars(theme, *s.draft.Stars))
		}
		if msg, ok := s.fieldErrs[f.field]; ok {
			b.WriteString("  " + styles.DangerText.Render(msg))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	button := lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(lipgloss.Color(theme.Text)).
		Background(lipgloss.Color(theme.SurfaceAlt))
	if s.focus == len(s.fields) {
		button = button.
			Foreground(lipgloss.Color(theme.Background)).
			Background(lipgloss.Color(theme.Accent)).
			Bold(true)
	}
	b.WriteString(button.Render("Add new"))
	if s.submitting {
		b.WriteString("  " + s.spinner.View() + " " + styles.MutedText.Render("Saving..."))
	}
	return b.String()
}
