package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/five82/booktrack/internal/books"
	"github.com/five82/booktrack/internal/logtail"
	"github.com/five82/booktrack/internal/request"
)

// AddInput is a book as typed on the command line. Values go through the same
// field change path as the TUI form.
type AddInput struct {
	Name        string
	Author      string
	Genres      string // comma-joined
	Completed   bool
	Start       string // YYYY-MM-DD
	End         string // YYYY-MM-DD
	Stars       string
	Img         string
	Description string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// List prints the books whose name contains filter as a table.
func List(ctx context.Context, opts Options, w io.Writer, filter string) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	mgr := request.New[[]books.Book](rt.client, rt.managerOptions()...)
	defer mgr.Close()

	if err := mgr.Get(ctx, "books"); err != nil {
		return fmt.Errorf("list books: %w", err)
	}
	var all []books.Book
	if st := mgr.Snapshot(); st.Data != nil {
		all = *st.Data
	}
	matches := books.FilterByName(all, filter)
	rt.log.Info("listed books", zap.Int("total", len(all)), zap.Int("matches", len(matches)), zap.String("filter", filter))

	if len(matches) == 0 {
		if strings.TrimSpace(filter) != "" {
			_, err := fmt.Fprintf(w, "No books match %q.\n", filter)
			return err
		}
		_, err := fmt.Fprintln(w, "No books yet.")
		return err
	}

	_, err = fmt.Fprintln(w, renderTable(matches))
	return err
}

func renderTable(list []books.Book) string {
	rows := make([][]string, 0, len(list))
	for _, b := range list {
		rows = append(rows, []string{
			string(b.ID),
			b.Name,
			b.Author,
			strings.Join(b.Genres, ", "),
			stars(b.Rating()),
			yesNo(b.Completed),
			b.Path(),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "AUTHOR", "GENRES", "STARS", "DONE", "LINK").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}

// Show prints a single book.
func Show(ctx context.Context, opts Options, w io.Writer, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("show book: id is required")
	}

	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	mgr := request.New[books.Book](rt.client, rt.managerOptions()...)
	defer mgr.Close()

	if err := mgr.Get(ctx, books.Endpoint(books.ID(id))); err != nil {
		if books.IsNotFound(err) {
			return fmt.Errorf("show book: no book with id %s", id)
		}
		return fmt.Errorf("show book: %w", err)
	}
	st := mgr.Snapshot()
	if st.Data == nil {
		return fmt.Errorf("show book: server returned no book for id %s", id)
	}

	_, err = io.WriteString(w, describe(*st.Data))
	return err
}

func describe(b books.Book) string {
	var sb strings.Builder
	row := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&sb, "%-12s %s\n", label+":", value)
	}
	row("ID", string(b.ID))
	row("Title", b.Name)
	row("Author", b.Author)
	row("Genres", strings.Join(b.Genres, ", "))
	row("Rating", stars(b.Rating()))
	row("Completed", yesNo(b.Completed))
	row("Started", b.Start.String())
	row("Finished", b.End.String())
	row("Image", b.Img)
	row("Description", strings.TrimSpace(b.Description))
	return sb.String()
}

// Add validates the input, posts it and prints the resulting alert.
func Add(ctx context.Context, opts Options, w io.Writer, in AddInput) error {
	draft, err := in.draft()
	if err != nil {
		return fmt.Errorf("add book: %w", err)
	}

	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	draft = draft.WithPlaceholderImage(rt.cfg.PlaceholderImage)
	if err := draft.Validate(); err != nil {
		return fmt.Errorf("add book: %w", err)
	}

	mgr := request.New[books.Book](rt.client, rt.managerOptions()...)
	defer mgr.Close()

	postErr := mgr.Post(ctx, "books", draft)
	st := mgr.Snapshot()
	if _, err := fmt.Fprintln(w, st.Alert.Message); err != nil {
		return err
	}
	if postErr != nil {
		return fmt.Errorf("add book: %w", postErr)
	}
	if st.Data != nil && st.Data.ID != "" {
		_, err = fmt.Fprintf(w, "Created %s (%s)\n", st.Data.Name, st.Data.Path())
		return err
	}
	return nil
}

func (in AddInput) draft() (books.Draft, error) {
	d := books.NewDraft()
	changes := []books.Change{
		{Field: books.FieldName, Value: in.Name},
		{Field: books.FieldAuthor, Value: in.Author},
		{Field: books.FieldImg, Value: in.Img},
		{Field: books.FieldGenres, Value: in.Genres},
		{Field: books.FieldCompleted, Checked: in.Completed},
		{Field: books.FieldStart, Value: in.Start},
		{Field: books.FieldEnd, Value: in.End},
		{Field: books.FieldStars, Value: in.Stars},
		{Field: books.FieldDescription, Value: in.Description},
	}
	for _, ch := range changes {
		if err := d.Apply(ch); err != nil {
			return books.Draft{}, fmt.Errorf("%s: %w", ch.Field, err)
		}
	}
	return d, nil
}

// Logs prints the last n lines of the client log, formatted for reading.
func Logs(opts Options, w io.Writer, n int) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	path := rt.cfg.LogFile
	rt.Close()

	lines, err := logtail.Read(path, n)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		_, err := fmt.Fprintf(w, "No log entries in %s\n", path)
		return err
	}
	for _, line := range logtail.FormatLines(lines) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func stars(n int) string {
	n = max(0, min(5, n))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
