package books

import (
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Book mirrors a record served by /books.
type Book struct {
	ID          ID       `json:"id,omitempty"`
	Name        string   `json:"name"`
	Author      string   `json:"author"`
	Genres      []string `json:"genres"`
	Completed   bool     `json:"completed"`
	Start       *Date    `json:"start"`
	End         *Date    `json:"end"`
	Stars       *int     `json:"stars"`
	Img         string   `json:"img"`
	Description string   `json:"description"`
}

// Rating returns the star count, treating a missing rating as zero.
func (b Book) Rating() int {
	if b.Stars == nil {
		return 0
	}
	return *b.Stars
}

// Path returns the client route of the book's detail view.
func (b Book) Path() string {
	return "/book/" + string(b.ID)
}

// ID identifies a book on the remote store. Older json-server builds emit
// numeric ids and newer ones emit strings, so both decode into the same value.
type ID string

// UnmarshalJSON accepts a JSON number, string or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*id = ""
		return nil
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return &InvalidIDError{Raw: raw}
	}
	*id = ID(raw)
	return nil
}

// InvalidIDError reports an id that is neither a number nor a string.
type InvalidIDError struct {
	Raw string
}

func (e *InvalidIDError) Error() string {
	return "invalid book id " + e.Raw
}

// Date is a calendar day. Browser date pickers post full timestamps, so
// decoding accepts RFC 3339 as well as plain YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) *Date {
	y, m, d := t.Date()
	return &Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a user supplied day. An empty value yields nil.
func ParseDate(value string) (*Date, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	t, ok := parseTime(trimmed)
	if !ok {
		return nil, &InvalidDateError{Value: value}
	}
	return NewDate(t), nil
}

// InvalidDateError reports a value that matches none of the accepted layouts.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return "invalid date " + strconv.Quote(e.Value) + ", want YYYY-MM-DD"
}

// String renders the day as YYYY-MM-DD.
func (d *Date) String() string {
	if d == nil || d.IsZero() {
		return ""
	}
	return d.Format(time.DateOnly)
}

// MarshalJSON encodes the day as YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.Format(time.DateOnly))), nil
}

// UnmarshalJSON decodes RFC 3339 timestamps and YYYY-MM-DD days.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		d.Time = time.Time{}
		return nil
	}
	t, ok := parseTime(s)
	if !ok {
		return &InvalidDateError{Value: s}
	}
	d.Time = NewDate(t).Time
	return nil
}

func parseTime(value string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
