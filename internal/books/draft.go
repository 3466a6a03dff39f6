package books

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// PlaceholderImage is used when a draft is submitted without an image.
const PlaceholderImage = "https://via.placeholder.com/150"

// Draft is a book that has not been submitted yet.
type Draft struct {
	Name        string   `json:"name"`
	Author      string   `json:"author"`
	Genres      []string `json:"genres"`
	Completed   bool     `json:"completed"`
	Start       *Date    `json:"start"`
	End         *Date    `json:"end"`
	Stars       *int     `json:"stars" validate:"omitempty,min=0,max=5"`
	Img         string   `json:"img" validate:"omitempty,url"`
	Description string   `json:"description"`
}

// NewDraft returns an empty draft.
func NewDraft() Draft {
	return Draft{Genres: []string{}}
}

// Field names a draft field as carried by change events.
type Field string

const (
	FieldName        Field = "name"
	FieldAuthor      Field = "author"
	FieldImg         Field = "img"
	FieldGenres      Field = "genres"
	FieldCompleted   Field = "completed"
	FieldStart       Field = "start"
	FieldEnd         Field = "end"
	FieldStars       Field = "stars"
	FieldDescription Field = "description"
)

// Change is a single field edit. Checkbox fields read Checked, every other
// field reads Value.
type Change struct {
	Field   Field
	Value   any
	Checked bool
}

// Apply updates exactly the field named by ch. On error the draft is left
// untouched.
func (d *Draft) Apply(ch Change) error {
	switch ch.Field {
	case FieldCompleted:
		d.Completed = ch.Checked
	case FieldName:
		d.Name = stringValue(ch.Value)
	case FieldAuthor:
		d.Author = stringValue(ch.Value)
	case FieldImg:
		d.Img = stringValue(ch.Value)
	case FieldDescription:
		d.Description = stringValue(ch.Value)
	case FieldGenres:
		genres, err := NormalizeGenres(ch.Value)
		if err != nil {
			return err
		}
		d.Genres = genres
	case FieldStart, FieldEnd:
		date, err := dateValue(ch.Value)
		if err != nil {
			return err
		}
		if ch.Field == FieldStart {
			d.Start = date
		} else {
			d.End = date
		}
	case FieldStars:
		stars, err := starsValue(ch.Value)
		if err != nil {
			return err
		}
		d.Stars = stars
	default:
		return fmt.Errorf("unknown field %q", ch.Field)
	}
	return nil
}

// NormalizeGenres turns a genre selection into a list of names.
//
// A string is a comma-joined list. Unlike a plain split on commas, each entry
// is trimmed and blank entries are dropped, so "" and " , " yield an empty
// list and "a, b" yields ["a" "b"] rather than ["a" " b"]. A []string is copied
// through unchanged. A []any must hold only strings. nil yields an empty list.
func NormalizeGenres(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case string:
		return cleanGenres(strings.Split(v, ",")), nil
	case []string:
		return append(make([]string, 0, len(v)), v...), nil
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("genre %v is not a string", item)
			}
			names = append(names, s)
		}
		return names, nil
	default:
		return nil, fmt.Errorf("unsupported genres value of type %T", value)
	}
}

func cleanGenres(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// WithPlaceholderImage returns a copy of d whose image falls back to
// placeholder when blank. An empty placeholder means PlaceholderImage.
func (d Draft) WithPlaceholderImage(placeholder string) Draft {
	if strings.TrimSpace(placeholder) == "" {
		placeholder = PlaceholderImage
	}
	if strings.TrimSpace(d.Img) == "" {
		d.Img = placeholder
	}
	if d.Genres == nil {
		d.Genres = []string{}
	} else {
		d.Genres = append([]string(nil), d.Genres...)
	}
	return d
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateDraftDates, Draft{})
	return v
}

func validateDraftDates(sl validator.StructLevel) {
	d, ok := sl.Current().Interface().(Draft)
	if !ok {
		return
	}
	if d.Start != nil && d.End != nil && !d.Start.IsZero() && d.End.Before(d.Start.Time) {
		sl.ReportError(d.End, "End", "end", "afterstart", "")
	}
}

// Validate checks the draft before it is posted.
func (d Draft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("invalid book: %s", strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min", "max":
		return "stars must be between 0 and 5"
	case "url":
		return "image must be a URL"
	case "afterstart":
		return "finished date is before started date"
	default:
		return fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag())
	}
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func dateValue(value any) (*Date, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *Date:
		return v, nil
	case time.Time:
		if v.IsZero() {
			return nil, nil
		}
		return NewDate(v), nil
	case string:
		return ParseDate(v)
	default:
		return nil, fmt.Errorf("unsupported date value of type %T", value)
	}
}

func starsValue(value any) (*int, error) {
	var n int
	switch v := value.(type) {
	case nil:
		return nil, nil
	case int:
		n = v
	case *int:
		return v, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("stars %q is not a number", v)
		}
		n = parsed
	default:
		return nil, fmt.Errorf("unsupported stars value of type %T", value)
	}
	return &n, nil
}
