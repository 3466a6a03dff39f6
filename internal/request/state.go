package request

import "time"

// AlertKind is the severity of an alert.
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
)

// Alert is a transient notification. Message and Kind survive expiry so a
// fading banner can still be rendered; only Visible flips.
type Alert struct {
	Visible  bool
	Message  string
	Kind     AlertKind
	RaisedAt time.Time
}

// State is the request state owned by one screen.
type State[T any] struct {
	// Data is the last successfully decoded response body, nil until one
	// arrives. Treat it as read-only: snapshots share its backing arrays.
	Data    *T
	Loading bool
	Alert   Alert
}

// HasData reports whether a response body has been stored.
func (s State[T]) HasData() bool {
	return s.Data != nil
}

func (s State[T]) clone() State[T] {
	dup := s
	if s.Data != nil {
		v := *s.Data
		dup.Data = &v
	}
	return dup
}
