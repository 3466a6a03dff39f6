package request

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/booktrack/internal/books"
)

// DefaultAlertDuration is how long an alert stays visible.
const DefaultAlertDuration = 5 * time.Second

var (
	// ErrEmptyEndpoint is reported when a call is made without an endpoint.
	ErrEmptyEndpoint = errors.New("endpoint is empty")
	// ErrClosed is returned by calls made after Close.
	ErrClosed = errors.New("request manager is closed")
)

// Doer performs a single API call. *books.Client implements it.
type Doer interface {
	Do(ctx context.Context, method, endpoint string, payload, dest any) error
}

var defaultMessages = map[string]string{
	http.MethodGet:    "Books loaded successfully",
	http.MethodPost:   "Book added successfully",
	http.MethodPut:    "Book updated successfully",
	http.MethodDelete: "Book removed successfully",
}

// Manager issues API calls for one screen and tracks their outcome as State.
// Every call sets Loading, stores the decoded body or raises an error alert,
// then clears Loading. Failures never escape as panics; the returned error is
// informational.
//
// Calls are not serialised. Two overlapping calls both write the shared state
// when they resolve, so the last one to finish wins, and the first one to
// finish clears Loading even if the other is still in flight.
type Manager[T any] struct {
	api      Doer
	log      *zap.Logger
	clock    Clock
	alertTTL time.Duration
	messages map[string]string

	mu      sync.Mutex
	state   State[T]
	hide    Timer
	alertID uint64
	closed  bool
	changes chan struct{}
}

// Option customises a Manager.
type Option func(*options)

type options struct {
	log      *zap.Logger
	clock    Clock
	alertTTL time.Duration
	messages map[string]string
}

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithAlertDuration changes how long alerts stay visible.
func WithAlertDuration(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.alertTTL = d
		}
	}
}

// WithSuccessMessage overrides the success alert text for an HTTP method.
func WithSuccessMessage(method, message string) Option {
	return func(o *options) {
		o.messages[strings.ToUpper(method)] = message
	}
}

// New builds a Manager with empty state.
func New[T any](api Doer, opts ...Option) *Manager[T] {
	o := options{
		log:      zap.NewNop(),
		clock:    realClock{},
		alertTTL: DefaultAlertDuration,
		messages: make(map[string]string, len(defaultMessages)),
	}
	for method, msg := range defaultMessages {
		o.messages[method] = msg
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Manager[T]{
		api:      api,
		log:      o.log,
		clock:    o.clock,
		alertTTL: o.alertTTL,
		messages: o.messages,
		changes:  make(chan struct{}, 1),
	}
}

// Get fetches endpoint.
func (m *Manager[T]) Get(ctx context.Context, endpoint string) error {
	return m.request(ctx, http.MethodGet, endpoint, nil)
}

// Post sends payload to endpoint.
func (m *Manager[T]) Post(ctx context.Context, endpoint string, payload any) error {
	return m.request(ctx, http.MethodPost, endpoint, payload)
}

// Update replaces the resource at endpoint with payload.
func (m *Manager[T]) Update(ctx context.Context, endpoint string, payload any) error {
	return m.request(ctx, http.MethodPut, endpoint, payload)
}

// Remove deletes the resource at endpoint.
func (m *Manager[T]) Remove(ctx context.Context, endpoint string) error {
	return m.request(ctx, http.MethodDelete, endpoint, nil)
}

// Snapshot returns a copy of the current state.
func (m *Manager[T]) Snapshot() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Changes delivers a signal after every state transition, including alert
// expiry. Signals coalesce; receivers should re-read Snapshot. The channel is
// closed by Close.
func (m *Manager[T]) Changes() <-chan struct{} {
	return m.changes
}

// Notify raises an alert that did not come from a request, such as a form
// that fails validation before anything is sent.
func (m *Manager[T]) Notify(kind AlertKind, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.raiseLocked(kind, message)
	m.signalLocked()
}

// Close discards the manager. Pending alert timers are stopped and results of
// requests still in flight are dropped when they arrive.
func (m *Manager[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	if m.hide != nil {
		m.hide.Stop()
		m.hide = nil
	}
	close(m.changes)
}

func (m *Manager[T]) request(ctx context.Context, method, endpoint string, payload any) error {
	if !m.begin() {
		return ErrClosed
	}

	started := m.clock.Now()
	var out T
	err := m.call(ctx, method, endpoint, payload, &out)
	noContent := errors.Is(err, books.ErrNoContent)
	if noContent {
		err = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		m.log.Debug("dropping result for closed manager",
			zap.String("method", method),
			zap.String("endpoint", endpoint))
		return err
	}

	if err != nil {
		m.raiseLocked(AlertError, "Error: "+err.Error())
		m.log.Warn("request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Duration("elapsed", m.clock.Now().Sub(started)),
			zap.Error(err))
	} else {
		if noContent {
			m.state.Data = nil
		} else {
			m.state.Data = &out
		}
		m.raiseLocked(AlertSuccess, m.messages[method])
		m.log.Debug("request succeeded",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Duration("elapsed", m.clock.Now().Sub(started)))
	}
	m.state.Loading = false
	m.signalLocked()
	return err
}

func (m *Manager[T]) begin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	m.state.Loading = true
	m.signalLocked()
	return true
}

func (m *Manager[T]) call(ctx context.Context, method, endpoint string, payload any, dest *T) error {
	if strings.TrimSpace(endpoint) == "" {
		return ErrEmptyEndpoint
	}
	if m.api == nil {
		return errors.New("no api client configured")
	}
	return m.api.Do(ctx, method, endpoint, payload, dest)
}

// raiseLocked replaces the visible alert and restarts the hide timer.
func (m *Manager[T]) raiseLocked(kind AlertKind, message string) {
	if m.hide != nil {
		m.hide.Stop()
	}
	m.alertID++
	id := m.alertID
	m.state.Alert = Alert{
		Visible:  true,
		Message:  message,
		Kind:     kind,
		RaisedAt: m.clock.Now(),
	}
	m.hide = m.clock.AfterFunc(m.alertTTL, func() { m.expire(id) })
}

func (m *Manager[T]) expire(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	// A timer that fired while being replaced must not hide the newer alert.
	if m.closed || id != m.alertID {
		return
	}
	m.state.Alert.Visible = false
	m.hide = nil
	m.signalLocked()
}

func (m *Manager[T]) signalLocked() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}
