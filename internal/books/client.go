package books

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// API defines the book store operations. It is implemented by *Client and
// can be faked in tests.
type API interface {
	Do(ctx context.Context, method, endpoint string, payload, dest any) error
	ListBooks(ctx context.Context) ([]Book, error)
	GetBook(ctx context.Context, id ID) (Book, error)
	CreateBook(ctx context.Context, draft Draft) (Book, error)
	UpdateBook(ctx context.Context, id ID, book Book) (Book, error)
	DeleteBook(ctx context.Context, id ID) error
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the book store HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       *zap.Logger
}

const (
	DefaultBaseURL   = "http://localhost:3000"
	defaultUserAgent = "booktrack/0.1"
	defaultTimeout   = 10 * time.Second
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero leaves the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a Client rooted at baseURL (scheme, host and optional path
// prefix). Endpoints are appended as "<baseURL>/<endpoint>".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListBooks retrieves every book.
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	var payload []Book
	if err := c.Do(ctx, http.MethodGet, "books", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetBook retrieves a single book.
func (c *Client) GetBook(ctx context.Context, id ID) (Book, error) {
	var payload Book
	if err := c.Do(ctx, http.MethodGet, Endpoint(id), nil, &payload); err != nil {
		return Book{}, err
	}
	return payload, nil
}

// CreateBook posts a draft and returns the stored record.
func (c *Client) CreateBook(ctx context.Context, draft Draft) (Book, error) {
	var payload Book
	if err := c.Do(ctx, http.MethodPost, "books", draft, &payload); err != nil {
		return Book{}, err
	}
	return payload, nil
}

// UpdateBook replaces a book.
func (c *Client) UpdateBook(ctx context.Context, id ID, book Book) (Book, error) {
	var payload Book
	if err := c.Do(ctx, http.MethodPut, Endpoint(id), book, &payload); err != nil {
		return Book{}, err
	}
	return payload, nil
}

// DeleteBook removes a book.
func (c *Client) DeleteBook(ctx context.Context, id ID) error {
	err := c.Do(ctx, http.MethodDelete, Endpoint(id), nil, nil)
	if errors.Is(err, ErrNoContent) {
		return nil
	}
	return err
}

// Endpoint returns the relative path of a single book.
func Endpoint(id ID) string {
	return "books/" + url.PathEscape(string(id))
}

// Do performs method against endpoint, encoding payload as the JSON body when
// non-nil and decoding the response into dest when non-nil. Non-2xx statuses
// yield *ResponseError, failures before a response yield *TransportError and
// an empty body with a non-nil dest yields ErrNoContent.
func (c *Client) Do(ctx context.Context, method, endpoint string, payload, dest any) error {
	if c == nil {
		return errors.New("client is nil")
	}
	target, err := c.resolve(endpoint)
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "encode payload")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &TransportError{Method: method, Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("request completed",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ResponseError{Method: method, Endpoint: endpoint, StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, Endpoint: endpoint, Err: errors.Wrap(err, "read response")}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrNoContent
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

func (c *Client) resolve(endpoint string) (string, error) {
	trimmed := strings.TrimLeft(strings.TrimSpace(endpoint), "/")
	if trimmed == "" {
		return "", errors.New("endpoint is empty")
	}
	target := c.baseURL.String() + "/" + trimmed
	if _, err := url.Parse(target); err != nil {
		return "", errors.Wrapf(err, "parse endpoint %q", endpoint)
	}
	return target, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, errors.Wrapf(err, "parse base url %q", raw)
	}
	if u.Host == "" {
		return nil, errors.Errorf("base url %q has no host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
