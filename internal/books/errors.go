package books

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoContent is returned by Do when a response carries no body to decode.
// Callers that tolerate empty bodies (deletes, mostly) can treat it as success.
var ErrNoContent = errors.New("response has no content")

// TransportError wraps failures that happen before a status code is known:
// unreachable host, refused connection, timeout.
type TransportError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseError reports a non-2xx status from the API.
type ResponseError struct {
	Method     string
	Endpoint   string
	StatusCode int
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var respErr *ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == 404
}
