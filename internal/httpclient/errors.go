package httpclient

import (
	"errors"
	"fmt"
)

// ErrContentTooLarge is returned when a response body exceeds MaxContentSize.
var ErrContentTooLarge = errors.New("response body exceeds maximum content size")

// Error represents a general error in the httpclient package.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError wraps an existing error with a message.
func WrapError(err error, message string) error {
	return &Error{Message: message, Err: err}
}

// HTTPError represents an HTTP-level error (unexpected status code).
type HTTPError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error for URL '%s': status %d, body: %s", e.URL, e.StatusCode, e.Body)
}

// NewHTTPErrorWithURL creates a new HTTPError. The body is cut to 1KB.
func NewHTTPErrorWithURL(statusCode int, body string, url string) error {
	if len(body) > 1024 {
		body = body[:1024]
	}
	return &HTTPError{StatusCode: statusCode, Body: body, URL: url}
}
