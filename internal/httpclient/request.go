package httpclient

import (
	"context"
	"net/http"
)

// HTTPRequest represents an outgoing request. Body is kept as bytes so
// the request can be replayed by the retry handler.
type HTTPRequest struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
	Context context.Context
	// LogURL stands in for URL in logs and errors when URL carries a secret.
	LogURL string
}

func (r *HTTPRequest) displayURL() string {
	if r.LogURL != "" {
		return r.LogURL
	}
	return r.URL
}

// HTTPResponse represents an HTTP response
type HTTPResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	// FinalURL is the URL that produced the response after redirects.
	FinalURL string
}

// IsSuccess reports a 2xx status.
func (r *HTTPResponse) IsSuccess() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}
