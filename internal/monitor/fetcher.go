package monitor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aleister1102/urlchecker/internal/common"
	"github.com/aleister1102/urlchecker/internal/config"
	"github.com/aleister1102/urlchecker/internal/httpclient"
	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"
)

// FetchResult is the decoded body of a successful fetch.
type FetchResult struct {
	Content     []byte // UTF-8
	ContentType string
	StatusCode  int
	FinalURL    string
}

// Fetcher retrieves the current content of a monitored resource.
type Fetcher struct {
	client      *httpclient.HTTPClient
	bearerToken string
	logger      zerolog.Logger
}

// NewFetcher builds the HTTP client described by cfg, retries included.
func NewFetcher(cfg config.FetchConfig, logger zerolog.Logger) (*Fetcher, error) {
	client, err := httpclient.NewHTTPClientBuilder(logger).
		WithTimeout(cfg.Timeout()).
		WithUserAgent(cfg.UserAgent).
		WithInsecureSkipVerify(cfg.InsecureSkipVerify).
		WithMaxContentSize(cfg.MaxContentSize()).
		WithRetry(httpclient.RetryHandlerConfig{
			MaxRetries:   cfg.MaxRetries,
			BaseDelay:    time.Duration(cfg.BaseDelayMillis) * time.Millisecond,
			MaxDelay:     time.Duration(cfg.MaxDelaySecs) * time.Second,
			EnableJitter: true,
		}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create fetch client: %w", err)
	}
	return NewFetcherWithClient(client, cfg.BearerToken, logger), nil
}

// NewFetcherWithClient creates a Fetcher on an existing client.
func NewFetcherWithClient(client *httpclient.HTTPClient, bearerToken string, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		client:      client,
		bearerToken: bearerToken,
		logger:      logger.With().Str("component", "Fetcher").Logger(),
	}
}

// Fetch GETs identifier and returns the body decoded to UTF-8 using the
// charset of the response. Any status other than 200 is an
// *httpclient.HTTPError.
func (f *Fetcher) Fetch(ctx context.Context, identifier string) (*FetchResult, error) {
	if err := validateIdentifier(identifier); err != nil {
		return nil, err
	}

	headers := map[string]string{}
	if f.bearerToken != "" {
		headers["Authorization"] = "Bearer " + f.bearerToken
	}

	resp, err := f.client.FetchContent(httpclient.FetchContentInput{
		URL:     identifier,
		Headers: headers,
		Context: ctx,
	})
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			return nil, err
		}
		return nil, common.NewNetworkError(identifier, "fetch failed", err)
	}

	content, err := decodeToUTF8(resp.Content, resp.ContentType)
	if err != nil {
		f.logger.Warn().Err(err).Str("url", identifier).Str("content_type", resp.ContentType).Msg("Failed to decode content, using raw bytes")
		content = resp.Content
	}

	f.logger.Debug().
		Str("url", identifier).
		Int("status_code", resp.HTTPStatusCode).
		Int("size", len(content)).
		Msg("Content fetched")

	return &FetchResult{
		Content:     content,
		ContentType: resp.ContentType,
		StatusCode:  resp.HTTPStatusCode,
		FinalURL:    resp.FinalURL,
	}, nil
}

func validateIdentifier(identifier string) error {
	u, err := url.Parse(identifier)
	if err != nil {
		return common.NewValidationError("url", identifier, err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return common.NewValidationError("url", identifier, "scheme must be http or https")
	}
	if u.Host == "" {
		return common.NewValidationError("url", identifier, "host is required")
	}
	return nil
}

// decodeToUTF8 converts body to UTF-8. A charset named in contentType wins.
// Without one, a body that is already valid UTF-8 is kept as is, and only
// other bodies are sniffed, so a long ASCII prefix cannot get a UTF-8
// document mistaken for windows-1252.
func decodeToUTF8(body []byte, contentType string) ([]byte, error) {
	if len(body) == 0 {
		return body, nil
	}
	if label := contentTypeCharset(contentType); label != "" {
		if enc, _ := charset.Lookup(label); enc != nil {
			return enc.NewDecoder().Bytes(body)
		}
	}
	if utf8.Valid(body) {
		return body, nil
	}
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

func contentTypeCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["charset"])
}
