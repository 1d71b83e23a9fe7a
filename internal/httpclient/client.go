package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

// HTTPClient wraps net/http.Client with header defaults, size limits and retries
type HTTPClient struct {
	client       *http.Client
	config       HTTPClientConfig
	logger       zerolog.Logger
	retryHandler *RetryHandler
}

// NewHTTPClient creates a new HTTP client with the given configuration
func NewHTTPClient(config HTTPClientConfig, logger zerolog.Logger) (*HTTPClient, error) {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		IdleConnTimeout:       config.IdleConnTimeout,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ExpectContinueTimeout: config.ExpectContinueTimeout,
		DialContext: (&net.Dialer{
			Timeout:   config.DialTimeout,
			KeepAlive: config.KeepAlive,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
	}

	if config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		}
	}

	if config.Proxy != "" {
		proxyURL, err := url.Parse(config.Proxy)
		if err != nil {
			return nil, WrapError(err, "failed to parse proxy URL")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}

	if !config.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else if config.MaxRedirects > 0 {
		maxRedirects := config.MaxRedirects
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		}
	}

	logger.Debug().
		Dur("timeout", config.Timeout).
		Bool("insecure_skip_verify", config.InsecureSkipVerify).
		Bool("follow_redirects", config.FollowRedirects).
		Bool("http2_enabled", config.EnableHTTP2).
		Msg("HTTP client created")

	return &HTTPClient{
		client: client,
		config: config,
		logger: logger,
	}, nil
}

// Do performs an HTTP request, with retries if a retry handler is configured.
func (c *HTTPClient) Do(req *HTTPRequest) (*HTTPResponse, error) {
	if c.retryHandler != nil {
		ctx := req.Context
		if ctx == nil {
			ctx = context.Background()
		}
		return c.retryHandler.DoWithRetry(ctx, c.do, req)
	}
	return c.do(req)
}

func (c *HTTPClient) do(req *HTTPRequest) (*HTTPResponse, error) {
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, WrapError(err, "failed to create HTTP request")
	}

	for key, value := range c.config.CustomHeaders {
		httpReq.Header.Set(key, value)
	}
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	// request headers override defaults
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "*/*")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		var urlErr *url.Error
		if req.LogURL != "" && errors.As(err, &urlErr) {
			urlErr.URL = req.LogURL
		}
		return nil, WrapError(err, "HTTP request failed")
	}
	defer resp.Body.Close()

	bodyBytes, err := c.readBody(resp.Body)
	if err != nil {
		return nil, err
	}

	httpResp := &HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    make(map[string]string, len(resp.Header)),
		Body:       bodyBytes,
		FinalURL:   resp.Request.URL.String(),
	}
	for key, values := range resp.Header {
		if len(values) > 0 {
			httpResp.Headers[key] = values[0]
		}
	}

	return httpResp, nil
}

// readBody reads at most MaxContentSize bytes and fails if there is more.
func (c *HTTPClient) readBody(r io.Reader) ([]byte, error) {
	if c.config.MaxContentSize <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, WrapError(err, "failed to read response body")
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(r, c.config.MaxContentSize+1))
	if err != nil {
		return nil, WrapError(err, "failed to read response body")
	}
	if int64(len(data)) > c.config.MaxContentSize {
		return nil, ErrContentTooLarge
	}
	return data, nil
}

// FetchContentInput holds parameters for FetchContent.
type FetchContentInput struct {
	URL     string
	Headers map[string]string
	Context context.Context
}

// FetchContentResult holds results from FetchContent.
type FetchContentResult struct {
	Content        []byte
	ContentType    string
	HTTPStatusCode int
	FinalURL       string
}

// FetchContent performs a cache-bypassing GET and returns the body of a 200
// response. Any other status is reported as *HTTPError.
func (c *HTTPClient) FetchContent(input FetchContentInput) (*FetchContentResult, error) {
	headers := map[string]string{
		"Cache-Control": "no-cache, no-store, must-revalidate",
		"Pragma":        "no-cache",
	}
	for key, value := range input.Headers {
		headers[key] = value
	}

	resp, err := c.Do(&HTTPRequest{
		URL:     input.URL,
		Method:  http.MethodGet,
		Headers: headers,
		Context: input.Context,
	})
	if err != nil {
		c.logger.Error().Err(err).Str("url", input.URL).Msg("Failed to execute HTTP request")
		return nil, err
	}

	result := &FetchContentResult{
		ContentType:    resp.Headers["Content-Type"],
		HTTPStatusCode: resp.StatusCode,
		FinalURL:       resp.FinalURL,
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Str("url", input.URL).Int("status_code", resp.StatusCode).Msg("Received non-OK HTTP status")
		return result, NewHTTPErrorWithURL(resp.StatusCode, string(resp.Body), input.URL)
	}

	result.Content = resp.Body
	c.logger.Debug().
		Str("url", input.URL).
		Int("content_size", len(result.Content)).
		Str("content_type", result.ContentType).
		Msg("Successfully fetched content")

	return result, nil
}
