package httpclient

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// RetryHandler handles HTTP request retries with exponential backoff
type RetryHandler struct {
	maxRetries       int
	baseDelay        time.Duration
	maxDelay         time.Duration
	enableJitter     bool
	retryStatusCodes map[int]bool
	logger           zerolog.Logger
}

// RetryHandlerConfig configuration for retry handler
type RetryHandlerConfig struct {
	MaxRetries       int           `json:"max_retries"`
	BaseDelay        time.Duration `json:"base_delay"`
	MaxDelay         time.Duration `json:"max_delay"`
	EnableJitter     bool          `json:"enable_jitter"`
	RetryStatusCodes []int         `json:"retry_status_codes"`
}

// DefaultRetryStatusCodes are rate limiting and transient upstream failures.
var DefaultRetryStatusCodes = []int{429, 500, 502, 503, 504}

// NewRetryHandler creates a new retry handler
func NewRetryHandler(config RetryHandlerConfig, logger zerolog.Logger) *RetryHandler {
	codes := config.RetryStatusCodes
	if codes == nil {
		codes = DefaultRetryStatusCodes
	}
	statusCodeMap := make(map[int]bool, len(codes))
	for _, code := range codes {
		statusCodeMap[code] = true
	}

	maxDelay := config.MaxDelay
	if maxDelay < config.BaseDelay {
		maxDelay = config.BaseDelay
	}

	return &RetryHandler{
		maxRetries:       config.MaxRetries,
		baseDelay:        config.BaseDelay,
		maxDelay:         maxDelay,
		enableJitter:     config.EnableJitter,
		retryStatusCodes: statusCodeMap,
		logger:           logger.With().Str("component", "RetryHandler").Logger(),
	}
}

// ShouldRetry determines if a request should be retried based on status code
func (rh *RetryHandler) ShouldRetry(statusCode int, attempt int) bool {
	if attempt >= rh.maxRetries {
		return false
	}
	return rh.retryStatusCodes[statusCode]
}

// CalculateDelay calculates the delay for the next retry attempt using exponential backoff
func (rh *RetryHandler) CalculateDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return rh.baseDelay
	}

	delay := rh.baseDelay * time.Duration(math.Pow(2, float64(attempt)))
	if delay > rh.maxDelay || delay <= 0 {
		delay = rh.maxDelay
	}

	if rh.enableJitter {
		if spread := delay.Milliseconds() / 10; spread > 0 {
			delay += time.Duration(rand.Int63n(spread)) * time.Millisecond
		}
	}

	return delay
}

// WaitForRetry waits for the calculated delay before retrying
func (rh *RetryHandler) WaitForRetry(ctx context.Context, attempt int, reason string, url string) error {
	delay := rh.CalculateDelay(attempt)

	rh.logger.Warn().
		Str("url", url).
		Str("reason", reason).
		Int("attempt", attempt+1).
		Int("max_retries", rh.maxRetries).
		Dur("delay", delay).
		Msg("Request failed, waiting before retry")

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// DoWithRetry executes an HTTP request with retry logic. Transport errors and
// retryable status codes are retried; context cancellation is not.
func (rh *RetryHandler) DoWithRetry(ctx context.Context, doFunc func(*HTTPRequest) (*HTTPResponse, error), req *HTTPRequest) (*HTTPResponse, error) {
	var lastResp *HTTPResponse
	var lastErr error

	for attempt := 0; attempt <= rh.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := doFunc(req)
		if err != nil {
			lastErr = err
			lastResp = nil
			if ctx.Err() != nil || err == ErrContentTooLarge {
				break
			}
			if attempt < rh.maxRetries {
				if waitErr := rh.WaitForRetry(ctx, attempt, err.Error(), req.displayURL()); waitErr != nil {
					return nil, waitErr
				}
				continue
			}
			break
		}

		lastResp = resp
		lastErr = nil

		if rh.ShouldRetry(resp.StatusCode, attempt) {
			if waitErr := rh.WaitForRetry(ctx, attempt, fmt.Sprintf("status %d", resp.StatusCode), req.displayURL()); waitErr != nil {
				return nil, waitErr
			}
			continue
		}
		break
	}

	if lastErr != nil {
		return nil, WrapError(lastErr, "all retry attempts failed")
	}

	if lastResp != nil && rh.retryStatusCodes[lastResp.StatusCode] {
		err := NewHTTPErrorWithURL(lastResp.StatusCode, string(lastResp.Body), req.displayURL())
		return lastResp, WrapError(err, "all retry attempts failed")
	}

	return lastResp, nil
}
