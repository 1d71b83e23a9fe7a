package httpclient

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientBuilder(t *testing.T) {
	client, err := NewHTTPClientBuilder(zerolog.Nop()).
		WithTimeout(15 * time.Second).
		WithUserAgent("test-agent").
		WithFollowRedirects(false).
		WithInsecureSkipVerify(true).
		WithMaxRedirects(5).
		WithHeader("X-Env", "test").
		WithMaxContentSize(1024).
		WithRetry(RetryHandlerConfig{MaxRetries: 2, BaseDelay: time.Millisecond}).
		Build()

	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, client.config.Timeout)
	assert.Equal(t, "test-agent", client.config.UserAgent)
	assert.False(t, client.config.FollowRedirects)
	assert.True(t, client.config.InsecureSkipVerify)
	assert.Equal(t, 5, client.config.MaxRedirects)
	assert.Equal(t, "test", client.config.CustomHeaders["X-Env"])
	assert.Equal(t, int64(1024), client.config.MaxContentSize)
	assert.NotNil(t, client.retryHandler)
}

func TestHTTPClientBuilder_DefaultValues(t *testing.T) {
	client, err := NewHTTPClientBuilder(zerolog.Nop()).WithUserAgent("").Build()
	require.NoError(t, err)

	defaults := DefaultHTTPClientConfig()
	assert.Equal(t, defaults.Timeout, client.config.Timeout)
	assert.Equal(t, defaults.UserAgent, client.config.UserAgent)
	assert.Equal(t, defaults.FollowRedirects, client.config.FollowRedirects)
	assert.Nil(t, client.retryHandler)
}

func TestHTTPClientBuilder_InvalidProxy(t *testing.T) {
	b := NewHTTPClientBuilder(zerolog.Nop())
	b.config.Proxy = "://bad"

	_, err := b.Build()
	assert.Error(t, err)
}
