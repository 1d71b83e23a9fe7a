package config

import "time"

// FetchConfig configures how the monitored resource is retrieved.
type FetchConfig struct {
	TimeoutSeconds     int    `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1,max=600"`
	UserAgent          string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	MaxRetries         int    `json:"max_retries,omitempty" yaml:"max_retries,omitempty" validate:"min=0,max=10"`
	BaseDelayMillis    int    `json:"base_delay_millis,omitempty" yaml:"base_delay_millis,omitempty" validate:"min=0"`
	MaxDelaySecs       int    `json:"max_delay_secs,omitempty" yaml:"max_delay_secs,omitempty" validate:"min=0,max=3600"`
	MaxContentSizeMB   int    `json:"max_content_size_mb,omitempty" yaml:"max_content_size_mb,omitempty" validate:"min=0"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	// BearerToken is only taken from the environment.
	BearerToken string `json:"-" yaml:"-"`
}

// NewDefaultFetchConfig creates default fetch configuration
func NewDefaultFetchConfig() FetchConfig {
	return FetchConfig{
		TimeoutSeconds:   DefaultFetchTimeoutSecs,
		UserAgent:        DefaultFetchUserAgent,
		MaxRetries:       DefaultFetchMaxRetries,
		BaseDelayMillis:  DefaultFetchBaseDelayMs,
		MaxDelaySecs:     DefaultFetchMaxDelaySecs,
		MaxContentSizeMB: DefaultFetchMaxContentSize,
	}
}

// Timeout returns the request timeout as a duration
func (fc FetchConfig) Timeout() time.Duration {
	if fc.TimeoutSeconds <= 0 {
		return DefaultFetchTimeoutSecs * time.Second
	}
	return time.Duration(fc.TimeoutSeconds) * time.Second
}

// MaxContentSize returns the response size limit in bytes
func (fc FetchConfig) MaxContentSize() int64 {
	if fc.MaxContentSizeMB <= 0 {
		return DefaultFetchMaxContentSize * 1024 * 1024
	}
	return int64(fc.MaxContentSizeMB) * 1024 * 1024
}
