package notifier

import (
	"fmt"
	"time"

	"github.com/aleister1102/urlchecker/internal/config"
	"github.com/aleister1102/urlchecker/internal/httpclient"
	"github.com/rs/zerolog"
)

// Retry settings for notification delivery
const (
	notifyMaxRetries = 2
	notifyBaseDelay  = time.Second
	notifyMaxDelay   = 10 * time.Second
)

// NewDispatcher creates the Dispatcher for cfg.Provider
func NewDispatcher(cfg config.NotificationConfig, logger zerolog.Logger) (Dispatcher, error) {
	if cfg.Provider == "" || cfg.Provider == config.ProviderNone {
		return NewLogNotifier(logger), nil
	}

	client, err := newNotificationHTTPClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case config.ProviderTelegram:
		baseURL := cfg.TelegramAPIBaseURL
		if baseURL == "" {
			baseURL = config.DefaultTelegramAPIBaseURL
		}
		tn, err := NewTelegramNotifier(client, baseURL, cfg.TelegramBotToken, cfg.TelegramChatID, logger)
		if err != nil {
			return nil, err
		}
		return tn, nil
	case config.ProviderDiscord:
		dn, err := NewDiscordNotifier(client, cfg.DiscordWebhookURL, cfg.DiscordUsername, cfg.MentionRoleIDs, logger)
		if err != nil {
			return nil, err
		}
		return dn, nil
	default:
		return nil, fmt.Errorf("unknown notification provider %q", cfg.Provider)
	}
}

func newNotificationHTTPClient(cfg config.NotificationConfig, logger zerolog.Logger) (*httpclient.HTTPClient, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = config.DefaultNotifyTimeoutSecs * time.Second
	}

	client, err := httpclient.NewHTTPClientBuilder(logger).
		WithTimeout(timeout).
		WithUserAgent(config.DefaultFetchUserAgent).
		WithRetry(httpclient.RetryHandlerConfig{
			MaxRetries:   notifyMaxRetries,
			BaseDelay:    notifyBaseDelay,
			MaxDelay:     notifyMaxDelay,
			EnableJitter: true,
		}).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create notification HTTP client: %w", err)
	}
	return client, nil
}
