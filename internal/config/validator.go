package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aleister1102/urlchecker/internal/common"
	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator with the application's custom rules registered
func newValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("backend", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", StorageBackendFile, StorageBackendSQLite:
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("provider", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", ProviderNone, ProviderTelegram, ProviderDiscord:
			return true
		default:
			return false
		}
	})

	return validate
}

// ValidateConfig performs tag validation on the GlobalConfig structure and
// then the cross-field checks tags cannot express.
func ValidateConfig(cfg *GlobalConfig) error {
	if err := newValidator().Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			var messages []string
			for _, e := range errs {
				msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", e.Namespace(), e.Tag())
				if e.Param() != "" {
					msg += fmt.Sprintf(" (expected: %s)", e.Param())
				}
				if e.Value() != nil && e.Value() != "" {
					msg += fmt.Sprintf(", actual: '%v'", e.Value())
				}
				messages = append(messages, msg)
			}
			return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(messages, "\n  "))
		}
		return fmt.Errorf("configuration validation error: %w", err)
	}

	return validateCrossFields(cfg)
}

func validateCrossFields(cfg *GlobalConfig) error {
	var collector common.ErrorCollector

	nc := cfg.NotificationConfig
	switch nc.Provider {
	case ProviderTelegram:
		if nc.TelegramBotToken == "" {
			collector.Add(common.NewConfigurationError("notification_config", "telegram_bot_token", "required for telegram provider (set "+EnvTelegramBotToken+")"))
		}
		if nc.TelegramChatID == "" {
			collector.Add(common.NewConfigurationError("notification_config", "telegram_chat_id", "required for telegram provider (set "+EnvTelegramChatID+")"))
		}
	case ProviderDiscord:
		if nc.DiscordWebhookURL == "" {
			collector.Add(common.NewConfigurationError("notification_config", "discord_webhook_url", "required for discord provider (set "+EnvDiscordWebhook+")"))
		}
	}

	sc := cfg.StorageConfig
	switch sc.Backend {
	case StorageBackendSQLite:
		if sc.SQLitePath == "" {
			collector.Add(common.NewConfigurationError("storage_config", "sqlite_path", "required for sqlite backend"))
		}
	default:
		if sc.CacheDir == "" {
			collector.Add(common.NewConfigurationError("storage_config", "cache_dir", "required for file backend"))
		}
	}
	if sc.EnableHistory && sc.HistoryDir == "" {
		collector.Add(common.NewConfigurationError("storage_config", "history_dir", "required when history is enabled"))
	}

	dc := cfg.DiffReporterConfig
	if dc.SaveReports && dc.ReportDir == "" {
		collector.Add(common.NewConfigurationError("diff_reporter_config", "report_dir", "required when save_reports is enabled"))
	}

	return collector.Error()
}
