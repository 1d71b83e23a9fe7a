package config

// NotificationConfig defines configuration for notifications.
// Tokens and webhook URLs may be set here but the environment wins.
type NotificationConfig struct {
	Provider                 string   `json:"provider,omitempty" yaml:"provider,omitempty" validate:"omitempty,provider"`
	TelegramBotToken         string   `json:"telegram_bot_token,omitempty" yaml:"telegram_bot_token,omitempty"`
	TelegramChatID           string   `json:"telegram_chat_id,omitempty" yaml:"telegram_chat_id,omitempty"`
	TelegramAPIBaseURL       string   `json:"telegram_api_base_url,omitempty" yaml:"telegram_api_base_url,omitempty" validate:"omitempty,url"`
	DiscordWebhookURL        string   `json:"discord_webhook_url,omitempty" yaml:"discord_webhook_url,omitempty" validate:"omitempty,url"`
	DiscordUsername          string   `json:"discord_username,omitempty" yaml:"discord_username,omitempty"`
	MentionRoleIDs           []string `json:"mention_role_ids,omitempty" yaml:"mention_role_ids,omitempty"`
	NotifyOnFirstObservation bool     `json:"notify_on_first_observation" yaml:"notify_on_first_observation"`
	TimeoutSeconds           int      `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1,max=600"`
}

// NewDefaultNotificationConfig creates default notification configuration
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		Provider:                 DefaultNotificationProvider,
		TelegramAPIBaseURL:       DefaultTelegramAPIBaseURL,
		DiscordUsername:          DefaultDiscordUsername,
		MentionRoleIDs:           []string{},
		NotifyOnFirstObservation: true,
		TimeoutSeconds:           DefaultNotifyTimeoutSecs,
	}
}
