package config

// Environment variables read by the application
const (
	EnvConfigPath       = "URLCHECKER_CONFIG_PATH"
	EnvTelegramBotToken = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChatID   = "TELEGRAM_CHAT_ID"
	EnvDiscordWebhook   = "DISCORD_WEBHOOK_URL"
	EnvBearerToken      = "URLCHECKER_BEARER_TOKEN"
)

// Fetch defaults
const (
	DefaultFetchTimeoutSecs    = 10
	DefaultFetchUserAgent      = "urlchecker/1.0"
	DefaultFetchMaxRetries     = 2
	DefaultFetchBaseDelayMs    = 500
	DefaultFetchMaxDelaySecs   = 10
	DefaultFetchMaxContentSize = 10 // MB
)

// Storage defaults
const (
	StorageBackendFile   = "file"
	StorageBackendSQLite = "sqlite"

	DefaultStorageBackend    = StorageBackendFile
	DefaultStorageCacheDir   = "data/cache"
	DefaultStorageSQLitePath = "data/urlchecker.db"
	DefaultStorageHistoryDir = "data/history"
	DefaultHistoryMaxRecords = 500
)

// Diff reporter defaults
const (
	DefaultMaxDiffFileSizeMB = 10
	DefaultDiffContextLines  = 3
	DefaultDiffReportDir     = "reports/diff"
	DefaultDiffReportTitle   = "URL change report"
)

// Notification defaults
const (
	ProviderNone     = "none"
	ProviderTelegram = "telegram"
	ProviderDiscord  = "discord"

	DefaultNotificationProvider = ProviderTelegram
	DefaultTelegramAPIBaseURL   = "https://api.telegram.org"
	DefaultNotifyTimeoutSecs    = 20
	DefaultDiscordUsername      = "urlchecker"
)

// Config file limits
const (
	MaxConfigFileSize = 10 * 1024 * 1024
)
