package notifier

// Message formats
const (
	FirstObservationMessageFormat = "Monitoring started: %s"
	ChangedMessageFormat          = "URL changed: %s"
)

// Discord formatting constants
const (
	InfoEmbedColor    = 0x5BC0DE // Bootstrap info blue
	MonitorEmbedColor = 0x6F42C1 // Purple for monitoring
	DiscordFooterText = "urlchecker"
)

// Provider limits
const (
	TelegramMaxMessageLength = 4096
	TelegramMaxCaptionLength = 1024
	TelegramMaxDocumentSize  = 50 * 1024 * 1024
	DiscordMaxContentLength  = 2000
	DiscordMaxFileSize       = 8 * 1024 * 1024 // without boosts
)
