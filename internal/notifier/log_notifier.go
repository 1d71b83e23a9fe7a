package notifier

import (
	"context"

	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/rs/zerolog"
)

// LogNotifier writes notifications to the log instead of sending them.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("module", "LogNotifier").Logger()}
}

// Dispatch implements Dispatcher
func (ln *LogNotifier) Dispatch(_ context.Context, message string, attachment *models.Attachment) error {
	event := ln.logger.Info().Str("message", message)
	if attachment != nil {
		event = event.Str("attachment", attachment.Filename).Int("attachment_size", len(attachment.Data))
	}
	event.Msg("Notification")
	return nil
}
