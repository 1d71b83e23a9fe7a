package notifier

import (
	"context"
	"fmt"

	"github.com/aleister1102/urlchecker/internal/config"
	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/rs/zerolog"
)

// NotificationHelper maps check results to dispatches.
type NotificationHelper struct {
	dispatcher Dispatcher
	cfg        config.NotificationConfig
	logger     zerolog.Logger
}

// NewNotificationHelper creates a new NotificationHelper.
func NewNotificationHelper(dispatcher Dispatcher, cfg config.NotificationConfig, logger zerolog.Logger) *NotificationHelper {
	return &NotificationHelper{
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger.With().Str("module", "NotificationHelper").Logger(),
	}
}

// FormatResult returns the message and attachment for result. ok is false
// when the result calls for no notification.
func FormatResult(result *models.CheckResult) (message string, attachment *models.Attachment, ok bool) {
	if result == nil || !result.Committed {
		return "", nil, false
	}
	switch result.Outcome.Kind {
	case models.OutcomeFirstObservation:
		return fmt.Sprintf(FirstObservationMessageFormat, result.Identifier), nil, true
	case models.OutcomeChanged:
		return fmt.Sprintf(ChangedMessageFormat, result.Identifier), result.Artifact.AsAttachment(), true
	default:
		return "", nil, false
	}
}

// NotifyResult sends at most one notification for result: a start message
// for a first observation, nothing when unchanged, and the change message
// with the diff attached when changed. Uncommitted results are never sent.
func (nh *NotificationHelper) NotifyResult(ctx context.Context, result *models.CheckResult) error {
	if nh.dispatcher == nil {
		return nil
	}

	message, attachment, ok := FormatResult(result)
	if !ok {
		nh.logger.Debug().Msg("Nothing to notify")
		return nil
	}
	if result.Outcome.Kind == models.OutcomeFirstObservation && !nh.cfg.NotifyOnFirstObservation {
		nh.logger.Debug().Str("url", result.Identifier).Msg("First observation notification disabled, skipping")
		return nil
	}

	if err := nh.dispatcher.Dispatch(ctx, message, attachment); err != nil {
		return fmt.Errorf("failed to dispatch %s notification: %w", result.Outcome.Kind, err)
	}

	nh.logger.Info().Str("url", result.Identifier).Str("outcome", result.Outcome.Kind.String()).Msg("Notification sent")
	return nil
}
