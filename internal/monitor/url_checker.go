package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/aleister1102/urlchecker/internal/datastore"
	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ContentFetcher retrieves the current content of a resource.
type ContentFetcher interface {
	Fetch(ctx context.Context, identifier string) (*FetchResult, error)
}

// ResultNotifier turns a committed result into at most one notification.
type ResultNotifier interface {
	NotifyResult(ctx context.Context, result *models.CheckResult) error
}

// ReportSaver keeps a copy of diff artifacts.
type ReportSaver interface {
	SaveReport(ctx context.Context, artifact *models.DiffArtifact) (string, error)
}

// URLChecker runs complete check cycles: fetch, detect, save the report,
// notify and record history. Cycles for the same resource are serialised
// within the process; separate processes must not overlap.
type URLChecker struct {
	logger       zerolog.Logger
	fetcher      ContentFetcher
	detector     *ChangeDetector
	notifier     ResultNotifier
	historyStore datastore.CheckHistoryStore
	reportSaver  ReportSaver
	mutexManager *datastore.KeyMutexManager
	now          func() time.Time
}

// NewURLChecker creates a new URLChecker. notifier, historyStore and
// reportSaver may be nil.
func NewURLChecker(
	logger zerolog.Logger,
	fetcher ContentFetcher,
	detector *ChangeDetector,
	notifier ResultNotifier,
	historyStore datastore.CheckHistoryStore,
	reportSaver ReportSaver,
) *URLChecker {
	return &URLChecker{
		logger:       logger.With().Str("component", "URLChecker").Logger(),
		fetcher:      fetcher,
		detector:     detector,
		notifier:     notifier,
		historyStore: historyStore,
		reportSaver:  reportSaver,
		mutexManager: datastore.NewKeyMutexManager(logger),
		now:          time.Now,
	}
}

// CheckURL runs one cycle for identifier. A fetch or detection failure
// returns no result and sends nothing. A notification failure returns the
// committed result together with a *NotificationError.
func (uc *URLChecker) CheckURL(ctx context.Context, identifier string) (*models.CheckResult, error) {
	key := datastore.DeriveKey(identifier)
	urlMutex := uc.mutexManager.GetMutex(key)
	urlMutex.Lock()
	defer urlMutex.Unlock()

	cycleID := uuid.NewString()
	checkedAt := uc.now()
	log := uc.logger.With().Str("url", identifier).Str("cycle_id", cycleID).Logger()

	fetchResult, err := uc.fetcher.Fetch(ctx, identifier)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch content")
		err = fmt.Errorf("failed to fetch content: %w", err)
		uc.recordHistory(ctx, models.NewFailedCheckHistoryRecord(cycleID, identifier, key, checkedAt, err))
		return nil, err
	}

	result, err := uc.detector.Detect(ctx, identifier, fetchResult.Content)
	if err != nil {
		uc.recordHistory(ctx, models.NewFailedCheckHistoryRecord(cycleID, identifier, key, checkedAt, err))
		return nil, err
	}

	if result.Outcome.IsChanged() && uc.reportSaver != nil {
		reportPath, err := uc.reportSaver.SaveReport(ctx, result.Artifact)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to save diff report")
		} else {
			result.ReportPath = reportPath
		}
	}

	var notifyErr error
	if uc.notifier != nil {
		if err := uc.notifier.NotifyResult(ctx, result); err != nil {
			log.Error().Err(err).Str("outcome", result.Outcome.Kind.String()).Msg("Failed to send notification")
			notifyErr = &NotificationError{Identifier: identifier, Err: err}
		}
	}

	uc.recordHistory(ctx, models.NewCheckHistoryRecord(cycleID, result, len(fetchResult.Content)))

	event := log.Info().Str("outcome", result.Outcome.Kind.String())
	if result.Artifact != nil {
		event = event.Bool("line_differences", result.Artifact.HasDifferences()).
			Int("lines_added", result.Artifact.LinesAdded).
			Int("lines_deleted", result.Artifact.LinesDeleted)
	}
	event.Msg("Check cycle completed")
	return result, notifyErr
}

// recordHistory appends to the check history. Failures are only logged;
// history never decides whether a cycle succeeded.
func (uc *URLChecker) recordHistory(ctx context.Context, record models.CheckHistoryRecord) {
	if uc.historyStore == nil {
		return
	}
	if err := uc.historyStore.Append(context.WithoutCancel(ctx), record); err != nil {
		uc.logger.Warn().Err(err).Str("url", record.Identifier).Msg("Failed to record check history")
	}
}
