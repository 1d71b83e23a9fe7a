package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aleister1102/urlchecker/internal/datastore"
	"github.com/aleister1102/urlchecker/internal/differ"
	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/aleister1102/urlchecker/internal/monitor"
	"github.com/aleister1102/urlchecker/internal/notifier"
	"github.com/aleister1102/urlchecker/internal/reporter"
	"github.com/spf13/cobra"
)

func newCheckCommand(a *app) *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Check a URL once for changes",
		Long: `Fetch the URL, compare it with the last stored content and notify when it changed.

The first successful check only stores the content. Later checks report
"changed" with an HTML diff, or "unchanged" without sending anything.

Exit status: 0 on success, 1 on usage or configuration errors, 2 when the
fetch or change detection failed, 3 when the change was stored but the
notification could not be delivered.

Examples:
  urlchecker check https://example.com/app.js
  urlchecker check --no-notify -c config.yaml https://example.com/a`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationNotifies: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
	checkCmd.Flags().BoolVar(&a.noNotify, "no-notify", false, "run the check without sending notifications")
	return checkCmd
}

func (a *app) runCheck(ctx context.Context, out io.Writer, identifier string) error {
	checker, cleanup, err := a.newURLChecker()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := checker.CheckURL(ctx, identifier)
	if result != nil {
		printCheckResult(out, result)
	}
	if err != nil {
		return checkFailure(err)
	}
	return nil
}

// newURLChecker wires the components of a check cycle from the loaded
// configuration. The returned cleanup closes the cache store.
func (a *app) newURLChecker() (*monitor.URLChecker, func(), error) {
	cfg := a.cfg

	fetcher, err := monitor.NewFetcher(cfg.FetchConfig, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create fetcher: %w", err)
	}

	renderer, err := reporter.NewHtmlDiffRenderer(cfg.DiffReporterConfig.ReportTitle, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create diff renderer: %w", err)
	}
	engine, err := differ.NewDiffEngine(differ.NewDiffConfig(cfg.DiffReporterConfig), renderer, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create diff engine: %w", err)
	}

	dispatcher, err := notifier.NewDispatcher(cfg.NotificationConfig, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create notifier: %w", err)
	}
	notificationHelper := notifier.NewNotificationHelper(dispatcher, cfg.NotificationConfig, a.logger)

	var historyStore datastore.CheckHistoryStore
	if cfg.StorageConfig.EnableHistory {
		store, err := datastore.NewParquetCheckHistoryStore(cfg.StorageConfig.HistoryDir, cfg.StorageConfig.HistoryMaxRecords, a.logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open check history: %w", err)
		}
		historyStore = store
	}

	var reportSaver monitor.ReportSaver
	if writer := reporter.NewDiffReportWriter(cfg.DiffReporterConfig, a.logger); writer != nil {
		reportSaver = writer
	}

	cacheStore, err := datastore.NewCacheStore(cfg.StorageConfig, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache store: %w", err)
	}
	cleanup := func() {
		if err := cacheStore.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("Failed to close cache store")
		}
	}

	detector := monitor.NewChangeDetector(cacheStore, engine, a.logger)
	checker := monitor.NewURLChecker(a.logger, fetcher, detector, notificationHelper, historyStore, reportSaver)
	return checker, cleanup, nil
}

func printCheckResult(out io.Writer, result *models.CheckResult) {
	fmt.Fprintf(out, "%s: %s\n", result.Outcome.Kind, result.Identifier)
	if artifact := result.Artifact; artifact != nil {
		switch {
		case artifact.HasDifferences():
			fmt.Fprintf(out, "  lines: +%d -%d\n", artifact.LinesAdded, artifact.LinesDeleted)
		case artifact.NewlineAtEOF:
			fmt.Fprintln(out, "  lines: only the newline at end of file changed")
		}
	}
	if result.ReportPath != "" {
		fmt.Fprintf(out, "  report: %s\n", result.ReportPath)
	}
}
