package reporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aleister1102/urlchecker/internal/common"
	"github.com/aleister1102/urlchecker/internal/config"
	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/rs/zerolog"
)

// DiffReportWriter keeps a copy of rendered diff artifacts in report_dir
type DiffReportWriter struct {
	reportDir   string
	fileManager *common.FileManager
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDiffReportWriter creates a writer for cfg. It returns nil when saving
// reports is disabled; a nil writer saves nothing.
func NewDiffReportWriter(cfg config.DiffReporterConfig, logger zerolog.Logger) *DiffReportWriter {
	if !cfg.SaveReports {
		return nil
	}
	reportDir := cfg.ReportDir
	if reportDir == "" {
		reportDir = config.DefaultDiffReportDir
	}
	return &DiffReportWriter{
		reportDir:   reportDir,
		fileManager: common.NewFileManager(logger),
		logger:      logger.With().Str("component", "DiffReportWriter").Logger(),
		now:         time.Now,
	}
}

// SaveReport writes artifact to report_dir and returns the file path.
// Saved reports keep the artifact name plus a timestamp so earlier reports
// for the same resource are not overwritten.
func (w *DiffReportWriter) SaveReport(ctx context.Context, artifact *models.DiffArtifact) (string, error) {
	if w == nil {
		return "", nil
	}
	if artifact == nil {
		return "", fmt.Errorf("diff artifact is nil")
	}

	reportPath := w.reportPath(artifact.Filename)
	if err := w.fileManager.WriteFileAtomic(ctx, reportPath, artifact.Document, FilePermissions); err != nil {
		w.logger.Error().Err(err).Str("path", reportPath).Msg("Failed to save diff report")
		return "", fmt.Errorf("failed to save diff report %s: %w", reportPath, err)
	}

	w.logger.Info().Str("path", reportPath).Int("size", len(artifact.Document)).Msg("Saved diff report")
	return reportPath, nil
}

// ListReports returns saved report paths sorted by name
func (w *DiffReportWriter) ListReports() ([]string, error) {
	if w == nil {
		return nil, nil
	}
	entries, err := os.ReadDir(w.reportDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read diff report directory %s: %w", w.reportDir, err)
	}

	var reports []string
	for _, entry := range entries {
		if entry.IsDir() || !isDiffReportFile(entry.Name()) {
			continue
		}
		reports = append(reports, filepath.Join(w.reportDir, entry.Name()))
	}
	sort.Strings(reports)
	return reports, nil
}

func (w *DiffReportWriter) reportPath(artifactName string) string {
	if artifactName == "" {
		artifactName = "diff.html"
	}
	stem := strings.TrimSuffix(artifactName, filepath.Ext(artifactName))
	timestamp := w.now().UTC().Format(ReportTimestampLayout)
	return filepath.Join(w.reportDir, fmt.Sprintf("%s_%s.html", stem, timestamp))
}

func isDiffReportFile(name string) bool {
	return strings.HasPrefix(name, "diff") && strings.HasSuffix(name, ".html")
}
