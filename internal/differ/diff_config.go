package differ

import "github.com/aleister1102/urlchecker/internal/config"

// DiffConfig holds configuration for content diffing
type DiffConfig struct {
	// ContextLines unchanged lines are kept around each change; negative keeps all.
	ContextLines int
	// MaxDiffFileSizeMB skips the line diff when either side is larger; 0 disables the guard.
	MaxDiffFileSizeMB int
}

// DefaultDiffConfig returns default configuration
func DefaultDiffConfig() DiffConfig {
	return DiffConfig{
		ContextLines:      config.DefaultDiffContextLines,
		MaxDiffFileSizeMB: config.DefaultMaxDiffFileSizeMB,
	}
}

// NewDiffConfig derives the diff settings from the diff_reporter_config section
func NewDiffConfig(cfg config.DiffReporterConfig) DiffConfig {
	return DiffConfig{
		ContextLines:      cfg.ContextLines,
		MaxDiffFileSizeMB: cfg.MaxDiffFileSizeMB,
	}
}
