package config

// DiffReporterConfig defines configuration for diff rendering and report files
type DiffReporterConfig struct {
	MaxDiffFileSizeMB int `json:"max_diff_file_size_mb,omitempty" yaml:"max_diff_file_size_mb,omitempty" validate:"min=0"`
	// ContextLines is the number of unchanged lines kept around each change; negative disables collapsing.
	ContextLines int    `json:"context_lines" yaml:"context_lines"`
	SaveReports  bool   `json:"save_reports" yaml:"save_reports"`
	ReportDir    string `json:"report_dir,omitempty" yaml:"report_dir,omitempty"`
	ReportTitle  string `json:"report_title,omitempty" yaml:"report_title,omitempty"`
}

// NewDefaultDiffReporterConfig creates default diff reporter configuration
func NewDefaultDiffReporterConfig() DiffReporterConfig {
	return DiffReporterConfig{
		MaxDiffFileSizeMB: DefaultMaxDiffFileSizeMB,
		ContextLines:      DefaultDiffContextLines,
		SaveReports:       false,
		ReportDir:         DefaultDiffReportDir,
		ReportTitle:       DefaultDiffReportTitle,
	}
}
