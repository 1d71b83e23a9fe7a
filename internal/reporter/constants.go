package reporter

const (
	// Template names
	DiffReportTemplateName = "diff_report.html.tmpl"

	// Document content type
	HTMLContentType = "text/html; charset=utf-8"

	// Report generation defaults
	DefaultDiffReportTitle = "URL change report"

	// File permissions
	DirPermissions  = 0755
	FilePermissions = 0644

	// Saved report timestamp layout
	ReportTimestampLayout = "20060102-150405"
)
