package reporter

import "embed"

//go:embed templates/*
var templatesFS embed.FS

//go:embed assets/css/diff_report.css
var diffReportCSS string
