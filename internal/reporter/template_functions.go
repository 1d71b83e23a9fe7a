package reporter

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/aleister1102/urlchecker/internal/differ"
)

// GetDiffTemplateFunctions returns functions for the diff report template
func GetDiffTemplateFunctions() template.FuncMap {
	return template.FuncMap{
		"rowClass":      rowClass,
		"isSkipped":     func(row differ.DiffRow) bool { return row.Kind == differ.RowSkipped },
		"lineNumber":    lineNumber,
		"skippedLabel":  skippedLabel,
		"formatBytes":   formatBytes,
		"newlineNotice": newlineNotice,
	}
}

func rowClass(row differ.DiffRow) string {
	switch row.Kind {
	case differ.RowAdded:
		return "added"
	case differ.RowRemoved:
		return "removed"
	case differ.RowSkipped:
		return "skipped"
	default:
		return "context"
	}
}

// lineNumber renders 0 (no line on that side) as an empty cell
func lineNumber(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func newlineNotice(change differ.NewlineChange) string {
	switch change {
	case differ.NewlineAdded:
		return "Newline at end of file added"
	case differ.NewlineRemoved:
		return "No newline at end of file"
	default:
		return ""
	}
}

func skippedLabel(n int) string {
	if n == 1 {
		return "1 unchanged line"
	}
	return fmt.Sprintf("%d unchanged lines", n)
}

func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := int64(n) / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
