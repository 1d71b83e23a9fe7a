package reporter

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/aleister1102/urlchecker/internal/differ"
	"github.com/rs/zerolog"
)

// diffReportPageData is the data handed to the diff report template
type diffReportPageData struct {
	ReportTitle string
	CSS         template.CSS
	View        *differ.DiffView
}

// HtmlDiffRenderer renders a DiffView as a self-contained HTML document.
// The CSS is inlined and the document carries no scripts or external
// references, so it opens the same way as an attachment or from disk.
type HtmlDiffRenderer struct {
	logger      zerolog.Logger
	template    *template.Template
	reportTitle string
}

var _ differ.DocumentRenderer = (*HtmlDiffRenderer)(nil)

// NewHtmlDiffRenderer parses the embedded diff template
func NewHtmlDiffRenderer(reportTitle string, logger zerolog.Logger) (*HtmlDiffRenderer, error) {
	if reportTitle == "" {
		reportTitle = DefaultDiffReportTitle
	}

	tmpl, err := template.New("").Funcs(GetDiffTemplateFunctions()).ParseFS(templatesFS, "templates/"+DiffReportTemplateName)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML diff template: %w", err)
	}

	renderer := &HtmlDiffRenderer{
		logger:      logger.With().Str("component", "HtmlDiffRenderer").Logger(),
		template:    tmpl,
		reportTitle: reportTitle,
	}
	renderer.logger.Debug().Str("defined_templates", tmpl.DefinedTemplates()).Msg("HTML diff template parsed successfully")
	return renderer, nil
}

// RenderDocument executes the template for view
func (r *HtmlDiffRenderer) RenderDocument(view *differ.DiffView) ([]byte, error) {
	if view == nil {
		return nil, fmt.Errorf("diff view is nil")
	}

	pageData := diffReportPageData{
		ReportTitle: r.reportTitle,
		CSS:         template.CSS(diffReportCSS),
		View:        view,
	}

	var buf bytes.Buffer
	if err := r.template.ExecuteTemplate(&buf, DiffReportTemplateName, pageData); err != nil {
		r.logger.Error().Err(err).Msg("Failed to execute template for diff report")
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentType is the MIME type of rendered documents
func (r *HtmlDiffRenderer) ContentType() string {
	return HTMLContentType
}
