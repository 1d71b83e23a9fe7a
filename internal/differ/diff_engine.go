package differ

import (
	"errors"

	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/rs/zerolog"
)

// DocumentRenderer turns a DiffView into a self-contained document.
type DocumentRenderer interface {
	RenderDocument(view *DiffView) ([]byte, error)
	ContentType() string
}

const defaultArtifactName = "diff.html"

// DiffEngine produces DiffArtifacts from two line sequences.
type DiffEngine struct {
	processor *DiffProcessor
	renderer  DocumentRenderer
	config    DiffConfig
	logger    zerolog.Logger
}

// NewDiffEngine creates a DiffEngine that renders through renderer.
func NewDiffEngine(cfg DiffConfig, renderer DocumentRenderer, logger zerolog.Logger) (*DiffEngine, error) {
	if renderer == nil {
		return nil, errors.New("diff engine needs a document renderer")
	}
	return &DiffEngine{
		processor: NewDiffProcessor(),
		renderer:  renderer,
		config:    cfg,
		logger:    logger.With().Str("component", "DiffEngine").Logger(),
	}, nil
}

// Render diffs previous against current and renders an untitled document.
func (e *DiffEngine) Render(previous, current []string) (*models.DiffArtifact, error) {
	return e.RenderWithTitle("", previous, current)
}

// RenderWithTitle diffs previous against current. The title is shown in the
// document and names the artifact file.
func (e *DiffEngine) RenderWithTitle(title string, previous, current []string) (*models.DiffArtifact, error) {
	return e.render(e.BuildView(title, previous, current), previous, current)
}

// RenderContent splits previous and current into lines and diffs them. Unlike
// the line based entry points it also reports a change of the final newline,
// which line splitting hides.
func (e *DiffEngine) RenderContent(title string, previous, current []byte) (*models.DiffArtifact, error) {
	previousLines := SplitLines(string(previous))
	currentLines := SplitLines(string(current))

	view := e.BuildView(title, previousLines, currentLines)
	view.NewlineAtEOF = NewlineChangeOf(previous, current)
	return e.render(view, previousLines, currentLines)
}

func (e *DiffEngine) render(view *DiffView, previous, current []string) (*models.DiffArtifact, error) {
	document, err := e.renderer.RenderDocument(view)
	if err != nil {
		return nil, &DiffRenderError{Err: err}
	}

	filename := defaultArtifactName
	if view.Title != "" {
		filename = ArtifactFilename(view.Title)
	}

	e.logger.Debug().
		Str("title", view.Title).
		Int("lines_added", view.LinesAdded).
		Int("lines_deleted", view.LinesDeleted).
		Bool("too_large", view.TooLarge).
		Msg("Diff rendered")

	return &models.DiffArtifact{
		Document:     document,
		Previous:     previous,
		Current:      current,
		Filename:     filename,
		ContentType:  e.renderer.ContentType(),
		LinesAdded:   view.LinesAdded,
		LinesDeleted: view.LinesDeleted,
		NewlineAtEOF: view.NewlineAtEOF != NewlineUnchanged,
	}, nil
}

// BuildView computes the line diff and the rows to display.
func (e *DiffEngine) BuildView(title string, previous, current []string) *DiffView {
	view := &DiffView{
		Title:        title,
		PreviousSize: linesSize(previous),
		CurrentSize:  linesSize(current),
		MaxSizeMB:    e.config.MaxDiffFileSizeMB,
	}

	if e.exceedsSizeLimit(view.PreviousSize) || e.exceedsSizeLimit(view.CurrentSize) {
		view.TooLarge = true
		return view
	}

	lines := e.processor.ProcessLines(previous, current)
	stats := CalculateStats(lines)
	view.LinesAdded = stats.LinesAdded
	view.LinesDeleted = stats.LinesDeleted
	view.Identical = stats.IsIdentical
	if !view.Identical {
		view.Rows = BuildRows(lines, e.config.ContextLines)
	}
	return view
}

func (e *DiffEngine) exceedsSizeLimit(size int) bool {
	if e.config.MaxDiffFileSizeMB <= 0 {
		return false
	}
	return int64(size) > int64(e.config.MaxDiffFileSizeMB)*1024*1024
}

// linesSize is the byte size of the content the lines were split from.
func linesSize(lines []string) int {
	size := 0
	for _, l := range lines {
		size += len(l) + 1
	}
	return size
}
