package reporter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aleister1102/urlchecker/internal/config"
	"github.com/aleister1102/urlchecker/internal/differ"
	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, cfg differ.DiffConfig) *differ.DiffEngine {
	t.Helper()
	renderer, err := NewHtmlDiffRenderer("", zerolog.Nop())
	require.NoError(t, err)
	engine, err := differ.NewDiffEngine(cfg, renderer, zerolog.Nop())
	require.NoError(t, err)
	return engine
}

func assertSelfContained(t *testing.T, document string) {
	t.Helper()
	lower := strings.ToLower(document)
	for _, forbidden := range []string{"<script", "<link", "src=", "href=", "@import", "url("} {
		assert.NotContains(t, lower, forbidden)
	}
	assert.True(t, strings.HasPrefix(document, "<!DOCTYPE html>"))
}

func TestHtmlDiffRenderer_ChangedDocument(t *testing.T) {
	engine := newTestEngine(t, differ.DefaultDiffConfig())

	artifact, err := engine.RenderWithTitle("https://example.com/a", []string{"v1"}, []string{"v2"})
	require.NoError(t, err)

	doc := string(artifact.Document)
	assertSelfContained(t, doc)
	assert.Equal(t, HTMLContentType, artifact.ContentType)
	assert.Equal(t, "diff_example.com_a.html", artifact.Filename)
	assert.Contains(t, doc, `<tr class="removed"><td class="num">1</td><td class="num"></td><td class="marker">-</td><td>v1</td></tr>`)
	assert.Contains(t, doc, `<tr class="added"><td class="num"></td><td class="num">1</td><td class="marker">&#43;</td><td>v2</td></tr>`)
	assert.Contains(t, doc, "https://example.com/a")
	assert.Contains(t, doc, DefaultDiffReportTitle)
	assert.NotContains(t, doc, "No differences")
}

func TestHtmlDiffRenderer_NoDifferences(t *testing.T) {
	engine := newTestEngine(t, differ.DefaultDiffConfig())
	lines := differ.SplitLines("same\ncontent\n")

	artifact, err := engine.Render(lines, lines)
	require.NoError(t, err)

	doc := string(artifact.Document)
	assertSelfContained(t, doc)
	assert.Contains(t, doc, "No differences")
	assert.NotContains(t, doc, `class="added"`)
	assert.NotContains(t, doc, `class="removed"`)
}

func TestHtmlDiffRenderer_TrailingNewlineNotice(t *testing.T) {
	engine := newTestEngine(t, differ.DefaultDiffConfig())

	t.Run("newline added", func(t *testing.T) {
		artifact, err := engine.RenderContent("https://example.com/a", []byte("v1"), []byte("v1\n"))
		require.NoError(t, err)
		doc := string(artifact.Document)
		assertSelfContained(t, doc)
		assert.Contains(t, doc, `<div class="notice">Newline at end of file added</div>`)
		assert.NotContains(t, doc, "No differences")
	})

	t.Run("newline removed with line changes", func(t *testing.T) {
		artifact, err := engine.RenderContent("", []byte("a\n"), []byte("b"))
		require.NoError(t, err)
		doc := string(artifact.Document)
		assert.Contains(t, doc, "<td>b</td>")
		assert.Contains(t, doc, `<div class="notice">No newline at end of file</div>`)
	})
}

func TestHtmlDiffRenderer_Deterministic(t *testing.T) {
	engine := newTestEngine(t, differ.DefaultDiffConfig())
	previous := differ.SplitLines("a\nb\nc\nd\ne\nf\ng\nh\ni\nj\n")
	current := differ.SplitLines("a\nb\nC\nd\ne\nf\ng\nh\ni\nj\nk\n")

	first, err := engine.RenderWithTitle("https://example.com/page", previous, current)
	require.NoError(t, err)
	second, err := engine.RenderWithTitle("https://example.com/page", previous, current)
	require.NoError(t, err)

	assert.Equal(t, first.Document, second.Document)
}

func TestHtmlDiffRenderer_EscapesContent(t *testing.T) {
	engine := newTestEngine(t, differ.DefaultDiffConfig())

	artifact, err := engine.Render([]string{"safe"}, []string{`<script>alert("x")</script>`, `<b>bold</b> & more`})
	require.NoError(t, err)

	doc := string(artifact.Document)
	assertSelfContained(t, doc)
	assert.Contains(t, doc, "&lt;script&gt;")
	assert.Contains(t, doc, "&lt;b&gt;bold&lt;/b&gt; &amp; more")
}

func TestHtmlDiffRenderer_CollapsedContext(t *testing.T) {
	engine := newTestEngine(t, differ.DiffConfig{ContextLines: 1})
	previous := []string{"1", "2", "3", "4", "5", "6"}
	current := []string{"1", "2", "3", "4", "5", "six"}

	artifact, err := engine.Render(previous, current)
	require.NoError(t, err)
	assert.Contains(t, string(artifact.Document), "4 unchanged lines")
}

func TestHtmlDiffRenderer_TooLarge(t *testing.T) {
	engine := newTestEngine(t, differ.DiffConfig{ContextLines: 3, MaxDiffFileSizeMB: 1})
	big := []string{strings.Repeat("x", 2*1024*1024)}

	artifact, err := engine.Render([]string{"small"}, big)
	require.NoError(t, err)

	doc := string(artifact.Document)
	assert.Contains(t, doc, "Content too large for detailed diff")
	assert.Contains(t, doc, "6 B")
	assert.Contains(t, doc, "2.0 MB")
	assert.NotContains(t, doc, "xxxxxxxx")
}

func TestHtmlDiffRenderer_NilView(t *testing.T) {
	renderer, err := NewHtmlDiffRenderer("Custom", zerolog.Nop())
	require.NoError(t, err)

	_, err = renderer.RenderDocument(nil)
	assert.Error(t, err)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", formatBytes(0))
	assert.Equal(t, "1023 B", formatBytes(1023))
	assert.Equal(t, "1.0 KB", formatBytes(1024))
	assert.Equal(t, "1.5 MB", formatBytes(3*512*1024))
}

func TestDiffReportWriter(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		writer := NewDiffReportWriter(config.DiffReporterConfig{SaveReports: false}, zerolog.Nop())
		assert.Nil(t, writer)

		path, err := writer.SaveReport(context.Background(), &models.DiffArtifact{})
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	t.Run("saves artifact", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "reports")
		writer := NewDiffReportWriter(config.DiffReporterConfig{SaveReports: true, ReportDir: dir}, zerolog.Nop())
		require.NotNil(t, writer)
		writer.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

		artifact := &models.DiffArtifact{Document: []byte("<html></html>"), Filename: "diff_example.com_a.html"}
		path, err := writer.SaveReport(context.Background(), artifact)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "diff_example.com_a_20240501-123000.html"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, artifact.Document, data)

		reports, err := writer.ListReports()
		require.NoError(t, err)
		assert.Equal(t, []string{path}, reports)
	})

	t.Run("nil artifact", func(t *testing.T) {
		writer := NewDiffReportWriter(config.DiffReporterConfig{SaveReports: true, ReportDir: t.TempDir()}, zerolog.Nop())
		_, err := writer.SaveReport(context.Background(), nil)
		assert.Error(t, err)
	})
}
