package monitor

import (
	"testing"

	"github.com/aleister1102/urlchecker/internal/differ"
	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	calls int
	err   error
}

func (r *stubRenderer) Render(previous, current []byte) (*models.DiffArtifact, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return &models.DiffArtifact{
		Previous:   differ.SplitLines(string(previous)),
		Current:    differ.SplitLines(string(current)),
		LinesAdded: 1,
	}, nil
}

func TestEvaluateCycle_FirstObservation(t *testing.T) {
	renderer := &stubRenderer{}
	decision, err := EvaluateCycle(nil, []byte("v1"), renderer)
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeFirstObservation, decision.Outcome.Kind)
	assert.Nil(t, decision.Artifact)
	require.NotNil(t, decision.Persist)
	assert.Equal(t, []byte("v1"), decision.Persist.Content)
	assert.Zero(t, renderer.calls)
}

func TestEvaluateCycle_FirstObservationEmptyContent(t *testing.T) {
	decision, err := EvaluateCycle(nil, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, decision.Persist)
	assert.NotNil(t, decision.Persist.Content)
	assert.Empty(t, decision.Persist.Content)
}

func TestEvaluateCycle_Unchanged(t *testing.T) {
	renderer := &stubRenderer{}
	prior := &models.CacheEntry{Content: []byte("v1")}

	decision, err := EvaluateCycle(prior, []byte("v1"), renderer)
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeUnchanged, decision.Outcome.Kind)
	assert.Nil(t, decision.Artifact)
	assert.Nil(t, decision.Persist)
	assert.Nil(t, decision.Outcome.Previous)
	assert.Nil(t, decision.Outcome.Current)
	assert.Zero(t, renderer.calls)
}

func TestEvaluateCycle_Changed(t *testing.T) {
	renderer := &stubRenderer{}
	prior := &models.CacheEntry{Content: []byte("a\nb\n")}

	decision, err := EvaluateCycle(prior, []byte("a\nc\n"), renderer)
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeChanged, decision.Outcome.Kind)
	assert.Equal(t, []byte("a\nb\n"), decision.Outcome.Previous)
	assert.Equal(t, []byte("a\nc\n"), decision.Outcome.Current)
	require.NotNil(t, decision.Artifact)
	assert.Equal(t, []string{"a", "b"}, decision.Artifact.Previous)
	assert.Equal(t, []string{"a", "c"}, decision.Artifact.Current)
	require.NotNil(t, decision.Persist)
	assert.Equal(t, []byte("a\nc\n"), decision.Persist.Content)
	assert.Equal(t, 1, renderer.calls)
}

func TestEvaluateCycle_NoNormalisation(t *testing.T) {
	prior := &models.CacheEntry{Content: []byte("line\n")}

	for _, content := range []string{"line", "line\r\n", "line \n", "Line\n"} {
		decision, err := EvaluateCycle(prior, []byte(content), &stubRenderer{})
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeChanged, decision.Outcome.Kind, "content %q", content)
	}
}

func TestEvaluateCycle_EmptyPriorContent(t *testing.T) {
	prior := &models.CacheEntry{Content: []byte{}}

	decision, err := EvaluateCycle(prior, []byte{}, &stubRenderer{})
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeUnchanged, decision.Outcome.Kind)

	decision, err = EvaluateCycle(prior, []byte("x"), &stubRenderer{})
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeChanged, decision.Outcome.Kind)
	assert.Equal(t, []string{}, decision.Artifact.Previous)
}

func TestEvaluateCycle_RenderFailure(t *testing.T) {
	prior := &models.CacheEntry{Content: []byte("v1")}

	_, err := EvaluateCycle(prior, []byte("v2"), &stubRenderer{err: &differ.DiffRenderError{Err: errBoom}})
	var renderErr *differ.DiffRenderError
	require.ErrorAs(t, err, &renderErr)

	_, err = EvaluateCycle(prior, []byte("v2"), nil)
	require.ErrorAs(t, err, &renderErr)
}
