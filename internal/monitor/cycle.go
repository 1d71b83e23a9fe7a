package monitor

import (
	"bytes"
	"errors"

	"github.com/aleister1102/urlchecker/internal/differ"
	"github.com/aleister1102/urlchecker/internal/models"
)

// DiffRenderer renders the artifact for a changed resource from the raw
// previous and current content.
type DiffRenderer interface {
	Render(previous, current []byte) (*models.DiffArtifact, error)
}

// CycleDecision is the result of classifying one cycle. Persist is the entry
// to write back, nil when the store must not be touched. Its Key is left for
// the caller to fill in.
type CycleDecision struct {
	Outcome  models.CheckOutcome
	Artifact *models.DiffArtifact
	Persist  *models.CacheEntry
}

// EvaluateCycle classifies content against prior and renders the diff when
// it changed. It does no I/O: prior state comes in, the decision goes out.
// Content is compared byte for byte without any normalisation.
func EvaluateCycle(prior *models.CacheEntry, content []byte, renderer DiffRenderer) (*CycleDecision, error) {
	if content == nil {
		content = []byte{}
	}

	if prior == nil {
		return &CycleDecision{
			Outcome: models.NewFirstObservation(),
			Persist: &models.CacheEntry{Content: content},
		}, nil
	}

	if bytes.Equal(prior.Content, content) {
		return &CycleDecision{Outcome: models.NewUnchanged()}, nil
	}

	if renderer == nil {
		return nil, &differ.DiffRenderError{Err: errors.New("no diff renderer configured")}
	}
	artifact, err := renderer.Render(prior.Content, content)
	if err != nil {
		return nil, err
	}

	return &CycleDecision{
		Outcome:  models.NewChanged(prior.Content, content),
		Artifact: artifact,
		Persist:  &models.CacheEntry{Content: content},
	}, nil
}
