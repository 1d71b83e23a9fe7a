package monitor

import (
	"context"
	"time"

	"github.com/aleister1102/urlchecker/internal/datastore"
	"github.com/aleister1102/urlchecker/internal/models"
	"github.com/rs/zerolog"
)

// DiffEngine is the part of differ.DiffEngine the detector needs.
type DiffEngine interface {
	RenderContent(title string, previous, current []byte) (*models.DiffArtifact, error)
}

// titledRenderer names artifacts after the resource identifier
type titledRenderer struct {
	engine DiffEngine
	title  string
}

func (r titledRenderer) Render(previous, current []byte) (*models.DiffArtifact, error) {
	return r.engine.RenderContent(r.title, previous, current)
}

// ChangeDetector runs one load, classify, render, save cycle per call. It
// keeps no state between calls and never retries.
type ChangeDetector struct {
	store  datastore.CacheStore
	engine DiffEngine
	logger zerolog.Logger
	now    func() time.Time
}

// NewChangeDetector creates a detector over store rendering with engine
func NewChangeDetector(store datastore.CacheStore, engine DiffEngine, logger zerolog.Logger) *ChangeDetector {
	return &ChangeDetector{
		store:  store,
		engine: engine,
		logger: logger.With().Str("component", "ChangeDetector").Logger(),
		now:    time.Now,
	}
}

// Detect classifies content as the newest snapshot of identifier and commits
// it. The result is only returned once the store write has succeeded, so a
// failed save never surfaces an outcome that would be notified again on retry.
// A load failure aborts before anything is written.
func (d *ChangeDetector) Detect(ctx context.Context, identifier string, content []byte) (*models.CheckResult, error) {
	key := datastore.DeriveKey(identifier)
	log := d.logger.With().Str("identifier", identifier).Logger()

	prior, err := d.store.Load(ctx, key)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load cached content")
		return nil, &DetectionError{Stage: StageLoad, Identifier: identifier, Err: err}
	}

	var renderer DiffRenderer
	if d.engine != nil {
		renderer = titledRenderer{engine: d.engine, title: identifier}
	}
	decision, err := EvaluateCycle(prior, content, renderer)
	if err != nil {
		log.Error().Err(err).Msg("Failed to render diff")
		return nil, &DetectionError{Stage: StageRender, Identifier: identifier, Err: err}
	}

	if decision.Persist != nil {
		decision.Persist.Key = key
		if err := d.store.Save(ctx, key, decision.Persist.Content); err != nil {
			log.Error().Err(err).Str("outcome", decision.Outcome.Kind.String()).Msg("Failed to save content, outcome not committed")
			return nil, &DetectionError{Stage: StageSave, Identifier: identifier, Err: err}
		}
	}

	log.Info().
		Str("outcome", decision.Outcome.Kind.String()).
		Int("content_size", len(content)).
		Bool("written", decision.Persist != nil).
		Msg("Change detection completed")

	return &models.CheckResult{
		Identifier: identifier,
		Key:        key,
		Outcome:    decision.Outcome,
		Artifact:   decision.Artifact,
		CheckedAt:  d.now(),
		Committed:  true,
	}, nil
}
