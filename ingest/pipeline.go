/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ingest

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rohankumardubey/xviz"
	"github.com/rohankumardubey/xviz/errors"
	"github.com/rohankumardubey/xviz/geometry"
	"github.com/rohankumardubey/xviz/metric"
)

// Pipeline is the single writer for one session's registry. Every Apply call
// runs to completion under one lock, so frames decoded on several goroutines
// still merge in the order they are applied.
type Pipeline struct {
	mu       sync.Mutex
	registry *xviz.Registry

	lastFrame int
	seenFrame bool

	logger  zerolog.Logger
	metrics *metric.Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithMetrics records ingest counters on m.
func WithMetrics(m *metric.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// New creates a pipeline writing into registry.
func New(registry *xviz.Registry, opts ...Option) *Pipeline {
	p := &Pipeline{
		registry: registry,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ApplyGeometry fetches or creates the object and stores the feature.
// Malformed payloads are stored as unrecognized features, never rejected.
func (p *Pipeline) ApplyGeometry(u GeometryUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.applyGeometry(u)
	return err
}

func (p *Pipeline) applyGeometry(u GeometryUpdate) (geometry.Kind, error) {
	if err := u.validate(); err != nil {
		p.metrics.Dropped("invalid")
		return geometry.KindUnrecognized, fmt.Errorf("geometry update: %w", err)
	}

	f := geometry.Parse(u.Feature)
	obj := p.registry.Get(u.ObjectID, u.FrameIndex, u.Timestamp)
	obj.AddFeature(u.Stream, f)

	p.metrics.FeatureIngested(f.Kind.String())
	if f.Kind == geometry.KindUnrecognized {
		p.logger.Debug().
			Str("object", u.ObjectID).
			Str("stream", u.Stream).
			Int("frame", u.FrameIndex).
			Msg("unrecognized feature payload")
	}
	return f.Kind, nil
}

// ApplyAttribute sets an attribute on an object that is already registered.
// Attributes for unseen objects are dropped with a NotFoundError because
// there is no frame or timestamp to create them with.
func (p *Pipeline) ApplyAttribute(u AttributeUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.applyAttribute(u)
}

func (p *Pipeline) applyAttribute(u AttributeUpdate) error {
	if err := u.validate(); err != nil {
		p.metrics.Dropped("invalid")
		return fmt.Errorf("attribute update: %w", err)
	}

	obj, ok := p.registry.Lookup(u.ObjectID)
	if !ok {
		p.metrics.Dropped("unknown_object")
		p.logger.Warn().
			Str("object", u.ObjectID).
			Str("stream", u.Stream).
			Str("key", u.Key).
			Msg("attribute for unknown object dropped")
		return fmt.Errorf("attribute update: %w", errors.NewNotFoundError("TrackedObject", u.ObjectID))
	}

	obj.SetAttribute(u.Stream, u.Key, u.Value)
	p.metrics.AttributeSet()
	return nil
}

// ApplyFrame applies every feature of f and then every attribute. A failing
// update does not stop the rest of the frame; failures are joined into the
// returned error.
func (p *Pipeline) ApplyFrame(f Frame) (FrameResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.seenFrame && f.Index < p.lastFrame {
		p.logger.Warn().
			Int("frame", f.Index).
			Int("previous", p.lastFrame).
			Msg("frame applied out of order; restart the session when seeking backwards")
	}
	p.lastFrame, p.seenFrame = f.Index, true

	result := FrameResult{Index: f.Index}
	touched := make(map[string]struct{})
	var errs []error

	for _, entry := range f.Features {
		kind, err := p.applyGeometry(GeometryUpdate{
			ObjectID:   entry.ObjectID,
			FrameIndex: f.Index,
			Timestamp:  f.Timestamp,
			Stream:     entry.Stream,
			Feature:    entry.Feature,
		})
		if err != nil {
			result.Dropped++
			errs = append(errs, err)
			continue
		}
		result.Features++
		if kind == geometry.KindUnrecognized {
			result.Unrecognized++
		}
		touched[entry.ObjectID] = struct{}{}
	}

	for _, u := range f.Attributes {
		if err := p.applyAttribute(u); err != nil {
			result.Dropped++
			errs = append(errs, err)
			continue
		}
		result.Attributes++
	}

	result.Objects = len(touched)
	p.metrics.FrameApplied()
	p.logger.Debug().
		Int("frame", f.Index).
		Int("objects", result.Objects).
		Int("features", result.Features).
		Int("attributes", result.Attributes).
		Int("dropped", result.Dropped).
		Msg("frame applied")

	return result, stderrors.Join(errs...)
}

// Restart empties the registry and forgets frame ordering, for a replay or a
// newly loaded log.
func (p *Pipeline) Restart() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registry.ResetAll()
	p.seenFrame = false
	p.lastFrame = 0
	p.logger.Info().Msg("pipeline restarted")
}
