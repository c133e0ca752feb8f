/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package export

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rohankumardubey/xviz"
	"github.com/rohankumardubey/xviz/datastore"
	"github.com/rohankumardubey/xviz/errors"
	"github.com/rohankumardubey/xviz/metric"
	"github.com/rohankumardubey/xviz/object"
	"github.com/rohankumardubey/xviz/snapshot"
)

// Exporter writes registry snapshots of one session to a DataStore.
type Exporter struct {
	store   datastore.DataStore
	session *xviz.Session
	logger  zerolog.Logger
	metrics *metric.Metrics
	now     func() time.Time
}

// Option configures an Exporter
type Option func(*Exporter)

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithMetrics counts exported records
func WithMetrics(m *metric.Metrics) Option {
	return func(e *Exporter) {
		e.metrics = m
	}
}

// WithClock overrides the time stamped on exported records
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

// New creates an exporter for session.
func New(store datastore.DataStore, session *xviz.Session, opts ...Option) *Exporter {
	e := &Exporter{
		store:   store,
		session: session,
		logger:  zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportFrame writes the objects last touched in frameIndex and returns how
// many records were written. Objects whose stored record comes from a later
// frame are skipped.
func (e *Exporter) ExportFrame(ctx context.Context, frameIndex int) (int, error) {
	return e.export(ctx, e.session.Registry.GetAllInCurrentFrame(frameIndex))
}

// ExportAll writes every object of the registry.
func (e *Exporter) ExportAll(ctx context.Context) (int, error) {
	return e.export(ctx, e.session.Registry.GetAll())
}

func (e *Exporter) export(ctx context.Context, views []object.View) (int, error) {
	exportedAt := e.now()
	written := 0
	var errs []error

	for _, v := range views {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		rec := snapshot.FromView(e.session.ID, v, exportedAt)
		err := e.store.Put(ctx, rec)
		if errors.IsConditionFailed(err) {
			e.metrics.Exported("stale")
			e.logger.Debug().Err(err).Str("object", v.ID).Msg("newer record already stored")
			continue
		}
		if err != nil {
			e.metrics.Exported("error")
			errs = append(errs, fmt.Errorf("export object %s: %w", v.ID, err))
			continue
		}
		e.metrics.Exported("ok")
		written++
	}

	e.logger.Debug().
		Str("session", e.session.ID).
		Int("objects", len(views)).
		Int("written", written).
		Msg("snapshot exported")
	return written, stderrors.Join(errs...)
}

// Retire drops the object from the registry and deletes its record. A record
// that was never exported is not an error.
func (e *Exporter) Retire(ctx context.Context, id string) error {
	e.session.Registry.Clear(id)

	err := e.store.Delete(ctx, e.session.ID, id)
	if err != nil && !errors.IsNotFound(err) {
		return fmt.Errorf("retire object %s: %w", id, err)
	}
	return nil
}

// Reset restarts the session and deletes every record exported for it.
func (e *Exporter) Reset(ctx context.Context) error {
	e.session.Restart()

	removed, err := e.store.DeleteSession(ctx, e.session.ID)
	if err != nil {
		return fmt.Errorf("reset session %s: %w", e.session.ID, err)
	}

	e.logger.Info().
		Str("session", e.session.ID).
		Int("removed", removed).
		Msg("exported session cleared")
	return nil
}
