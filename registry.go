/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package xviz

import (
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/rohankumardubey/xviz/errors"
	"github.com/rohankumardubey/xviz/metric"
	"github.com/rohankumardubey/xviz/object"
)

// Registry is a session-scoped store holding exactly one TrackedObject per id.
// It is safe for concurrent use, but merges are only meaningful from a single
// writer applying frames in order.
type Registry struct {
	mu      sync.RWMutex
	objects map[string]*object.TrackedObject
	// order keeps ids in registration order so queries are deterministic.
	order  []string
	closed bool

	logger  zerolog.Logger
	metrics *metric.Metrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithMetrics attaches Prometheus collectors to the registry.
func WithMetrics(m *metric.Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		objects: make(map[string]*object.TrackedObject),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the object registered under id, creating it when id is unseen.
// An existing object has its temporal extent widened to timestamp and its
// last frame set to frameIndex.
func (r *Registry) Get(id string, frameIndex int, timestamp float64) *object.TrackedObject {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeOpen()

	if obj, exists := r.objects[id]; exists {
		obj.Touch(frameIndex, timestamp)
		return obj
	}

	obj := object.New(id, frameIndex, timestamp)
	r.objects[id] = obj
	r.order = append(r.order, id)

	r.metrics.ObjectCreated()
	r.metrics.SetObjects(len(r.objects))
	r.logger.Debug().Str("object", id).Int("frame", frameIndex).Float64("timestamp", timestamp).Msg("object created")
	return obj
}

// Lookup returns the object registered under id without touching it.
func (r *Registry) Lookup(id string) (*object.TrackedObject, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.mustBeOpen()

	obj, exists := r.objects[id]
	return obj, exists
}

// Clear removes id from the registry. Unknown ids are ignored.
func (r *Registry) Clear(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeOpen()

	if _, exists := r.objects[id]; !exists {
		return
	}
	delete(r.objects, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}

	r.metrics.ObjectCleared()
	r.metrics.SetObjects(len(r.objects))
	r.logger.Debug().Str("object", id).Msg("object cleared")
}

// ResetAll empties the registry, e.g. when a new log is opened or playback
// restarts.
func (r *Registry) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mustBeOpen()

	n := len(r.objects)
	r.objects = make(map[string]*object.TrackedObject)
	r.order = nil

	r.metrics.Reset()
	r.metrics.SetObjects(0)
	r.logger.Debug().Int("objects", n).Msg("registry reset")
}

// Len returns the number of registered objects.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.mustBeOpen()
	return len(r.objects)
}

// GetAll returns snapshots of every registered object in registration order.
func (r *Registry) GetAll() []object.View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.mustBeOpen()

	views := make([]object.View, 0, len(r.order))
	for _, id := range r.order {
		views = append(views, r.objects[id].View())
	}
	return views
}

// GetAllInCurrentFrame returns snapshots of the objects whose most recent
// Get supplied frameIndex.
func (r *Registry) GetAllInCurrentFrame(frameIndex int) []object.View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.mustBeOpen()

	var views []object.View
	for _, id := range r.order {
		v := r.objects[id].View()
		if v.LastFrameIndex == frameIndex {
			views = append(views, v)
		}
	}
	return views
}

// Close releases the registry. Any later use panics with
// errors.ErrRegistryClosed.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.objects = nil
	r.order = nil
	r.closed = true
	r.metrics.SetObjects(0)
}

// mustBeOpen must be called with r.mu held.
func (r *Registry) mustBeOpen() {
	if r.closed {
		panic(errors.ErrRegistryClosed)
	}
}
