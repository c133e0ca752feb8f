/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package object

import (
	"slices"
	"sync"

	"github.com/rohankumardubey/xviz/geometry"
)

type featureEntry struct {
	feature geometry.Feature
	seq     uint64
}

// TrackedObject is the merged state of one entity across every frame and
// stream seen so far in a session. It is safe for concurrent use; each method
// applies atomically with respect to View.
type TrackedObject struct {
	mu sync.RWMutex

	id             string
	lastFrameIndex int
	startTime      float64
	endTime        float64

	// streams records stream names in first-insertion order since the last reset.
	streams  []string
	features map[string]featureEntry
	seq      uint64

	attributes map[string]any
	sources    map[string]string

	// state belongs to the application and survives Reset.
	state map[string]any

	position geometry.Position
	valid    bool
}

// New creates an object whose temporal extent is the single instant timestamp.
func New(id string, frameIndex int, timestamp float64) *TrackedObject {
	return &TrackedObject{
		id:             id,
		lastFrameIndex: frameIndex,
		startTime:      timestamp,
		endTime:        timestamp,
		features:       make(map[string]featureEntry),
		attributes:     make(map[string]any),
		sources:        make(map[string]string),
		state:          make(map[string]any),
	}
}

// ID returns the identifier assigned by the decoder.
func (o *TrackedObject) ID() string {
	return o.id
}

// LastFrameIndex returns the most recent frame that touched the object.
func (o *TrackedObject) LastFrameIndex() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.lastFrameIndex
}

// StartTime returns the earliest timestamp observed.
func (o *TrackedObject) StartTime() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.startTime
}

// EndTime returns the latest timestamp observed.
func (o *TrackedObject) EndTime() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.endTime
}

// Observe widens the temporal extent to include timestamp.
func (o *TrackedObject) Observe(timestamp float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.startTime = min(o.startTime, timestamp)
	o.endTime = max(o.endTime, timestamp)
}

// ObserveFrame records frameIndex as the latest frame that touched the object.
func (o *TrackedObject) ObserveFrame(frameIndex int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastFrameIndex = frameIndex
}

// Touch widens the temporal extent to include timestamp and records
// frameIndex as the latest frame, as one update.
func (o *TrackedObject) Touch(frameIndex int, timestamp float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.startTime = min(o.startTime, timestamp)
	o.endTime = max(o.endTime, timestamp)
	o.lastFrameIndex = frameIndex
}

// AddFeature stores f as the current feature of stream and recomputes the
// position. The stream name is recorded even when f is unrecognized.
func (o *TrackedObject) AddFeature(stream string, f geometry.Feature) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, seen := o.features[stream]; !seen {
		o.streams = append(o.streams, stream)
	}
	o.seq++
	o.features[stream] = featureEntry{feature: f, seq: o.seq}
	o.recompute()
}

// recompute must be called with o.mu held for writing.
func (o *TrackedObject) recompute() {
	entries := make([]featureEntry, 0, len(o.features))
	for _, e := range o.features {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b featureEntry) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		default:
			return 0
		}
	})

	ordered := make([]geometry.Feature, len(entries))
	for i, e := range entries {
		ordered[i] = e.feature
	}
	o.position, o.valid = geometry.Resolve(ordered...)
}

// Feature returns the current feature of stream.
func (o *TrackedObject) Feature(stream string) (geometry.Feature, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	e, ok := o.features[stream]
	return e.feature, ok
}

// Position returns the resolved position and whether one could be resolved.
func (o *TrackedObject) Position() (geometry.Position, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.position, o.valid
}

// IsValid reports whether the current features resolve to a position.
func (o *TrackedObject) IsValid() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.valid
}

// StreamNames returns the streams that supplied features since the last
// reset, in first-insertion order.
func (o *TrackedObject) StreamNames() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return slices.Clone(o.streams)
}

// SetAttribute stores value under key. The last write wins whichever stream
// sent it; stream is kept only as provenance.
func (o *TrackedObject) SetAttribute(stream, key string, value any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.attributes[key] = value
	o.sources[key] = stream
}

// Attribute returns a single attribute value.
func (o *TrackedObject) Attribute(key string) (any, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.attributes[key]
	return v, ok
}

// AttributeSource returns the stream that last wrote key.
func (o *TrackedObject) AttributeSource(key string) (string, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	s, ok := o.sources[key]
	return s, ok
}

// GetAttributes returns a copy of the flattened attributes.
func (o *TrackedObject) GetAttributes() map[string]any {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return copyMap(o.attributes)
}

// SetState stores application state on the object, e.g. UI selection.
func (o *TrackedObject) SetState(key string, value any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state[key] = value
}

// State returns a single application state value.
func (o *TrackedObject) State(key string) (any, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.state[key]
	return v, ok
}

// Reset clears features, attributes and the derived position so the object
// can be reused for a new aggregation pass. Identity, frame index, temporal
// extent and application state are kept.
func (o *TrackedObject) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.streams = nil
	o.features = make(map[string]featureEntry)
	o.seq = 0
	o.attributes = make(map[string]any)
	o.sources = make(map[string]string)
	o.position = geometry.Position{}
	o.valid = false
}

// View returns a consistent read-only snapshot of the object.
func (o *TrackedObject) View() View {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v := View{
		ID:             o.id,
		LastFrameIndex: o.lastFrameIndex,
		StartTime:      o.startTime,
		EndTime:        o.endTime,
		Valid:          o.valid,
		Streams:        slices.Clone(o.streams),
		Attributes:     copyMap(o.attributes),
	}
	if o.valid {
		pos := o.position
		v.Position = &pos
	}
	return v
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
