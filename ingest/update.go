/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ingest

import (
	"github.com/rohankumardubey/xviz/errors"
)

// GeometryUpdate carries one stream's feature for one object. Feature is the
// decoded payload, e.g. map[string]any{"center": []any{0, 1}}; it is
// classified by geometry.Parse when applied.
type GeometryUpdate struct {
	ObjectID   string
	FrameIndex int
	Timestamp  float64
	Stream     string
	Feature    any
}

// AttributeUpdate sets one attribute on an object that has already been seen.
type AttributeUpdate struct {
	ObjectID string `yaml:"object"`
	Stream   string `yaml:"stream"`
	Key      string `yaml:"key"`
	Value    any    `yaml:"value"`
}

// FeatureEntry is a geometry update inside a Frame; the frame supplies the
// index and timestamp.
type FeatureEntry struct {
	ObjectID string `yaml:"object"`
	Stream   string `yaml:"stream"`
	Feature  any    `yaml:"feature"`
}

// Frame is every update decoded for one step of the playback timeline.
type Frame struct {
	Index      int               `yaml:"index"`
	Timestamp  float64           `yaml:"timestamp"`
	Features   []FeatureEntry    `yaml:"features"`
	Attributes []AttributeUpdate `yaml:"attributes"`
}

// FrameResult summarises what ApplyFrame did.
type FrameResult struct {
	Index        int
	Objects      int
	Features     int
	Unrecognized int
	Attributes   int
	Dropped      int
}

func (u GeometryUpdate) validate() error {
	if u.ObjectID == "" {
		return errors.NewValidationError("objectId", "must not be empty")
	}
	if u.Stream == "" {
		return errors.NewValidationError("stream", "must not be empty")
	}
	return nil
}

func (u AttributeUpdate) validate() error {
	if u.ObjectID == "" {
		return errors.NewValidationError("objectId", "must not be empty")
	}
	if u.Stream == "" {
		return errors.NewValidationError("stream", "must not be empty")
	}
	if u.Key == "" {
		return errors.NewValidationError("key", "must not be empty")
	}
	return nil
}
