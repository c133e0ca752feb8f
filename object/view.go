/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package object

import (
	"github.com/rohankumardubey/xviz/geometry"
)

// View is a read-only copy of a TrackedObject handed to query and render
// layers. It shares no state with the object it was taken from. Position is
// nil when the object has no resolvable position.
type View struct {
	ID             string             `json:"id"`
	LastFrameIndex int                `json:"lastFrameIndex"`
	StartTime      float64            `json:"startTime"`
	EndTime        float64            `json:"endTime"`
	Position       *geometry.Position `json:"position"`
	Valid          bool               `json:"isValid"`
	Streams        []string           `json:"streamNames"`
	Attributes     map[string]any     `json:"attributes"`
}

// Covers reports whether timestamp lies inside the observed temporal extent.
func (v View) Covers(timestamp float64) bool {
	return timestamp >= v.StartTime && timestamp <= v.EndTime
}
