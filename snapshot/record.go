/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package snapshot

import (
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/rohankumardubey/xviz/object"
)

// Record is the exported state of one tracked object at the time of export.
// SessionID groups the records of one playback session. Position is nil when
// the object has no resolvable position.
type Record struct {
	SessionID      string          `json:"sessionId"`
	ObjectID       string          `json:"objectId"`
	LastFrameIndex int             `json:"lastFrameIndex"`
	StartTime      float64         `json:"startTime"`
	EndTime        float64         `json:"endTime"`
	Position       []float64       `json:"position"`
	Valid          bool            `json:"isValid"`
	Streams        []string        `json:"streamNames"`
	Attributes     map[string]any  `json:"attributes"`
	ExportedAt     strfmt.DateTime `json:"exportedAt"`
}

// FromView builds a record from a registry view.
func FromView(sessionID string, v object.View, exportedAt time.Time) Record {
	rec := Record{
		SessionID:      sessionID,
		ObjectID:       v.ID,
		LastFrameIndex: v.LastFrameIndex,
		StartTime:      v.StartTime,
		EndTime:        v.EndTime,
		Valid:          v.Valid,
		Streams:        v.Streams,
		Attributes:     v.Attributes,
		ExportedAt:     strfmt.DateTime(exportedAt.UTC()),
	}
	if v.Position != nil {
		rec.Position = v.Position.Slice()
	}
	return rec
}

// QueryParams selects records of one session.
type QueryParams struct {
	// SessionID is required.
	SessionID string
	// FrameIndex, when set, keeps only records last touched in that frame.
	FrameIndex *int
	// Limit caps the number of records returned; zero means no limit.
	Limit int
}

// Matches reports whether rec satisfies the session and frame filters.
func (p *QueryParams) Matches(rec Record) bool {
	if rec.SessionID != p.SessionID {
		return false
	}
	return p.FrameIndex == nil || rec.LastFrameIndex == *p.FrameIndex
}
