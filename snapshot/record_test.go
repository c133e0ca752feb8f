/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package snapshot

import (
	"testing"
	"time"

	"github.com/rohankumardubey/xviz/geometry"
	"github.com/rohankumardubey/xviz/object"
)

func TestFromView(t *testing.T) {
	exportedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	v := object.View{
		ID:             "11",
		LastFrameIndex: 4,
		StartTime:      999,
		EndTime:        1001,
		Position:       &geometry.Position{0, 1, 2},
		Valid:          true,
		Streams:        []string{"/a", "/b"},
		Attributes:     map[string]any{"a": 5},
	}

	rec := FromView("session-1", v, exportedAt)

	if rec.SessionID != "session-1" || rec.ObjectID != "11" || rec.LastFrameIndex != 4 {
		t.Fatalf("identity not copied: %+v", rec)
	}
	if rec.StartTime != 999 || rec.EndTime != 1001 {
		t.Fatalf("extent not copied: %+v", rec)
	}
	if len(rec.Position) != 3 || rec.Position[2] != 2 {
		t.Fatalf("Expected position [0 1 2], got %v", rec.Position)
	}
	if !time.Time(rec.ExportedAt).Equal(exportedAt) || time.Time(rec.ExportedAt).Location() != time.UTC {
		t.Fatalf("ExportedAt should be the same instant in UTC, got %v", rec.ExportedAt)
	}

	v.Position = nil
	v.Valid = false
	if rec := FromView("session-1", v, exportedAt); rec.Position != nil {
		t.Fatalf("invalid objects export a nil position, got %v", rec.Position)
	}
}

func TestQueryParamsMatches(t *testing.T) {
	frame := 3
	tests := []struct {
		name   string
		params QueryParams
		rec    Record
		want   bool
	}{
		{"same session no frame", QueryParams{SessionID: "s"}, Record{SessionID: "s", LastFrameIndex: 9}, true},
		{"other session", QueryParams{SessionID: "s"}, Record{SessionID: "t"}, false},
		{"frame match", QueryParams{SessionID: "s", FrameIndex: &frame}, Record{SessionID: "s", LastFrameIndex: 3}, true},
		{"frame mismatch", QueryParams{SessionID: "s", FrameIndex: &frame}, Record{SessionID: "s", LastFrameIndex: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.Matches(tt.rec); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultQueryOptions(t *testing.T) {
	opts := DefaultQueryOptions()
	for _, opt := range []QueryOption{WithPageSize(25), WithMaxRetries(5), WithRetryBackoff(time.Millisecond)} {
		opt(&opts)
	}
	if opts.PageSize != 25 || opts.MaxRetries != 5 || opts.RetryBackoff != time.Millisecond {
		t.Fatalf("options not applied: %+v", opts)
	}
}
