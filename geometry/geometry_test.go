/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package geometry

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Kind
	}{
		{name: "empty map", raw: map[string]any{}, want: KindUnrecognized},
		{name: "scalar center", raw: map[string]any{"center": 1}, want: KindUnrecognized},
		{name: "2d center", raw: map[string]any{"center": []any{0, 1}}, want: KindPoint},
		{name: "3d center", raw: map[string]any{"center": []float64{0, 1, 2}}, want: KindPoint},
		{name: "1d center", raw: map[string]any{"center": []any{1.0}}, want: KindUnrecognized},
		{name: "4d center", raw: map[string]any{"center": []any{1, 2, 3, 4}}, want: KindUnrecognized},
		{name: "string member", raw: map[string]any{"center": []any{"0", 1}}, want: KindUnrecognized},
		{name: "json number center", raw: map[string]any{"center": []any{json.Number("1.5"), json.Number("2")}}, want: KindPoint},
		{name: "polygon", raw: map[string]any{"vertices": []any{[]any{0, 1}, []any{1, 2}}}, want: KindPolygon},
		{name: "typed polygon", raw: map[string]any{"vertices": [][]float64{{0, 1}}}, want: KindPolygon},
		{name: "int polygon", raw: map[string]any{"vertices": [][]int{{0, 0}, {2, 2}}}, want: KindPolygon},
		{name: "float32 polygon", raw: map[string]any{"vertices": [][]float32{{0, 0, 1}, {2, 2, 1}}}, want: KindPolygon},
		{name: "int64 polygon", raw: map[string]any{"vertices": [][]int64{{0, 0}}}, want: KindPolygon},
		{name: "nested any polygon", raw: map[string]any{"vertices": [][]any{{0, 1}, {1.5, 2}}}, want: KindPolygon},
		{name: "int polygon bad vertex", raw: map[string]any{"vertices": [][]int{{0, 0}, {1}}}, want: KindUnrecognized},
		{name: "empty int polygon", raw: map[string]any{"vertices": [][]int{}}, want: KindUnrecognized},
		{name: "int32 center", raw: map[string]any{"center": []int32{1, 2}}, want: KindPoint},
		{name: "uint center", raw: map[string]any{"center": []uint{1, 2, 3}}, want: KindPoint},
		{name: "empty vertices", raw: map[string]any{"vertices": []any{}}, want: KindUnrecognized},
		{name: "bad vertex", raw: map[string]any{"vertices": []any{[]any{0, 1}, 7}}, want: KindUnrecognized},
		{name: "yaml keyed map", raw: map[any]any{"center": []any{0, 1}}, want: KindPoint},
		{name: "nil", raw: nil, want: KindUnrecognized},
		{name: "string", raw: "point", want: KindUnrecognized},
		{name: "prebuilt", raw: Point(1, 2), want: KindPoint},
		{name: "bad center falls back to vertices", raw: map[string]any{"center": 1, "vertices": []any{[]any{0, 1}}}, want: KindPolygon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.raw).Kind; got != tt.want {
				t.Errorf("Parse(%v).Kind = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseTypedVertices(t *testing.T) {
	f := Parse(map[string]any{"vertices": [][]int{{0, 0}, {2, 2}, {4, 4}}})
	if f.Kind != KindPolygon {
		t.Fatalf("expected polygon, got %v", f.Kind)
	}
	if got, ok := Resolve(f); !ok || got != (Position{2, 2, 0}) {
		t.Errorf("Resolve = %v, %v, want (2, 2, 0)", got, ok)
	}

	f = Parse(map[string]any{"vertices": [][]float32{{1, 1, 1}, {3, 3, 3}}})
	if got, ok := Resolve(f); !ok || got != (Position{3, 3, 3}) {
		t.Errorf("Resolve = %v, %v, want (3, 3, 3)", got, ok)
	}
}

func TestParseJSON(t *testing.T) {
	f := ParseJSON([]byte(`{"vertices": [[0, 1], [1, 2], [2, 3]]}`))
	if f.Kind != KindPolygon || len(f.Vertices) != 3 {
		t.Fatalf("unexpected feature %+v", f)
	}
	if got := ParseJSON([]byte(`not json`)); got.Kind != KindUnrecognized {
		t.Fatalf("expected unrecognized for invalid JSON, got %v", got.Kind)
	}
}

func TestPolygonConstructor(t *testing.T) {
	if Polygon().Kind != KindUnrecognized {
		t.Error("empty polygon should be unrecognized")
	}
	if Polygon([]float64{1}).Kind != KindUnrecognized {
		t.Error("polygon with a 1-coordinate vertex should be unrecognized")
	}
	if Polygon([]float64{1, 2}, []float64{3, 4, 5}).Kind != KindPolygon {
		t.Error("2d and 3d vertices should be accepted")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		features []Feature
		want     Position
		valid    bool
	}{
		{name: "none", features: nil, valid: false},
		{name: "only unrecognized", features: []Feature{Unrecognized(), Unrecognized()}, valid: false},
		{name: "2d point padded", features: []Feature{Point(0, 1)}, want: Position{0, 1, 0}, valid: true},
		{name: "3d point", features: []Feature{Point(0, 1, 2)}, want: Position{0, 1, 2}, valid: true},
		{
			name:     "polygon midpoint vertex",
			features: []Feature{Polygon([]float64{0, 1}, []float64{1, 2}, []float64{2, 3})},
			want:     Position{1, 2, 0},
			valid:    true,
		},
		{
			name:     "even polygon takes upper middle",
			features: []Feature{Polygon([]float64{0, 1}, []float64{1, 2}, []float64{2, 3}, []float64{3, 4})},
			want:     Position{2, 3, 0},
			valid:    true,
		},
		{
			name:     "single vertex polygon padded",
			features: []Feature{Polygon([]float64{0, 1})},
			want:     Position{0, 1, 0},
			valid:    true,
		},
		{
			name:     "point beats later polygon",
			features: []Feature{Point(0, 1, 2), Polygon([]float64{5, 5}, []float64{6, 6})},
			want:     Position{0, 1, 2},
			valid:    true,
		},
		{
			name:     "point beats earlier polygon",
			features: []Feature{Polygon([]float64{5, 5}), Point(0, 1)},
			want:     Position{0, 1, 0},
			valid:    true,
		},
		{
			name:     "latest point wins",
			features: []Feature{Point(1, 1), Unrecognized(), Point(2, 2)},
			want:     Position{2, 2, 0},
			valid:    true,
		},
		{
			name:     "latest polygon wins without points",
			features: []Feature{Polygon([]float64{1, 1}), Polygon([]float64{9, 9})},
			want:     Position{9, 9, 0},
			valid:    true,
		},
		{
			name:     "hand built point without coordinates is ignored",
			features: []Feature{{Kind: KindPoint}, Polygon([]float64{3, 4})},
			want:     Position{3, 4, 0},
			valid:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.features...)
			if ok != tt.valid {
				t.Fatalf("Resolve valid = %v, want %v", ok, tt.valid)
			}
			if got != tt.want {
				t.Errorf("Resolve position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	for kind, want := range map[Kind]string{
		KindPoint:        "point",
		KindPolygon:      "polygon",
		KindUnrecognized: "unrecognized",
		Kind(42):         "unrecognized",
	} {
		if kind.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(kind), kind.String(), want)
		}
	}
}
