/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package geometry

import (
	"encoding/json"
)

// Kind tags the shape of a Feature.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindPoint
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindPolygon:
		return "polygon"
	default:
		return "unrecognized"
	}
}

// Feature is one stream's geometric description of an object, classified once
// when it is ingested.
type Feature struct {
	Kind Kind
	// Center holds 2 or 3 coordinates when Kind is KindPoint.
	Center []float64
	// Vertices holds at least one 2 or 3 coordinate vertex when Kind is KindPolygon.
	Vertices [][]float64
}

// Point builds a point feature. Extra coordinates beyond z are ignored.
func Point(x, y float64, z ...float64) Feature {
	center := []float64{x, y}
	if len(z) > 0 {
		center = append(center, z[0])
	}
	return Feature{Kind: KindPoint, Center: center}
}

// Polygon builds a polygon feature, or an unrecognized one when the vertex
// list is empty or any vertex has the wrong arity.
func Polygon(vertices ...[]float64) Feature {
	if len(vertices) == 0 {
		return Unrecognized()
	}
	out := make([][]float64, len(vertices))
	for i, v := range vertices {
		if !isVertex(v) {
			return Unrecognized()
		}
		out[i] = append([]float64(nil), v...)
	}
	return Feature{Kind: KindPolygon, Vertices: out}
}

// Unrecognized returns a feature that contributes nothing to position.
func Unrecognized() Feature {
	return Feature{Kind: KindUnrecognized}
}

// Parse classifies a decoded payload. A map carrying a numeric "center" array
// of length 2 or 3 is a point; one carrying a non-empty "vertices" array of
// numeric pairs (or triples) is a polygon. "center" is checked first. Anything
// else is unrecognized; Parse never fails.
func Parse(raw any) Feature {
	switch v := raw.(type) {
	case Feature:
		return v
	case *Feature:
		if v == nil {
			return Unrecognized()
		}
		return *v
	case map[string]any:
		return parseMap(v)
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			if s, ok := k.(string); ok {
				m[s] = val
			}
		}
		return parseMap(m)
	case json.RawMessage:
		return ParseJSON(v)
	default:
		return Unrecognized()
	}
}

// ParseJSON classifies a JSON-encoded payload.
func ParseJSON(data []byte) Feature {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Unrecognized()
	}
	return parseMap(m)
}

func parseMap(m map[string]any) Feature {
	if c, ok := m["center"]; ok {
		if center, ok := toFloats(c); ok && (len(center) == 2 || len(center) == 3) {
			return Feature{Kind: KindPoint, Center: center}
		}
	}
	if v, ok := m["vertices"]; ok {
		if vertices, ok := toVertices(v); ok {
			return Feature{Kind: KindPolygon, Vertices: vertices}
		}
	}
	return Unrecognized()
}

func toVertices(v any) ([][]float64, bool) {
	var items []any
	switch vv := v.(type) {
	case [][]float64:
		return verticesOf(vv)
	case [][]float32:
		return verticesOf(vv)
	case [][]int:
		return verticesOf(vv)
	case [][]int8:
		return verticesOf(vv)
	case [][]int16:
		return verticesOf(vv)
	case [][]int32:
		return verticesOf(vv)
	case [][]int64:
		return verticesOf(vv)
	case [][]uint:
		return verticesOf(vv)
	case [][]uint8:
		return verticesOf(vv)
	case [][]uint16:
		return verticesOf(vv)
	case [][]uint32:
		return verticesOf(vv)
	case [][]uint64:
		return verticesOf(vv)
	case [][]any:
		items = make([]any, len(vv))
		for i, p := range vv {
			items[i] = p
		}
	case []any:
		items = vv
	default:
		return nil, false
	}

	if len(items) == 0 {
		return nil, false
	}
	out := make([][]float64, 0, len(items))
	for _, item := range items {
		p, ok := toFloats(item)
		if !ok || !isVertex(p) {
			return nil, false
		}
		out = append(out, p)
	}
	return out, true
}

// number is the set of element types accepted in typed coordinate slices.
type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func verticesOf[T number](vv [][]T) ([][]float64, bool) {
	if len(vv) == 0 {
		return nil, false
	}
	out := make([][]float64, len(vv))
	for i, p := range vv {
		out[i] = floatsOf(p)
		if !isVertex(out[i]) {
			return nil, false
		}
	}
	return out, true
}

func floatsOf[T number](vv []T) []float64 {
	out := make([]float64, len(vv))
	for i, n := range vv {
		out[i] = float64(n)
	}
	return out
}

func isVertex(p []float64) bool {
	return len(p) == 2 || len(p) == 3
}

func toFloats(v any) ([]float64, bool) {
	switch vv := v.(type) {
	case []float64:
		return floatsOf(vv), true
	case []float32:
		return floatsOf(vv), true
	case []int:
		return floatsOf(vv), true
	case []int8:
		return floatsOf(vv), true
	case []int16:
		return floatsOf(vv), true
	case []int32:
		return floatsOf(vv), true
	case []int64:
		return floatsOf(vv), true
	case []uint:
		return floatsOf(vv), true
	case []uint8:
		return floatsOf(vv), true
	case []uint16:
		return floatsOf(vv), true
	case []uint32:
		return floatsOf(vv), true
	case []uint64:
		return floatsOf(vv), true
	case []any:
		out := make([]float64, len(vv))
		for i, item := range vv {
			f, ok := toFloat(item)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	default:
		return nil, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
