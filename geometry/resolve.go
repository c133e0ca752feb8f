/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package geometry

// Position is a resolved object position. Two dimensional sources get z = 0.
type Position [3]float64

// X returns the first coordinate.
func (p Position) X() float64 { return p[0] }

// Y returns the second coordinate.
func (p Position) Y() float64 { return p[1] }

// Z returns the third coordinate.
func (p Position) Z() float64 { return p[2] }

// Slice returns the position as a fresh []float64 of length 3.
func (p Position) Slice() []float64 {
	return []float64{p[0], p[1], p[2]}
}

// Resolve derives a position from a set of features ordered oldest update
// first. Points outrank polygons regardless of order. Among features of the
// winning kind the last one in the list wins. A polygon resolves to the
// vertex at index len/2. The second result is false when no point or polygon
// is present.
func Resolve(features ...Feature) (Position, bool) {
	point, polygon := -1, -1
	for i, f := range features {
		switch f.Kind {
		case KindPoint:
			if len(f.Center) >= 2 {
				point = i
			}
		case KindPolygon:
			if len(f.Vertices) > 0 {
				polygon = i
			}
		}
	}

	switch {
	case point >= 0:
		return pad(features[point].Center), true
	case polygon >= 0:
		vertices := features[polygon].Vertices
		return pad(vertices[len(vertices)/2]), true
	default:
		return Position{}, false
	}
}

func pad(coords []float64) Position {
	var p Position
	copy(p[:], coords)
	return p
}
