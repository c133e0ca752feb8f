/*
Package geometry derives a canonical position for a tracked object from the
geometric features its streams report.

Features are classified once, when decoded payloads enter the store:

	geometry.Parse(map[string]any{"center": []any{0.0, 1.0}})          // KindPoint
	geometry.Parse(map[string]any{"vertices": []any{[]any{0, 1}}})     // KindPolygon
	geometry.Parse(map[string]any{"center": 1})                        // KindUnrecognized

Resolve then applies the priority rules: a point on any stream beats every
polygon, the most recent feature of the winning kind is used, and a polygon
contributes its structural midpoint vertex rather than a centroid. All
resolved positions are three dimensional.
*/
package geometry
