/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package object

import (
	"encoding/json"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankumardubey/xviz/geometry"
)

func parse(raw map[string]any) geometry.Feature {
	return geometry.Parse(raw)
}

func TestNew(t *testing.T) {
	o := New("11", 0, 1000)

	assert.Equal(t, "11", o.ID())
	assert.Equal(t, 0, o.LastFrameIndex())
	assert.Equal(t, 1000.0, o.StartTime())
	assert.Equal(t, 1000.0, o.EndTime())
	assert.False(t, o.IsValid(), "new object has no geometry")
	assert.Empty(t, o.StreamNames())
	assert.Empty(t, o.GetAttributes())
}

func TestObserve(t *testing.T) {
	o := New("11", 0, 1000)

	o.Observe(1001)
	assert.Equal(t, 1000.0, o.StartTime())
	assert.Equal(t, 1001.0, o.EndTime())

	o.Observe(999)
	assert.Equal(t, 999.0, o.StartTime())
	assert.Equal(t, 1001.0, o.EndTime())

	o.Observe(1000)
	assert.Equal(t, 999.0, o.StartTime(), "timestamps inside the range change nothing")
	assert.Equal(t, 1001.0, o.EndTime())
	assert.Equal(t, 0, o.LastFrameIndex(), "observe does not touch the frame index")
}

func TestObserveOrderIndependent(t *testing.T) {
	timestamps := []float64{5, -3, 12.5, 0, 7, 12.4, -2.9}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		shuffled := append([]float64(nil), timestamps...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		o := New("x", 0, shuffled[0])
		for _, ts := range shuffled[1:] {
			o.Observe(ts)
		}
		require.Equal(t, -3.0, o.StartTime())
		require.Equal(t, 12.5, o.EndTime())
	}
}

func TestTouch(t *testing.T) {
	o := New("11", 0, 1000)
	o.Touch(3, 1003)
	o.Touch(4, 999)

	v := o.View()
	assert.Equal(t, 4, v.LastFrameIndex)
	assert.Equal(t, 999.0, v.StartTime)
	assert.Equal(t, 1003.0, v.EndTime)
}

func TestObserveFrame(t *testing.T) {
	o := New("11", 0, 1000)
	o.ObserveFrame(7)
	assert.Equal(t, 7, o.LastFrameIndex())
	assert.Equal(t, 1000.0, o.StartTime())
}

func TestAddFeatureAndReset(t *testing.T) {
	o := New("11", 0, 1000)

	o.AddFeature("/a", parse(map[string]any{}))
	assert.False(t, o.IsValid(), "empty payload is not a point")

	o.AddFeature("/b", parse(map[string]any{"center": 1}))
	assert.False(t, o.IsValid(), "scalar center is not a point")

	o.AddFeature("/c", parse(map[string]any{"center": []any{0, 1}}))
	pos, ok := o.Position()
	require.True(t, ok)
	assert.Equal(t, geometry.Position{0, 1, 0}, pos, "sets geometry from single point")
	assert.Equal(t, []string{"/a", "/b", "/c"}, o.StreamNames())

	o.Reset()
	assert.False(t, o.IsValid(), "reset clears geometry")
	assert.Empty(t, o.StreamNames())

	o.AddFeature("/a", parse(map[string]any{"vertices": []any{[]any{0, 1}, []any{1, 2}, []any{2, 3}}}))
	pos, _ = o.Position()
	assert.Equal(t, geometry.Position{1, 2, 0}, pos, "sets geometry from polygon")
	assert.True(t, o.IsValid())

	o.AddFeature("/b", parse(map[string]any{"center": []any{0, 1, 2}}))
	pos, _ = o.Position()
	assert.Equal(t, geometry.Position{0, 1, 2}, pos, "point overrides polygon")

	o.AddFeature("/c", parse(map[string]any{"vertices": []any{[]any{0, 1}, []any{1, 2}}}))
	pos, _ = o.Position()
	assert.Equal(t, geometry.Position{0, 1, 2}, pos, "prefers point geometry over polygons")

	o.Reset()
	o.AddFeature("/a", parse(map[string]any{"vertices": []any{[]any{0, 1}}}))
	pos, ok = o.Position()
	assert.True(t, ok, "single vertex polygon is valid")
	assert.Equal(t, geometry.Position{0, 1, 0}, pos, "single vertex is padded like any 2d position")
}

func TestAddFeatureOverwritesStream(t *testing.T) {
	o := New("11", 0, 1000)

	o.AddFeature("/a", geometry.Point(1, 1))
	o.AddFeature("/b", geometry.Polygon([]float64{5, 5}))
	o.AddFeature("/a", geometry.Unrecognized())

	pos, ok := o.Position()
	require.True(t, ok)
	assert.Equal(t, geometry.Position{5, 5, 0}, pos, "stream /a no longer holds a point")
	assert.Equal(t, []string{"/a", "/b"}, o.StreamNames(), "re-adding a stream keeps its first position")

	f, ok := o.Feature("/a")
	require.True(t, ok)
	assert.Equal(t, geometry.KindUnrecognized, f.Kind)
}

func TestMostRecentPointWins(t *testing.T) {
	o := New("11", 0, 1000)

	o.AddFeature("/a", geometry.Point(1, 1))
	o.AddFeature("/b", geometry.Point(2, 2))
	pos, _ := o.Position()
	assert.Equal(t, geometry.Position{2, 2, 0}, pos)

	o.AddFeature("/a", geometry.Point(3, 3))
	pos, _ = o.Position()
	assert.Equal(t, geometry.Position{3, 3, 0}, pos, "updating an older stream makes it the most recent")
}

func TestAttributes(t *testing.T) {
	o := New("11", 0, 1000)

	o.SetAttribute("/a", "a", 5)
	assert.Equal(t, map[string]any{"a": 5}, o.GetAttributes())

	o.SetAttribute("/b", "b", 7)
	assert.Equal(t, map[string]any{"a": 5, "b": 7}, o.GetAttributes())

	o.SetAttribute("/b", "b", 8)
	assert.Equal(t, map[string]any{"a": 5, "b": 8}, o.GetAttributes())

	o.SetAttribute("/c", "a", "late")
	v, _ := o.Attribute("a")
	assert.Equal(t, "late", v, "last write wins across streams")
	src, _ := o.AttributeSource("a")
	assert.Equal(t, "/c", src)

	o.Reset()
	assert.Equal(t, map[string]any{}, o.GetAttributes(), "reset clears attributes")
	_, ok := o.AttributeSource("a")
	assert.False(t, ok)
}

func TestGetAttributesIsACopy(t *testing.T) {
	o := New("11", 0, 1000)
	o.SetAttribute("/a", "a", 1)

	attrs := o.GetAttributes()
	attrs["a"] = 99
	attrs["b"] = 2

	assert.Equal(t, map[string]any{"a": 1}, o.GetAttributes())
}

func TestResetKeepsIdentityAndState(t *testing.T) {
	o := New("11", 3, 1000)
	o.Observe(1005)
	o.SetState("selected", true)
	o.AddFeature("/a", geometry.Point(1, 2))

	o.Reset()

	assert.Equal(t, "11", o.ID())
	assert.Equal(t, 3, o.LastFrameIndex())
	assert.Equal(t, 1000.0, o.StartTime())
	assert.Equal(t, 1005.0, o.EndTime())
	selected, ok := o.State("selected")
	assert.True(t, ok)
	assert.Equal(t, true, selected)
}

func TestView(t *testing.T) {
	o := New("11", 2, 10)
	o.Observe(12)
	o.AddFeature("/a", geometry.Point(1, 2, 3))
	o.SetAttribute("/a", "speed", 4.5)

	v := o.View()
	assert.Equal(t, View{
		ID:             "11",
		LastFrameIndex: 2,
		StartTime:      10,
		EndTime:        12,
		Position:       &geometry.Position{1, 2, 3},
		Valid:          true,
		Streams:        []string{"/a"},
		Attributes:     map[string]any{"speed": 4.5},
	}, v)
	assert.True(t, v.Covers(11))
	assert.False(t, v.Covers(12.5))

	v.Streams[0] = "/mutated"
	assert.Equal(t, []string{"/a"}, o.StreamNames(), "views do not alias object state")
}

func TestViewWithoutPosition(t *testing.T) {
	o := New("11", 0, 10)
	o.AddFeature("/a", geometry.Unrecognized())

	v := o.View()
	assert.False(t, v.Valid)
	assert.Nil(t, v.Position)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"position":null`)
	assert.NotContains(t, string(data), `[0,0,0]`)

	o.AddFeature("/b", geometry.Point(0, 0))
	v = o.View()
	require.NotNil(t, v.Position)
	data, err = json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"position":[0,0,0]`)

	v.Position[0] = 9
	pos, _ := o.Position()
	assert.Equal(t, geometry.Position{0, 0, 0}, pos, "views do not alias the position")
}

func TestConcurrentMutationAndView(t *testing.T) {
	o := New("11", 0, 0)
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			o.Observe(float64(i))
			o.AddFeature("/a", geometry.Point(float64(i), float64(i)))
			o.SetAttribute("/a", "i", i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			v := o.View()
			if v.Valid && assert.NotNil(t, v.Position) {
				assert.Equal(t, v.Position.X(), v.Position.Y())
			}
			assert.LessOrEqual(t, v.StartTime, v.EndTime)
		}
	}()
	wg.Wait()

	assert.Equal(t, 499.0, o.EndTime())
}
