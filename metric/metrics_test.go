/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("")
	require.NoError(t, m.Register(reg))

	m.SetObjects(3)
	m.ObjectCreated()
	m.ObjectCreated()
	m.ObjectCleared()
	m.Reset()
	m.FeatureIngested("point")
	m.FeatureIngested("point")
	m.FeatureIngested("unrecognized")
	m.AttributeSet()
	m.Dropped("unknown_object")
	m.FrameApplied()
	m.Exported("ok")

	assert.Equal(t, 3.0, testutil.ToFloat64(m.ObjectsTracked))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ObjectsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ObjectsCleared))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RegistryResets))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.FeaturesIngested.WithLabelValues("point")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeaturesIngested.WithLabelValues("unrecognized")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AttributesSet))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpdatesDropped.WithLabelValues("unknown_object")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FramesApplied))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RecordsExported.WithLabelValues("ok")))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
	for _, f := range families {
		assert.Contains(t, f.GetName(), DefaultNamespace+"_")
	}
}

func TestDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, NewMetrics("dup").Register(reg))
	assert.Error(t, NewMetrics("dup").Register(reg))
}

func TestUnregister(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("gone")
	require.NoError(t, m.Register(reg))
	m.Unregister(reg)
	assert.NoError(t, NewMetrics("gone").Register(reg))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SetObjects(1)
		m.ObjectCreated()
		m.ObjectCleared()
		m.Reset()
		m.FeatureIngested("point")
		m.AttributeSet()
		m.Dropped("x")
		m.FrameApplied()
		m.Exported("ok")
	})
}
