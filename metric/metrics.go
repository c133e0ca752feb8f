/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package metric

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultNamespace prefixes every metric unless a namespace is given.
const DefaultNamespace = "xviz"

// Metrics holds the store's Prometheus collectors. A nil *Metrics is valid
// and records nothing, so components can take one optionally.
type Metrics struct {
	ObjectsTracked   prometheus.Gauge
	ObjectsCreated   prometheus.Counter
	ObjectsCleared   prometheus.Counter
	RegistryResets   prometheus.Counter
	FeaturesIngested *prometheus.CounterVec
	AttributesSet    prometheus.Counter
	UpdatesDropped   *prometheus.CounterVec
	FramesApplied    prometheus.Counter
	RecordsExported  *prometheus.CounterVec
}

// NewMetrics creates unregistered collectors under namespace.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Metrics{
		ObjectsTracked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "objects",
			Help:      "Number of objects currently held by the registry",
		}),
		ObjectsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "objects_created_total",
			Help:      "Total number of objects created on first sight",
		}),
		ObjectsCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "objects_cleared_total",
			Help:      "Total number of objects removed by Clear",
		}),
		RegistryResets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "resets_total",
			Help:      "Total number of ResetAll calls",
		}),
		FeaturesIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "features_total",
			Help:      "Total number of geometry features ingested, by feature kind",
		}, []string{"kind"}),
		AttributesSet: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "attributes_total",
			Help:      "Total number of attribute updates applied",
		}),
		UpdatesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "dropped_total",
			Help:      "Total number of updates dropped, by reason",
		}, []string{"reason"}),
		FramesApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "frames_total",
			Help:      "Total number of frames applied",
		}),
		RecordsExported: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "records_total",
			Help:      "Total number of snapshot records written, by outcome",
		}, []string{"status"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ObjectsTracked,
		m.ObjectsCreated,
		m.ObjectsCleared,
		m.RegistryResets,
		m.FeaturesIngested,
		m.AttributesSet,
		m.UpdatesDropped,
		m.FramesApplied,
		m.RecordsExported,
	}
}

// Register registers every collector with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("register metric: %w", err)
		}
	}
	return nil
}

// Unregister removes every collector from reg.
func (m *Metrics) Unregister(reg prometheus.Registerer) {
	for _, c := range m.collectors() {
		reg.Unregister(c)
	}
}

// SetObjects sets the tracked object gauge.
func (m *Metrics) SetObjects(n int) {
	if m == nil {
		return
	}
	m.ObjectsTracked.Set(float64(n))
}

// ObjectCreated counts a newly registered object.
func (m *Metrics) ObjectCreated() {
	if m == nil {
		return
	}
	m.ObjectsCreated.Inc()
}

// ObjectCleared counts an object removed by Clear.
func (m *Metrics) ObjectCleared() {
	if m == nil {
		return
	}
	m.ObjectsCleared.Inc()
}

// Reset counts a ResetAll.
func (m *Metrics) Reset() {
	if m == nil {
		return
	}
	m.RegistryResets.Inc()
}

// FeatureIngested counts a feature of the given kind ("point", "polygon", "unrecognized").
func (m *Metrics) FeatureIngested(kind string) {
	if m == nil {
		return
	}
	m.FeaturesIngested.WithLabelValues(kind).Inc()
}

// AttributeSet counts an applied attribute update.
func (m *Metrics) AttributeSet() {
	if m == nil {
		return
	}
	m.AttributesSet.Inc()
}

// Dropped counts an update that could not be applied.
func (m *Metrics) Dropped(reason string) {
	if m == nil {
		return
	}
	m.UpdatesDropped.WithLabelValues(reason).Inc()
}

// FrameApplied counts a frame batch.
func (m *Metrics) FrameApplied() {
	if m == nil {
		return
	}
	m.FramesApplied.Inc()
}

// Exported counts a snapshot write with status "ok", "stale" or "error".
func (m *Metrics) Exported(status string) {
	if m == nil {
		return
	}
	m.RecordsExported.WithLabelValues(status).Inc()
}
