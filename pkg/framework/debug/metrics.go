package debug

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/justyntemme/paramorder/pkg/framework/process"
)

// Metrics counts processing cycles and tracks the lifecycle state of one
// plugin instance. Counters are resolved up front so recording a cycle is a
// single atomic add.
type Metrics struct {
	Cycles          *prometheus.CounterVec
	RejectedConfigs prometheus.Counter
	LifecycleState  prometheus.Gauge

	byStatus [process.StatusError + 1]prometheus.Counter
}

// NewMetrics creates the instance metrics, labelled with the plugin ID, and
// registers them on reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer, pluginID string) (*Metrics, error) {
	labels := prometheus.Labels{"plugin": pluginID}
	m := &Metrics{
		Cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "paramorder_process_cycles_total",
				Help:        "Processing cycles partitioned by returned status.",
				ConstLabels: labels,
			},
			[]string{"status"},
		),
		RejectedConfigs: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "paramorder_bus_configs_rejected_total",
			Help:        "Bus configuration proposals the plugin refused.",
			ConstLabels: labels,
		}),
		LifecycleState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "paramorder_lifecycle_state",
			Help:        "Current lifecycle state (0 uninitialized, 1 configured, 2 processing, 3 deactivated).",
			ConstLabels: labels,
		}),
	}
	for s := process.StatusNormal; s <= process.StatusError; s++ {
		m.byStatus[s] = m.Cycles.WithLabelValues(s.String())
	}

	if reg != nil {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("failed to register plugin metrics: %w", err)
		}
	}
	return m, nil
}

// ObserveCycle records the status of one processing cycle. Safe on a nil
// receiver and on the audio thread.
func (m *Metrics) ObserveCycle(s process.Status) {
	if m == nil || s < process.StatusNormal || s > process.StatusError {
		return
	}
	m.byStatus[s].Inc()
}

// ObserveRejected records a refused bus configuration
func (m *Metrics) ObserveRejected() {
	if m == nil {
		return
	}
	m.RejectedConfigs.Inc()
}

// SetState records the lifecycle state
func (m *Metrics) SetState(state int) {
	if m == nil {
		return
	}
	m.LifecycleState.Set(float64(state))
}

// Describe implements prometheus.Collector
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.Cycles.Describe(ch)
	ch <- m.RejectedConfigs.Desc()
	ch <- m.LifecycleState.Desc()
}

// Collect implements prometheus.Collector
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.Cycles.Collect(ch)
	ch <- m.RejectedConfigs
	ch <- m.LifecycleState
}
