package qkernel

import (
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

/*
Metrics counts what a session did. Each session gets its own registry, so
nothing is shared between users of the same process.
*/
type Metrics struct {
	Registry *prometheus.Registry

	operations  *prometheus.CounterVec
	errors      *prometheus.CounterVec
	iterations  *prometheus.CounterVec
	experiments *prometheus.CounterVec
	finalError  *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qkernel",
			Name:      "operations_total",
			Help:      "Kernel operations invoked, by operation.",
		}, []string{"op"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qkernel",
			Name:      "errors_total",
			Help:      "Kernel operations that failed, by error kind.",
		}, []string{"kind"}),
		iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qkernel",
			Name:      "variational_iterations_total",
			Help:      "Variational iterations executed, by algorithm.",
		}, []string{"algorithm"}),
		experiments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qkernel",
			Name:      "experiments_total",
			Help:      "Experiment records appended, by module.",
		}, []string{"module"}),
		finalError: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "qkernel",
			Name:      "final_error",
			Help:      "Distance of a variational run's final value from the exact optimum.",
			Buckets:   []float64{1e-6, 1e-4, 1.6e-3, 1e-2, 1e-1, 1},
		}, []string{"algorithm"}),
	}

	m.Registry.MustRegister(m.operations, m.errors, m.iterations, m.experiments, m.finalError)
	return m
}

func (m *Metrics) observeOperation(op string, err error) {
	m.operations.WithLabelValues(op).Inc()
	if err != nil {
		m.errors.WithLabelValues(kindLabel(err)).Inc()
	}
}

func (m *Metrics) observeRun(algorithm string, iterations int, finalError float64) {
	m.iterations.WithLabelValues(algorithm).Add(float64(iterations))
	m.finalError.WithLabelValues(algorithm).Observe(finalError)
}

func (m *Metrics) observeExperiment(module ModuleTag) {
	m.experiments.WithLabelValues(string(module)).Inc()
}

/*
Export flattens the registry into name{label="value"} → sample, for a
dashboard sidebar. Histograms export their count and sum.
*/
func (m *Metrics) Export() (map[string]float64, error) {
	families, err := m.Registry.Gather()
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			name, labels := family.GetName(), labelSuffix(metric.GetLabel())
			switch {
			case metric.GetCounter() != nil:
				out[name+labels] = metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				out[name+"_count"+labels] = float64(metric.GetHistogram().GetSampleCount())
				out[name+"_sum"+labels] = metric.GetHistogram().GetSampleSum()
			}
		}
	}
	return out, nil
}

func labelSuffix(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	suffix := "{"
	for i, l := range labels {
		if i > 0 {
			suffix += ","
		}
		suffix += l.GetName() + "=\"" + l.GetValue() + "\""
	}
	return suffix + "}"
}
