package predict

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts served predictions. Optional; facades accept a nil Metrics.
type Metrics struct {
	Predictions     *prometheus.CounterVec
	SafetyOverrides prometheus.Counter
}

// NewMetrics registers the prediction counters with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "predictions_served_total",
			Help: "Predictions served, by model type.",
		}, []string{"model_type"}),
		SafetyOverrides: factory.NewCounter(prometheus.CounterOpts{
			Name: "priority_safety_overrides_total",
			Help: "Complaint classifications short-circuited by the safety keyword rule.",
		}),
	}
}

func (m *Metrics) served(modelType string) {
	if m != nil {
		m.Predictions.WithLabelValues(modelType).Inc()
	}
}

func (m *Metrics) overridden() {
	if m != nil {
		m.SafetyOverrides.Inc()
	}
}
