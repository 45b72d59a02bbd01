package report

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsSnapshot is the computed crosswalk state exported as gauges.
type MetricsSnapshot struct {
	TypeWeights        map[string]float64
	ModelTypeWeights   map[string]map[string]float64
	SignalStatus       map[string]map[string]string
	CategoryIndicators map[string]int
}

// WriteMetricsTextfile writes the snapshot in the Prometheus text exposition
// format, suitable for the node_exporter textfile collector.
func WriteMetricsTextfile(path string, s MetricsSnapshot) error {
	typeWeight := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "helm_nist",
		Name:      "type_weight_percent",
		Help:      "Global share of matched weight per NIST function type.",
	}, []string{"type"})
	modelTypeWeight := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "helm_nist",
		Name:      "model_type_weight_percent",
		Help:      "Per-model share of total tier weight per NIST function type.",
	}, []string{"model", "type"})
	signalPassed := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "helm_nist",
		Name:      "signal_passed",
		Help:      "1 when the model produced usable results for the HELM category, else 0.",
	}, []string{"model", "category"})
	indicators := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "helm_nist",
		Name:      "category_indicators",
		Help:      "Number of NIST indicators matched per HELM category.",
	}, []string{"category"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(typeWeight, modelTypeWeight, signalPassed, indicators)

	for t, v := range s.TypeWeights {
		typeWeight.WithLabelValues(t).Set(v)
	}
	for model, byType := range s.ModelTypeWeights {
		for t, v := range byType {
			modelTypeWeight.WithLabelValues(model, t).Set(v)
		}
	}
	for model, byCategory := range s.SignalStatus {
		for category, status := range byCategory {
			v := 0.0
			if status == "passed" {
				v = 1
			}
			signalPassed.WithLabelValues(model, category).Set(v)
		}
	}
	for category, n := range s.CategoryIndicators {
		indicators.WithLabelValues(category).Set(float64(n))
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}
