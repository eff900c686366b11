package predict

import (
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/artifact"
)

// ModelTypePaymentDelay names this model in prediction log entries.
const ModelTypePaymentDelay = "payment_delay"

// positiveClass is the tabular target label meaning "will delay".
const positiveClass = 1

// RiskResult is the outcome of a payment delay prediction.
type RiskResult struct {
	WillDelay bool    `json:"will_delay"`
	RiskScore float64 `json:"risk_score"`
}

// RiskPredictor predicts payment delay risk from a tenant feature map. The
// map is reduced to the frozen feature column manifest: absent columns become
// 0, unknown keys are ignored, so any mapping yields a well-formed result.
type RiskPredictor struct {
	reg     *artifact.Registry
	log     PredictionLogger
	metrics *Metrics
}

// NewRiskPredictor wires the facade. logger and metrics may be nil.
func NewRiskPredictor(reg *artifact.Registry, logger PredictionLogger, metrics *Metrics) *RiskPredictor {
	if logger == nil {
		logger = NopPredictionLog{}
	}
	return &RiskPredictor{reg: reg, log: logger, metrics: metrics}
}

// Predict returns the delay flag and positive-class probability.
func (p *RiskPredictor) Predict(featureMap map[string]float64) RiskResult {
	return p.PredictAs("", featureMap)
}

// PredictAs is Predict with a caller identity for the prediction log.
func (p *RiskPredictor) PredictAs(callerID string, featureMap map[string]float64) RiskResult {
	bundle := p.reg.Current()
	row := bundle.Manifest.VectorFromMap(featureMap)
	scaled := bundle.FeatureScaler.TransformRow(row)

	probas := bundle.TabularClassifier.PredictProbaOne(scaled)
	best := 0
	risk := 0.0
	for i, p := range probas {
		if p > probas[best] {
			best = i
		}
		if bundle.TabularClassifier.Classes[i] == positiveClass {
			risk = p
		}
	}
	res := RiskResult{
		WillDelay: bundle.TabularClassifier.Classes[best] == positiveClass,
		RiskScore: risk,
	}

	p.metrics.served(ModelTypePaymentDelay)
	p.log.Append(newEntry(ModelTypePaymentDelay, callerID, featureMap, res))
	return res
}
