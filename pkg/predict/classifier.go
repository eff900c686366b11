package predict

import (
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/artifact"
	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/dataprep"
)

// Priority levels produced by the classifier.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// ModelTypeComplaintPriority names this model in prediction log entries.
const ModelTypeComplaintPriority = "complaint_priority"

// PriorityResult is the outcome of a complaint classification.
type PriorityResult struct {
	Priority   string  `json:"priority"`
	Confidence float64 `json:"confidence"`
}

// PriorityClassifier classifies complaint text into High/Medium/Low. It is a
// stateless facade over the registry: a deterministic safety stage first,
// then the trained text model. It never fails on malformed or empty input.
type PriorityClassifier struct {
	reg     *artifact.Registry
	log     PredictionLogger
	metrics *Metrics
}

// NewPriorityClassifier wires the facade. logger and metrics may be nil.
func NewPriorityClassifier(reg *artifact.Registry, logger PredictionLogger, metrics *Metrics) *PriorityClassifier {
	if logger == nil {
		logger = NopPredictionLog{}
	}
	return &PriorityClassifier{reg: reg, log: logger, metrics: metrics}
}

// Classify predicts the priority of a complaint text.
func (c *PriorityClassifier) Classify(text string) PriorityResult {
	return c.ClassifyAs("", text)
}

// ClassifyAs is Classify with a caller identity for the prediction log.
func (c *PriorityClassifier) ClassifyAs(callerID, text string) PriorityResult {
	res := c.classify(text)
	c.metrics.served(ModelTypeComplaintPriority)
	c.log.Append(newEntry(ModelTypeComplaintPriority, callerID,
		map[string]string{"complaint_text": text}, res))
	return res
}

func (c *PriorityClassifier) classify(text string) PriorityResult {
	// the safety rule wins unconditionally over the statistical model
	if _, ok := SafetyOverride(text); ok {
		c.metrics.overridden()
		return PriorityResult{Priority: PriorityHigh, Confidence: OverrideConfidence}
	}

	bundle := c.reg.Current()
	vec := bundle.TextVectorizer.TransformOne(dataprep.NormalizeText(text))
	probas := bundle.TextClassifier.PredictProbaOne(vec)

	best := 0
	for i := 1; i < len(probas); i++ {
		if probas[i] > probas[best] {
			best = i
		}
	}
	label := bundle.PriorityLabels().Decode(bundle.TextClassifier.Classes[best])
	if label == "" {
		label = PriorityMedium
	}
	return PriorityResult{Priority: label, Confidence: probas[best]}
}

// ClassifyAll classifies a batch of complaint texts, logging each one. Used
// by the backfill job that assigns priorities to unclassified complaints.
func (c *PriorityClassifier) ClassifyAll(callerID string, texts []string) []PriorityResult {
	out := make([]PriorityResult, len(texts))
	for i, t := range texts {
		out[i] = c.ClassifyAs(callerID, t)
	}
	return out
}
