// Package training is the offline batch side of the prediction engine: it
// labels the historical corpus, fits the text and tabular models and
// persists them as one atomic artifact bundle.
package training

import (
	"strings"

	"github.com/HemaHegde/Intelligent-Apartment-Management-System/pkg/predict"
)

// Keyword sets for deterministic priority labeling. highKeywords always
// contains the full runtime safety-override set, so the trained model can
// never learn to contradict the override rule.
var highKeywords = buildHighKeywords()

func buildHighKeywords() []string {
	extra := []string{
		"broken", "emergency", "urgent", "danger", "hazard", "safety",
		"electrical fault",
	}
	seen := map[string]struct{}{}
	var out []string
	for _, kw := range append(predict.SafetyKeywords(), extra...) {
		if _, ok := seen[kw]; !ok {
			seen[kw] = struct{}{}
			out = append(out, kw)
		}
	}
	return out
}

var electricityUrgent = []string{
	"sparking", "smoking", "shock", "panel", "tripped",
	"short circuit", "short-circuit", "circuit breaker",
	"power outage", "no power", "burning smell", "wire exposed",
}

var waterSevere = []string{"ceiling", "flooding", "overflow", "seepage"}

var mediumKeywords = []string{
	"leaking", "leak", "dripping", "clogged", "not working", "broken",
	"flickering", "buzzing", "jammed", "stuck",
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// AssignPriority labels a historical complaint from its raw text and
// category. The rule is deterministic; it produces the targets the text
// classifier is trained on.
func AssignPriority(text, category string) string {
	lower := strings.ToLower(text)

	if containsAny(lower, highKeywords) {
		return predict.PriorityHigh
	}

	switch category {
	case "Electricity":
		if containsAny(lower, electricityUrgent) {
			return predict.PriorityHigh
		}
		return predict.PriorityMedium
	case "Plumbing", "Water":
		if containsAny(lower, waterSevere) {
			return predict.PriorityHigh
		}
		if containsAny(lower, mediumKeywords) {
			return predict.PriorityMedium
		}
		return predict.PriorityLow
	case "Housekeeping":
		return predict.PriorityLow
	}
	return predict.PriorityMedium
}
