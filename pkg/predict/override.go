// Package predict is the serving side of the prediction engine: a
// deterministic safety stage that can short-circuit, followed by the
// statistical models held in the artifact registry.
package predict

import "strings"

// OverrideConfidence is the fixed confidence reported for safety overrides.
const OverrideConfidence = 0.95

// safetyKeywords are the complaint phrases that must always classify as High
// priority, no matter what the trained model says. Matching is
// substring-based and case-insensitive.
var safetyKeywords = []string{
	"spark", "sparking", "fire", "smoking", "smoke", "burning",
	"shock", "electric shock", "electrocuted", "gas leak", "flooding",
	"short circuit", "short-circuit", "exposed wire", "wire exposed",
	"circuit breaker", "power outage", "no power", "burning smell",
}

// SafetyKeywords returns a copy of the override keyword set. The offline
// labeling rules build on this same set so training data can never teach the
// model to contradict the runtime override.
func SafetyKeywords() []string {
	out := make([]string, len(safetyKeywords))
	copy(out, safetyKeywords)
	return out
}

// SafetyOverride reports whether the raw (non-normalized) text contains any
// safety-critical keyword, and which one matched first. Which keyword
// matched does not change the outcome; it is returned for logging only.
func SafetyOverride(text string) (keyword string, ok bool) {
	lower := strings.ToLower(text)
	for _, kw := range safetyKeywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
