package agents

import "math"

// NormalizeConfidence screens a model-reported confidence claim. A missing or
// out-of-range value is untrusted: the agent's fallback-level constant is
// returned with false so the caller can record a note. In-range values pass
// through unchanged.
func NormalizeConfidence(reported *float64, fallback float64) (float64, bool) {
	if reported == nil {
		return fallback, false
	}
	if *reported < 0 || *reported > 1 || math.IsNaN(*reported) {
		return fallback, false
	}
	return *reported, true
}

// Clamp bounds v to [0, 1].
func Clamp(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
