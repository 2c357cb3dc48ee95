package catalog

import "math"

// rawCandidate is one classification candidate as parsed from model output,
// before validation and banding.
type rawCandidate struct {
	Category   string
	Code       string
	Confidence float64
}

// defaultConfidences are assigned positionally when the model returns no
// usable scores. Candidates beyond the third get 0.1.
var defaultConfidences = []float64{0.5, 0.3, 0.2}

// normalizeConfidences rescales candidate confidences to sum to 1.0, rounded
// to 3 decimals. When the raw sum is zero or negative the positional
// defaults are assigned instead. The operation is idempotent up to rounding.
func normalizeConfidences(candidates []rawCandidate) []rawCandidate {
	total := 0.0
	for _, c := range candidates {
		total += c.Confidence
	}

	if total <= 0 {
		for i := range candidates {
			if i < len(defaultConfidences) {
				candidates[i].Confidence = defaultConfidences[i]
			} else {
				candidates[i].Confidence = 0.1
			}
		}
		return candidates
	}

	for i := range candidates {
		candidates[i].Confidence = round3(candidates[i].Confidence / total)
	}
	return candidates
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
