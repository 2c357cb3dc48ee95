package domain

// MatchFactors is the 5-factor score breakdown for one platform,
// each factor in [0, 1].
type MatchFactors struct {
	Domain         float64 `json:"domain"`
	Geography      float64 `json:"geography"`
	Capacity       float64 `json:"capacity"`
	History        float64 `json:"history"`
	Specialization float64 `json:"specialization"`
}

// Factor weights for the aggregate match score.
// M = 0.35*D + 0.20*G + 0.15*C + 0.20*H + 0.10*S
const (
	WeightDomain         = 0.35
	WeightGeography      = 0.20
	WeightCapacity       = 0.15
	WeightHistory        = 0.20
	WeightSpecialization = 0.10
)

// WeightedScore combines the factor set into the aggregate match score.
func (f MatchFactors) WeightedScore() float64 {
	return WeightDomain*f.Domain +
		WeightGeography*f.Geography +
		WeightCapacity*f.Capacity +
		WeightHistory*f.History +
		WeightSpecialization*f.Specialization
}

// PlatformMatch is one scored, explained platform recommendation.
// Computed fresh per request; never persisted by the core.
type PlatformMatch struct {
	Platform      string       `json:"platform"`
	Score         float64      `json:"score"`
	Factors       MatchFactors `json:"factors"`
	ExplanationHi string       `json:"explanation_hi"`
	ExplanationEn string       `json:"explanation_en"`
}

// MerchantProfile echoes the requester's profile back in the match response.
type MerchantProfile struct {
	Category     string `json:"category"`
	Location     string `json:"location"`
	BusinessType string `json:"business_type"`
}

// MatchResult is the full recommendation response.
type MatchResult struct {
	MerchantProfile  MerchantProfile `json:"msme_profile"`
	TopPlatforms     []PlatformMatch `json:"top_platforms"`
	ProcessingTimeMs float64         `json:"processing_time_ms"`
}
