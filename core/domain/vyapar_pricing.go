package domain

// PricingDocument is the on-disk shape of the category pricing snapshot.
type PricingDocument struct {
	Categories map[string]PricingCategory `json:"categories"`
}

// PricingCategory holds the market snapshot for one pricing key.
type PricingCategory struct {
	CategoryPath string                  `json:"category_path"`
	Products     map[string]ProductStats `json:"products"`
	DemandTrends PricingCategoryTrends   `json:"demand_trends"`
}

type ProductStats struct {
	MedianPrice float64 `json:"median_price"`
	P25         float64 `json:"p25"`
	P75         float64 `json:"p75"`
	AvgPrice    float64 `json:"avg_price"`
	SampleSize  int     `json:"sample_size"`
}

type PricingCategoryTrends struct {
	Monthly    []DemandTrend `json:"monthly"`
	PeakSeason string        `json:"peak_season"`
	GrowthYoY  float64       `json:"growth_yoy"`
}

// DemandTrend is one month of the demand index series.
type DemandTrend struct {
	Month string  `json:"month"`
	Index float64 `json:"index"`
}

// PricingProduct is the API-facing view of one product's market stats.
type PricingProduct struct {
	Name        string  `json:"name"`
	MedianPrice float64 `json:"median_price"`
	P25         float64 `json:"p25"`
	P75         float64 `json:"p75"`
	AvgPrice    float64 `json:"avg_price"`
	SampleSize  int     `json:"sample_size"`
}

// PricingInsight is the AI-generated (or precomputed) pricing advice.
type PricingInsight struct {
	Product          string  `json:"product"`
	YourPrice        float64 `json:"your_price,omitempty"`
	CategoryMedian   float64 `json:"category_median"`
	PricePosition    string  `json:"price_position"`
	RecommendationHi string  `json:"recommendation_hi"`
	RecommendationEn string  `json:"recommendation_en"`
}

// GeoInsight is the AI-generated geographic expansion advice.
type GeoInsight struct {
	GeoInsightHi     string   `json:"geo_insight_hi"`
	GeoInsightEn     string   `json:"geo_insight_en"`
	DemandSpike      string   `json:"demand_spike"`
	ExpansionRegions []string `json:"expansion_regions"`
	ExpansionGrowth  string   `json:"expansion_growth"`
}

// PricingResult is the full pricing-intelligence response.
type PricingResult struct {
	Category         string           `json:"category"`
	CategoryPath     string           `json:"category_path"`
	Products         []PricingProduct `json:"products"`
	DemandTrends     []DemandTrend    `json:"demand_trends"`
	PeakSeason       string           `json:"peak_season"`
	GrowthYoY        float64          `json:"growth_yoy"`
	Insight          *PricingInsight  `json:"insight,omitempty"`
	GeoInsight       *GeoInsight      `json:"geo_insight,omitempty"`
	ProcessingTimeMs float64          `json:"processing_time_ms"`
}
