package domain

// ScenarioDocument is the on-disk shape of the precomputed scenario fixture.
type ScenarioDocument struct {
	Scenarios []Scenario `json:"scenarios"`
}

// Scenario maps one known input to its gold-standard classification, matching
// and pricing outputs. Loaded once; read-only.
type Scenario struct {
	Input          ScenarioInput          `json:"input"`
	Classification ScenarioClassification `json:"expected_classification"`
	Matching       ScenarioMatching       `json:"expected_matching"`
	Pricing        *ScenarioPricing       `json:"expected_pricing,omitempty"`
}

type ScenarioInput struct {
	TextHi string `json:"text_hi"`
	TextEn string `json:"text_en"`
}

type ScenarioClassification struct {
	Top3       []ScenarioCategory `json:"top_3"`
	HSN        string             `json:"hsn"`
	Attributes ProductAttributes  `json:"attributes"`
}

type ScenarioCategory struct {
	Category   string  `json:"category"`
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
}

type ScenarioMatching struct {
	Top3 []PlatformMatch `json:"top_3"`
}

// ScenarioPricing is the precomputed pricing insight for a scenario category.
type ScenarioPricing struct {
	Product          string   `json:"product"`
	YourPrice        float64  `json:"your_price"`
	CategoryMedian   float64  `json:"category_median"`
	PricePosition    string   `json:"price_position"`
	RecommendationHi string   `json:"recommendation_hi"`
	RecommendationEn string   `json:"recommendation_en"`
	GeoInsightHi     string   `json:"geo_insight_hi,omitempty"`
	GeoInsightEn     string   `json:"geo_insight_en,omitempty"`
	DemandSpike      string   `json:"demand_spike,omitempty"`
	ExpansionRegions []string `json:"expansion_regions,omitempty"`
	ExpansionGrowth  string   `json:"expansion_growth,omitempty"`
}
