package pricing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vyapar_server/core/domain"
	"vyapar_server/core/service/scenario"
	"vyapar_server/pkg/logger"
	"vyapar_server/pkg/metrics"
)

type fakeGenerator struct {
	outputs []string
	err     error
	calls   int
}

func (f *fakeGenerator) Generate(context.Context, string, string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.calls <= len(f.outputs) {
		return f.outputs[f.calls-1], nil
	}
	return "", nil
}

func testCategories() map[string]domain.PricingCategory {
	return map[string]domain.PricingCategory{
		"brass_decoratives": {
			CategoryPath: "Home & Decor > Metalware > Brass Decoratives",
			Products: map[string]domain.ProductStats{
				"flower_vase": {MedianPrice: 450, P25: 300, P75: 650, AvgPrice: 480, SampleSize: 120},
				"diya_stand":  {MedianPrice: 250, P25: 180, P75: 350, AvgPrice: 270, SampleSize: 80},
			},
			DemandTrends: domain.PricingCategoryTrends{
				Monthly: []domain.DemandTrend{
					{Month: "Sep", Index: 1.1},
					{Month: "Oct", Index: 1.6},
				},
				PeakSeason: "Oct-Nov (Diwali)",
				GrowthYoY:  18,
			},
		},
	}
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.LevelFatal, Service: "test"})
}

func emptyScenarios(t *testing.T) *scenario.Cache {
	t.Helper()
	return scenario.Load(filepath.Join(t.TempDir(), "absent.json"))
}

func newService(t *testing.T, gen *fakeGenerator, cache *scenario.Cache) *Service {
	t.Helper()
	if cache == nil {
		cache = emptyScenarios(t)
	}
	return New(testCategories(), cache, gen, metrics.NewLatencyRegistry(100), quietLogger())
}

func TestPricingIntelligenceSnapshot(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{
		`{"product": "Flower Vase", "price_position": "11% above median", "recommendation_en": "Raise prices before Diwali.", "recommendation_hi": "Diwali se pehle daam badhao."}`,
		`{"geo_insight_en": "Expand to Jaipur and Lucknow.", "geo_insight_hi": "Jaipur aur Lucknow mein badho.", "demand_spike": "+40% Oct-Nov (Diwali)", "expansion_regions": ["Jaipur", "Lucknow"], "expansion_growth": "20% QoQ"}`,
	}}
	svc := newService(t, gen, nil)

	price := 500.0
	res, err := svc.PricingIntelligence(context.Background(), "Home & Decor > Metalware > Brass Decoratives", &price, "en")
	if err != nil {
		t.Fatalf("PricingIntelligence: %v", err)
	}

	if len(res.Products) != 2 {
		t.Fatalf("products = %d, want 2", len(res.Products))
	}
	// Sorted by key, so diya_stand first.
	if res.Products[0].Name != "Diya Stand" || res.Products[1].Name != "Flower Vase" {
		t.Errorf("product names = %q, %q", res.Products[0].Name, res.Products[1].Name)
	}
	if res.PeakSeason != "Oct-Nov (Diwali)" {
		t.Errorf("peak season = %q", res.PeakSeason)
	}
	if res.GrowthYoY != 18 {
		t.Errorf("growth = %v", res.GrowthYoY)
	}
	if len(res.DemandTrends) != 2 {
		t.Errorf("trends = %d, want 2", len(res.DemandTrends))
	}

	if res.Insight == nil {
		t.Fatal("insight missing")
	}
	if res.Insight.RecommendationEn != "Raise prices before Diwali." {
		t.Errorf("recommendation = %q", res.Insight.RecommendationEn)
	}
	if res.Insight.YourPrice != 500 {
		t.Errorf("your price = %v, want 500", res.Insight.YourPrice)
	}
	if res.Insight.CategoryMedian != 450 {
		t.Errorf("category median = %v, want lead product median 450", res.Insight.CategoryMedian)
	}

	if res.GeoInsight == nil {
		t.Fatal("geo insight missing")
	}
	if len(res.GeoInsight.ExpansionRegions) != 2 {
		t.Errorf("expansion regions = %v", res.GeoInsight.ExpansionRegions)
	}
}

func TestPricingIntelligenceUnknownCategory(t *testing.T) {
	gen := &fakeGenerator{}
	svc := newService(t, gen, nil)

	res, err := svc.PricingIntelligence(context.Background(), "Electronics > Phones > Smartphones", nil, "en")
	if err != nil {
		t.Fatalf("PricingIntelligence: %v", err)
	}

	if gen.calls != 0 {
		t.Error("unknown category should not invoke the model")
	}
	if len(res.Products) != 0 {
		t.Errorf("products = %v, want empty", res.Products)
	}
	if res.PeakSeason != "Unknown" {
		t.Errorf("peak season = %q, want Unknown", res.PeakSeason)
	}
	if res.Insight != nil || res.GeoInsight != nil {
		t.Error("insights should be nil for unknown category")
	}
}

func TestPricingIntelligencePartialCategoryMatch(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("no insights")}
	svc := newService(t, gen, nil)

	res, err := svc.PricingIntelligence(context.Background(), "Metalware > Brass Decoratives", nil, "en")
	if err != nil {
		t.Fatalf("PricingIntelligence: %v", err)
	}
	if len(res.Products) != 2 {
		t.Errorf("partial match found %d products, want 2", len(res.Products))
	}
}

func TestPricingIntelligenceGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model down")}
	svc := newService(t, gen, nil)

	res, err := svc.PricingIntelligence(context.Background(), "Home & Decor > Metalware > Brass Decoratives", nil, "en")
	if err != nil {
		t.Fatalf("PricingIntelligence: %v", err)
	}
	// Snapshot still served; only the advice degrades.
	if len(res.Products) != 2 {
		t.Errorf("products = %d, want 2", len(res.Products))
	}
	if res.Insight != nil || res.GeoInsight != nil {
		t.Error("insights should be nil when generation fails")
	}
}

func TestPricingIntelligenceScenarioHit(t *testing.T) {
	fixture := `{
  "scenarios": [{
    "input": {"text_hi": "x", "text_en": "y"},
    "expected_classification": {
      "top_3": [{"category": "Home & Decor > Metalware > Brass Decoratives", "code": "HD-MW-BD", "confidence": 0.92}],
      "hsn": "7418",
      "attributes": {}
    },
    "expected_matching": {"top_3": []},
    "expected_pricing": {
      "product": "Flower Vase",
      "your_price": 500,
      "category_median": 450,
      "price_position": "11% above median",
      "recommendation_hi": "canned hi",
      "recommendation_en": "canned en",
      "geo_insight_en": "canned geo",
      "geo_insight_hi": "canned geo hi",
      "demand_spike": "+40% Oct-Nov",
      "expansion_regions": ["Jaipur"],
      "expansion_growth": "20% QoQ"
    }
  }]
}`
	path := filepath.Join(t.TempDir(), "demo_scenarios.json")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}
	cache := scenario.Load(path)

	gen := &fakeGenerator{}
	svc := newService(t, gen, cache)

	res, err := svc.PricingIntelligence(context.Background(), "Home & Decor > Metalware > Brass Decoratives", nil, "en")
	if err != nil {
		t.Fatalf("PricingIntelligence: %v", err)
	}

	if gen.calls != 0 {
		t.Error("cache hit should not invoke the model")
	}
	if res.Insight == nil || res.Insight.RecommendationEn != "canned en" {
		t.Fatalf("insight = %+v", res.Insight)
	}
	if res.GeoInsight == nil || res.GeoInsight.GeoInsightEn != "canned geo" {
		t.Fatalf("geo insight = %+v", res.GeoInsight)
	}
	if res.ProcessingTimeMs < cacheLatencyPadMs {
		t.Errorf("processing time %v below cache pad %v", res.ProcessingTimeMs, cacheLatencyPadMs)
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName("flower_vase"); got != "Flower Vase" {
		t.Errorf("displayName = %q", got)
	}
	if got := displayName("diya"); got != "Diya" {
		t.Errorf("displayName = %q", got)
	}
}
