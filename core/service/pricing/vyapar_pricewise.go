// Package pricing serves per-category market snapshots with generated
// pricing and expansion advice.
package pricing

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"

	"vyapar_server/core/agent/llm"
	"vyapar_server/core/domain"
	"vyapar_server/core/port/out"
	"vyapar_server/core/service/scenario"
	"vyapar_server/pkg/logger"
	"vyapar_server/pkg/metrics"
)

// cacheLatencyPadMs keeps cache-hit processing times comparable with a
// generated insight round.
const cacheLatencyPadMs = 50

// categoryKeyMap routes taxonomy paths to pricing snapshot keys.
var categoryKeyMap = map[string]string{
	"Home & Decor > Metalware > Brass Decoratives":  "brass_decoratives",
	"Fashion > Ethnic Wear > Silk Sarees":           "silk_sarees",
	"Food & Beverages > Spices > Organic Spices":    "organic_spices",
	"Fashion > Ethnic Wear > Handloom Sarees":       "handloom_textiles",
	"Home & Decor > Furnishings > Wooden Furniture": "wooden_furniture",
	"Fashion > Accessories > Leather Goods":         "leather_goods",
}

// Service resolves pricing snapshots and generates advice for them.
type Service struct {
	categories map[string]domain.PricingCategory
	scenarios  *scenario.Cache
	generator  out.TextGenerator
	latency    *metrics.LatencyRegistry
	log        *logger.Logger
}

// LoadPricingData reads the pricing snapshot file. Fail-open: a missing
// snapshot just means every category resolves to an empty result.
func LoadPricingData(path string) map[string]domain.PricingCategory {
	raw, err := os.ReadFile(path)
	if err != nil {
		return map[string]domain.PricingCategory{}
	}
	var doc domain.PricingDocument
	if err := gojson.Unmarshal(raw, &doc); err != nil || doc.Categories == nil {
		return map[string]domain.PricingCategory{}
	}
	return doc.Categories
}

// New wires the pricing intelligence service.
func New(
	categories map[string]domain.PricingCategory,
	scenarios *scenario.Cache,
	generator out.TextGenerator,
	latency *metrics.LatencyRegistry,
	log *logger.Logger,
) *Service {
	return &Service{
		categories: categories,
		scenarios:  scenarios,
		generator:  generator,
		latency:    latency,
		log:        log.WithField("component", "pricing"),
	}
}

// PricingIntelligence returns the market snapshot for a category plus
// pricing and expansion advice. Unknown categories return an empty result,
// not an error.
func (s *Service) PricingIntelligence(ctx context.Context, category string, yourPrice *float64, language string) (*domain.PricingResult, error) {
	start := time.Now()
	defer func() { s.latency.Record("pricing", time.Since(start)) }()

	data, ok := s.findPricingData(category)
	if !ok {
		return &domain.PricingResult{
			Category:         category,
			CategoryPath:     category,
			Products:         []domain.PricingProduct{},
			DemandTrends:     []domain.DemandTrend{},
			PeakSeason:       "Unknown",
			ProcessingTimeMs: round1(msSince(start)),
		}, nil
	}

	result := &domain.PricingResult{
		Category:     category,
		CategoryPath: data.CategoryPath,
		Products:     productViews(data),
		DemandTrends: data.DemandTrends.Monthly,
		PeakSeason:   peakSeason(data),
		GrowthYoY:    data.DemandTrends.GrowthYoY,
	}
	if result.CategoryPath == "" {
		result.CategoryPath = category
	}

	cached := s.cachedInsight(category)
	if cached != nil {
		result.Insight = &domain.PricingInsight{
			Product:          cached.Product,
			YourPrice:        cached.YourPrice,
			CategoryMedian:   cached.CategoryMedian,
			PricePosition:    cached.PricePosition,
			RecommendationHi: cached.RecommendationHi,
			RecommendationEn: cached.RecommendationEn,
		}
		if cached.GeoInsightEn != "" {
			result.GeoInsight = &domain.GeoInsight{
				GeoInsightHi:     cached.GeoInsightHi,
				GeoInsightEn:     cached.GeoInsightEn,
				DemandSpike:      cached.DemandSpike,
				ExpansionRegions: cached.ExpansionRegions,
				ExpansionGrowth:  cached.ExpansionGrowth,
			}
		}
		result.ProcessingTimeMs = round1(msSince(start) + cacheLatencyPadMs)
		return result, nil
	}

	result.Insight = s.generatePricingInsight(ctx, category, data, yourPrice)
	result.GeoInsight = s.generateGeoInsight(ctx, category, data)
	result.ProcessingTimeMs = round1(msSince(start))
	return result, nil
}

// findPricingData resolves a category path to its snapshot: exact key map,
// then partial path match, then the snapshot's own category_path fields.
func (s *Service) findPricingData(category string) (domain.PricingCategory, bool) {
	if key, ok := categoryKeyMap[category]; ok {
		if data, ok := s.categories[key]; ok {
			return data, true
		}
	}

	catLower := strings.ToLower(category)
	for path, key := range categoryKeyMap {
		pathLower := strings.ToLower(path)
		if strings.Contains(catLower, pathLower) || strings.Contains(pathLower, catLower) {
			if data, ok := s.categories[key]; ok {
				return data, true
			}
		}
	}

	for _, data := range s.categories {
		storedLower := strings.ToLower(data.CategoryPath)
		if storedLower == "" {
			continue
		}
		if strings.Contains(catLower, storedLower) || strings.Contains(storedLower, catLower) {
			return data, true
		}
	}

	return domain.PricingCategory{}, false
}

func (s *Service) cachedInsight(category string) *domain.ScenarioPricing {
	sc, ok := s.scenarios.LookupCategory(category)
	if !ok {
		return nil
	}
	return sc.Pricing
}

const pricingSystemPrompt = "You are a pricing advisor for Indian MSMEs. Return only valid JSON."

const pricingPromptTemplate = `You are a pricing advisor for Indian MSME sellers on e-commerce platforms.

Category: %s
Products and their market data:
%s

Peak Season: %s
YoY Growth: %v%%
%s

Generate actionable pricing advice. Return ONLY a JSON object:
{
  "product": "%s",
  "your_price": %v,
  "category_median": %v,
  "price_position": "X%% above/below median",
  "recommendation_en": "2-3 sentences of actionable pricing advice in English",
  "recommendation_hi": "Same advice in Hinglish (Hindi words in Roman script)"
}

Be specific: mention seasonal timing, price adjustments with exact numbers, and platform strategy.`

func (s *Service) generatePricingInsight(ctx context.Context, category string, data domain.PricingCategory, yourPrice *float64) *domain.PricingInsight {
	summary, leadProduct, leadMedian := productsSummary(data)
	if leadProduct == "" {
		return nil
	}

	effectivePrice := leadMedian
	priceContext := "No seller price provided - give general market positioning advice."
	if yourPrice != nil {
		effectivePrice = *yourPrice
		diffPct := math.Round((*yourPrice-leadMedian)/leadMedian*1000) / 10
		direction := "below"
		if diffPct > 0 {
			direction = "above"
		}
		priceContext = fmt.Sprintf("Seller's current price: Rs.%v (%v%% %s median)",
			*yourPrice, math.Abs(diffPct), direction)
	}

	prompt := fmt.Sprintf(pricingPromptTemplate,
		category, summary, peakSeason(data), data.DemandTrends.GrowthYoY,
		priceContext, leadProduct, effectivePrice, leadMedian)

	raw, err := s.generator.Generate(ctx, prompt, pricingSystemPrompt)
	if err != nil {
		s.log.WithContext(ctx).WithError(err).Warn("pricing insight generation failed")
		return nil
	}

	parsed := llm.ExtractJSON(raw)
	en, _ := parsed["recommendation_en"].(string)
	if en == "" {
		return nil
	}

	insight := &domain.PricingInsight{
		Product:          leadProduct,
		YourPrice:        effectivePrice,
		CategoryMedian:   leadMedian,
		RecommendationEn: en,
	}
	if p, ok := parsed["product"].(string); ok && p != "" {
		insight.Product = p
	}
	if pos, ok := parsed["price_position"].(string); ok {
		insight.PricePosition = pos
	}
	if hi, ok := parsed["recommendation_hi"].(string); ok {
		insight.RecommendationHi = hi
	}
	return insight
}

const geoSystemPrompt = "You are a geographic expansion advisor for Indian MSMEs. Return only valid JSON."

const geoPromptTemplate = `You are a geographic expansion advisor for Indian MSME sellers.

Category: %s
Peak Season: %s
YoY Growth: %v%%
Current demand trends show growth in this sector.

Suggest geographic expansion regions within India for this product category.
Consider: tier-2/3 city demand growth, regional preferences, competition density, logistics feasibility.

Return ONLY a JSON object:
{
  "geo_insight_en": "2-3 sentences about which regions to expand to and why, in English",
  "geo_insight_hi": "Same insight in Hinglish (Hindi words in Roman script)",
  "demand_spike": "e.g. +40%% Oct-Nov (Diwali)",
  "expansion_regions": ["Region1", "Region2", "Region3"],
  "expansion_growth": "estimated QoQ growth like 20%% QoQ"
}`

func (s *Service) generateGeoInsight(ctx context.Context, category string, data domain.PricingCategory) *domain.GeoInsight {
	prompt := fmt.Sprintf(geoPromptTemplate, category, peakSeason(data), data.DemandTrends.GrowthYoY)

	raw, err := s.generator.Generate(ctx, prompt, geoSystemPrompt)
	if err != nil {
		s.log.WithContext(ctx).WithError(err).Warn("geo insight generation failed")
		return nil
	}

	parsed := llm.ExtractJSON(raw)
	en, _ := parsed["geo_insight_en"].(string)
	if en == "" {
		return nil
	}

	insight := &domain.GeoInsight{GeoInsightEn: en}
	if hi, ok := parsed["geo_insight_hi"].(string); ok {
		insight.GeoInsightHi = hi
	}
	if spike, ok := parsed["demand_spike"].(string); ok {
		insight.DemandSpike = spike
	}
	if growth, ok := parsed["expansion_growth"].(string); ok {
		insight.ExpansionGrowth = growth
	}
	if regions, ok := parsed["expansion_regions"].([]any); ok {
		for _, r := range regions {
			if name, ok := r.(string); ok && name != "" {
				insight.ExpansionRegions = append(insight.ExpansionRegions, name)
			}
		}
	}
	return insight
}

// productViews renders the snapshot's products sorted by name for stable
// API output.
func productViews(data domain.PricingCategory) []domain.PricingProduct {
	names := make([]string, 0, len(data.Products))
	for name := range data.Products {
		names = append(names, name)
	}
	sort.Strings(names)

	views := make([]domain.PricingProduct, 0, len(names))
	for _, name := range names {
		stats := data.Products[name]
		views = append(views, domain.PricingProduct{
			Name:        displayName(name),
			MedianPrice: stats.MedianPrice,
			P25:         stats.P25,
			P75:         stats.P75,
			AvgPrice:    stats.AvgPrice,
			SampleSize:  stats.SampleSize,
		})
	}
	return views
}

// productsSummary lists products for the prompt and picks the lead product
// by largest sample size.
func productsSummary(data domain.PricingCategory) (string, string, float64) {
	names := make([]string, 0, len(data.Products))
	for name := range data.Products {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []string
	leadProduct := ""
	leadMedian := 0.0
	maxSamples := 0
	for _, name := range names {
		stats := data.Products[name]
		display := displayName(name)
		lines = append(lines, fmt.Sprintf("- %s: median Rs.%v, range Rs.%v-%v, %d samples",
			display, stats.MedianPrice, stats.P25, stats.P75, stats.SampleSize))
		if stats.SampleSize > maxSamples {
			maxSamples = stats.SampleSize
			leadProduct = display
			leadMedian = stats.MedianPrice
		}
	}
	return strings.Join(lines, "\n"), leadProduct, leadMedian
}

// displayName turns a snake_case product key into a title-case label.
func displayName(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func peakSeason(data domain.PricingCategory) string {
	if data.DemandTrends.PeakSeason == "" {
		return "Unknown"
	}
	return data.DemandTrends.PeakSeason
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
