package bootstrap

import (
	"path/filepath"

	"vyapar_server/adapter/in/http"
	"vyapar_server/adapter/out/audit"
	"vyapar_server/adapter/out/generation"
	"vyapar_server/adapter/out/nlp"
	"vyapar_server/config"
	"vyapar_server/core/agent/llm"
	"vyapar_server/core/port/in"
	"vyapar_server/core/port/out"
	"vyapar_server/core/service/catalog"
	"vyapar_server/core/service/match"
	"vyapar_server/core/service/pricing"
	"vyapar_server/core/service/scenario"
	"vyapar_server/core/service/taxonomy"
	"vyapar_server/pkg/logger"
	"vyapar_server/pkg/metrics"
)

// Dependencies holds every wired component of the decision pipeline.
type Dependencies struct {
	CatalogService in.CatalogService
	MatchService   in.MatchService
	PricingService in.PricingService

	Audit   out.AuditRecorder
	Latency *metrics.LatencyRegistry
	Probes  map[string]http.HealthProbe
}

// NewDependencies loads the static documents and wires services to
// adapters. Every document load is fail-open: a missing or malformed file
// leaves the owning store empty and the pipelines answer via fallbacks.
func NewDependencies(cfg *config.Config) *Dependencies {
	log := logger.Default()

	taxonomyStore := taxonomy.Load(filepath.Join(cfg.DataDir, "ondc_categories.json"))
	if len(taxonomyStore.Entries()) == 0 {
		log.Warn("Taxonomy is empty; every classification will resolve to the fallback")
	} else {
		log.Info("Loaded taxonomy with %d leaves", len(taxonomyStore.Entries()))
	}

	platforms := match.LoadPlatforms(filepath.Join(cfg.DataDir, "platforms_seed.json"))
	if len(platforms) == 0 {
		log.Warn("Platform seed is empty; recommendations will come back empty")
	} else {
		log.Info("Loaded %d platforms", len(platforms))
	}

	scenarios := scenario.Load(filepath.Join(cfg.DataDir, "demo_scenarios.json"))
	log.Info("Loaded %d cached scenario inputs", scenarios.Size())

	pricingData := pricing.LoadPricingData(filepath.Join(cfg.DataDir, "pricing_data.json"))
	log.Info("Loaded %d pricing categories", len(pricingData))

	llmClient := llm.NewClient(llm.ClientConfig{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.LLMModel,
		EmbedModel:  cfg.EmbedModel,
		EmbedDim:    cfg.EmbeddingDim,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
	})

	genAdapter := generation.New(llmClient, generation.Config{
		GenerateTimeout: cfg.LLMTimeout,
		EmbedTimeout:    cfg.EmbedTimeout,
	}, log)
	nlpAdapter := nlp.New(llmClient, cfg.NLPTimeout, log)

	auditRecorder := audit.NewMemoryRecorder(nil)
	latency := metrics.NewLatencyRegistry(1000)

	catalogService := catalog.New(
		taxonomyStore, scenarios,
		genAdapter, nlpAdapter, nlpAdapter,
		auditRecorder, latency, log,
	)
	matchService := match.New(
		platforms, scenarios,
		genAdapter, genAdapter,
		auditRecorder, latency, log,
	)
	pricingService := pricing.New(pricingData, scenarios, genAdapter, latency, log)

	return &Dependencies{
		CatalogService: catalogService,
		MatchService:   matchService,
		PricingService: pricingService,
		Audit:          auditRecorder,
		Latency:        latency,
		Probes: map[string]http.HealthProbe{
			"generation": genAdapter,
			"nlp":        nlpAdapter,
		},
	}
}
