package match

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vyapar_server/core/domain"
	"vyapar_server/core/port/in"
	"vyapar_server/core/service/scenario"
	"vyapar_server/pkg/logger"
	"vyapar_server/pkg/metrics"
)

type fakeEmbedder struct {
	vec []float64
	err error
}

func (f *fakeEmbedder) Embed(context.Context, string) ([]float64, error) {
	return f.vec, f.err
}

type fakeGenerator struct {
	output string
	err    error
	calls  int
}

func (f *fakeGenerator) Generate(context.Context, string, string) (string, error) {
	f.calls++
	return f.output, f.err
}

type fakeAudit struct {
	matches []domain.MatchRecord
}

func (f *fakeAudit) RecordClassification(domain.ClassificationRecord) string { return "r1" }
func (f *fakeAudit) RecordMatch(rec domain.MatchRecord) string {
	f.matches = append(f.matches, rec)
	return "r2"
}
func (f *fakeAudit) RecordOverride(domain.OverrideRecord) string { return "r3" }
func (f *fakeAudit) Dashboard() domain.DashboardMetrics          { return domain.DashboardMetrics{} }

func testPlatforms() []domain.PlatformProfile {
	return []domain.PlatformProfile{
		{
			Name:           "ONDC Network",
			Description:    "Open commerce network",
			Domains:        []string{"Home & Decor", "Handicrafts"},
			Geography:      domain.PlatformGeography{Lat: 28.6, Lon: 77.2},
			Capacity:       domain.PlatformCapacity{LoadRatio: 0.3},
			History:        domain.PlatformHistory{SuccessRate: 0.85},
			Specialization: domain.PlatformSpecialization{B2BRatio: 0.4, B2CRatio: 0.7},
		},
		{
			Name:           "Udaan",
			Description:    "B2B trade platform",
			Domains:        []string{"Electronics"},
			Geography:      domain.PlatformGeography{Lat: 12.97, Lon: 77.59},
			Capacity:       domain.PlatformCapacity{LoadRatio: 0.8},
			History:        domain.PlatformHistory{SuccessRate: 0.6},
			Specialization: domain.PlatformSpecialization{B2BRatio: 0.9, B2CRatio: 0.2},
		},
		{
			Name:           "Meesho",
			Description:    "Social commerce",
			Domains:        []string{"Fashion", "Home & Decor"},
			Geography:      domain.PlatformGeography{Lat: 12.97, Lon: 77.59},
			Capacity:       domain.PlatformCapacity{LoadRatio: 0.5},
			History:        domain.PlatformHistory{SuccessRate: 0.75},
			Specialization: domain.PlatformSpecialization{B2BRatio: 0.1, B2CRatio: 0.9},
		},
		{
			Name:           "IndiaMART",
			Description:    "B2B marketplace",
			Domains:        []string{"Industrial"},
			Geography:      domain.PlatformGeography{Lat: 28.54, Lon: 77.39},
			Capacity:       domain.PlatformCapacity{LoadRatio: 0.6},
			History:        domain.PlatformHistory{SuccessRate: 0.7},
			Specialization: domain.PlatformSpecialization{B2BRatio: 0.95, B2CRatio: 0.1},
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

func newService(t *testing.T, platforms []domain.PlatformProfile, cache *scenario.Cache, emb *fakeEmbedder, gen *fakeGenerator, audit *fakeAudit) *Service {
	t.Helper()
	if cache == nil {
		cache = emptyScenarios(t)
	}
	return New(platforms, cache, emb, gen, audit, metrics.NewLatencyRegistry(100), quietLogger())
}

func TestRecommendPlatformsRanksAndLimits(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("no explanations")}
	audit := &fakeAudit{}
	svc := newService(t, testPlatforms(), nil, &fakeEmbedder{}, gen, audit)

	res, err := svc.RecommendPlatforms(context.Background(), in.MatchRequest{
		ProductCategory:    "Home & Decor > Metalware > Brass Decoratives",
		ProductDescription: "brass decorative items",
		Location:           "Moradabad",
		BusinessType:       "B2C",
	})
	if err != nil {
		t.Fatalf("RecommendPlatforms: %v", err)
	}

	if len(res.TopPlatforms) != 3 {
		t.Fatalf("top platforms = %d, want 3", len(res.TopPlatforms))
	}
	for i := 1; i < len(res.TopPlatforms); i++ {
		if res.TopPlatforms[i].Score > res.TopPlatforms[i-1].Score {
			t.Errorf("platforms not sorted: %v then %v",
				res.TopPlatforms[i-1].Score, res.TopPlatforms[i].Score)
		}
	}

	// Both list Home & Decor; ONDC has it first so it outranks Meesho on domain.
	if res.TopPlatforms[0].Platform != "ONDC Network" {
		t.Errorf("top platform = %q, want ONDC Network", res.TopPlatforms[0].Platform)
	}

	if len(audit.matches) != 1 {
		t.Fatalf("audit matches = %d, want 1", len(audit.matches))
	}
	if audit.matches[0].TopPlatform != res.TopPlatforms[0].Platform {
		t.Errorf("audit top platform = %q", audit.matches[0].TopPlatform)
	}
}

func TestRecommendPlatformsFactorRanges(t *testing.T) {
	svc := newService(t, testPlatforms(), nil, &fakeEmbedder{}, &fakeGenerator{err: errors.New("x")}, &fakeAudit{})

	res, err := svc.RecommendPlatforms(context.Background(), in.MatchRequest{
		ProductCategory: "Electronics > X > Y",
		BusinessType:    "B2B",
	})
	if err != nil {
		t.Fatalf("RecommendPlatforms: %v", err)
	}

	for _, m := range res.TopPlatforms {
		for name, v := range map[string]float64{
			"domain":         m.Factors.Domain,
			"geography":      m.Factors.Geography,
			"capacity":       m.Factors.Capacity,
			"history":        m.Factors.History,
			"specialization": m.Factors.Specialization,
		} {
			if v < 0 || v > 1 {
				t.Errorf("%s factor %s = %v out of [0,1]", m.Platform, name, v)
			}
		}
		if m.Score < 0 || m.Score > 1 {
			t.Errorf("%s score = %v out of [0,1]", m.Platform, m.Score)
		}
	}
}

func TestRecommendPlatformsEmbeddingPath(t *testing.T) {
	platforms := testPlatforms()
	platforms[0].Embedding = []float64{1, 0, 0, 0}
	platforms[1].Embedding = []float64{-1, 0, 0, 0}

	svc := newService(t, platforms, nil,
		&fakeEmbedder{vec: []float64{1, 0, 0, 0}},
		&fakeGenerator{err: errors.New("x")}, &fakeAudit{})

	res, err := svc.RecommendPlatforms(context.Background(), in.MatchRequest{
		ProductCategory:    "Home & Decor > Metalware > Brass Decoratives",
		ProductDescription: "brass decorative items",
		BusinessType:       "B2C",
	})
	if err != nil {
		t.Fatalf("RecommendPlatforms: %v", err)
	}

	var ondc, udaan *domain.PlatformMatch
	for i := range res.TopPlatforms {
		switch res.TopPlatforms[i].Platform {
		case "ONDC Network":
			ondc = &res.TopPlatforms[i]
		case "Udaan":
			udaan = &res.TopPlatforms[i]
		}
	}
	if ondc == nil {
		t.Fatal("ONDC Network missing from results")
	}
	if ondc.Factors.Domain != 0.95 {
		t.Errorf("aligned embedding domain = %v, want 0.95", ondc.Factors.Domain)
	}
	if udaan != nil && udaan.Factors.Domain != 0.3 {
		t.Errorf("opposed embedding domain = %v, want 0.3", udaan.Factors.Domain)
	}
}

func TestRecommendPlatformsExplanations(t *testing.T) {
	gen := &fakeGenerator{output: `{"explanation_en": "Great fit for handicrafts.", "explanation_hi": "Handicrafts ke liye badhiya."}`}
	svc := newService(t, testPlatforms(), nil, &fakeEmbedder{}, gen, &fakeAudit{})

	res, err := svc.RecommendPlatforms(context.Background(), in.MatchRequest{
		ProductCategory: "Home & Decor > X > Y",
		BusinessType:    "B2C",
	})
	if err != nil {
		t.Fatalf("RecommendPlatforms: %v", err)
	}

	if gen.calls != 3 {
		t.Errorf("generator calls = %d, want one per top platform", gen.calls)
	}
	for _, m := range res.TopPlatforms {
		if m.ExplanationEn != "Great fit for handicrafts." {
			t.Errorf("%s explanation_en = %q", m.Platform, m.ExplanationEn)
		}
		if m.ExplanationHi != "Handicrafts ke liye badhiya." {
			t.Errorf("%s explanation_hi = %q", m.Platform, m.ExplanationHi)
		}
	}
}

func TestRecommendPlatformsExplanationFallback(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model down")}
	svc := newService(t, testPlatforms(), nil, &fakeEmbedder{}, gen, &fakeAudit{})

	res, err := svc.RecommendPlatforms(context.Background(), in.MatchRequest{
		ProductCategory: "Home & Decor > X > Y",
		BusinessType:    "B2C",
	})
	if err != nil {
		t.Fatalf("RecommendPlatforms: %v", err)
	}

	top := res.TopPlatforms[0]
	if !strings.Contains(top.ExplanationEn, top.Platform) || !strings.Contains(top.ExplanationEn, "scored") {
		t.Errorf("fallback explanation_en = %q", top.ExplanationEn)
	}
	if !strings.Contains(top.ExplanationHi, "ka score") {
		t.Errorf("fallback explanation_hi = %q", top.ExplanationHi)
	}
}

func TestRecommendPlatformsScenarioHit(t *testing.T) {
	fixture := `{
  "scenarios": [{
    "input": {"text_hi": "x", "text_en": "y"},
    "expected_classification": {
      "top_3": [{"category": "Home & Decor > Metalware > Brass Decoratives", "code": "HD-MW-BD", "confidence": 0.92}],
      "hsn": "7418",
      "attributes": {}
    },
    "expected_matching": {
      "top_3": [
        {"platform": "ONDC Network", "score": 0.89, "factors": {"domain": 0.95, "geography": 0.9, "capacity": 0.85, "history": 0.85, "specialization": 0.9}, "explanation_hi": "canned hi", "explanation_en": "canned en"}
      ]
    }
  }]
}`
	path := filepath.Join(t.TempDir(), "demo_scenarios.json")
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}
	cache := scenario.Load(path)

	gen := &fakeGenerator{}
	svc := newService(t, testPlatforms(), cache, &fakeEmbedder{err: errors.New("must not embed")}, gen, &fakeAudit{})

	res, err := svc.RecommendPlatforms(context.Background(), in.MatchRequest{
		ProductCategory: "Home & Decor > Metalware > Brass Decoratives",
		Location:        "Moradabad",
		BusinessType:    "B2C",
	})
	if err != nil {
		t.Fatalf("RecommendPlatforms: %v", err)
	}

	if gen.calls != 0 {
		t.Error("cache hit should not invoke the model")
	}
	if len(res.TopPlatforms) != 1 || res.TopPlatforms[0].Platform != "ONDC Network" {
		t.Fatalf("top platforms = %+v", res.TopPlatforms)
	}
	if res.TopPlatforms[0].ExplanationEn != "canned en" {
		t.Errorf("explanation = %q", res.TopPlatforms[0].ExplanationEn)
	}
	if res.ProcessingTimeMs < cacheLatencyPadMs {
		t.Errorf("processing time %v below cache pad %v", res.ProcessingTimeMs, cacheLatencyPadMs)
	}
}

func TestLoadPlatforms(t *testing.T) {
	dir := t.TempDir()

	wrapped := filepath.Join(dir, "wrapped.json")
	os.WriteFile(wrapped, []byte(`{"platforms": [{"name": "A", "domains": ["X"]}]}`), 0o644)
	got := LoadPlatforms(wrapped)
	if len(got) != 1 || got[0].Name != "A" {
		t.Errorf("wrapped = %+v", got)
	}
	// Absent numeric fields take neutral seed values.
	if got[0].Geography.Lat != 28.6 || got[0].Capacity.LoadRatio != 0.5 || got[0].History.SuccessRate != 0.5 {
		t.Errorf("defaults not applied: %+v", got[0])
	}

	rawList := filepath.Join(dir, "list.json")
	os.WriteFile(rawList, []byte(`[{"name": "B", "domains": []}]`), 0o644)
	got = LoadPlatforms(rawList)
	if len(got) != 1 || got[0].Name != "B" {
		t.Errorf("list = %+v", got)
	}

	if got := LoadPlatforms(filepath.Join(dir, "missing.json")); len(got) != 0 {
		t.Errorf("missing file = %+v, want empty", got)
	}
	broken := filepath.Join(dir, "broken.json")
	os.WriteFile(broken, []byte(`{not json`), 0o644)
	if got := LoadPlatforms(broken); len(got) != 0 {
		t.Errorf("malformed file = %+v, want empty", got)
	}
}
