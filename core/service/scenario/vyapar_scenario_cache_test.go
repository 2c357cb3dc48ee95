package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleScenarios = `{
  "scenarios": [
    {
      "input": {
        "text_hi": "main peetal ke saman banata hoon",
        "text_en": "I make brass decorative items"
      },
      "expected_classification": {
        "top_3": [
          {"category": "Home & Decor > Metalware > Brass Decoratives", "code": "HD-MW-BD", "confidence": 0.92},
          {"category": "Home & Decor > Candles & Holders > Candle Holders", "code": "HD-CH-CH", "confidence": 0.05},
          {"category": "Art & Craft > Metal Art > Metal Art", "code": "AC-MA-MA", "confidence": 0.03}
        ],
        "hsn": "7418",
        "attributes": {"material": "Brass (Peetal)", "origin": "Moradabad"}
      },
      "expected_matching": {
        "top_3": [
          {"platform": "ONDC Network", "score": 0.89, "factors": {"domain": 0.95, "geography": 0.9, "capacity": 0.8, "history": 0.85, "specialization": 0.9}, "explanation_hi": "", "explanation_en": ""}
        ]
      }
    }
  ]
}`

func writeScenarios(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo_scenarios.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLookupByBothLanguages(t *testing.T) {
	c := Load(writeScenarios(t, sampleScenarios))
	if c.Size() != 2 {
		t.Fatalf("size = %d, want 2", c.Size())
	}

	for _, text := range []string{
		"main peetal ke saman banata hoon",
		"I make brass decorative items",
	} {
		s, ok := c.Lookup(text)
		if !ok {
			t.Fatalf("Lookup(%q) missed", text)
		}
		if s.Classification.HSN != "7418" {
			t.Errorf("hsn = %q, want 7418", s.Classification.HSN)
		}
		if len(s.Classification.Top3) != 3 {
			t.Errorf("top_3 len = %d, want 3", len(s.Classification.Top3))
		}
	}
}

func TestLookupExactMatchOnly(t *testing.T) {
	c := Load(writeScenarios(t, sampleScenarios))
	if _, ok := c.Lookup("I make brass decorative"); ok {
		t.Error("partial text should miss the cache")
	}
	if _, ok := c.Lookup(""); ok {
		t.Error("empty text should miss the cache")
	}
}

func TestLookupCategory(t *testing.T) {
	c := Load(writeScenarios(t, sampleScenarios))
	s, ok := c.LookupCategory("Home & Decor > Metalware > Brass Decoratives")
	if !ok {
		t.Fatal("LookupCategory missed")
	}
	if len(s.Matching.Top3) != 1 || s.Matching.Top3[0].Platform != "ONDC Network" {
		t.Errorf("matching = %+v", s.Matching.Top3)
	}
	if _, ok := c.LookupCategory("Unknown > Path"); ok {
		t.Error("unknown category should miss")
	}
}

func TestLookupCategoryFirstScenarioWins(t *testing.T) {
	shared := `{
  "scenarios": [
    {
      "input": {"text_en": "first seller"},
      "expected_classification": {
        "top_3": [{"category": "Fashion > Ethnic Wear > Silk Sarees", "code": "FA-EW-SS", "confidence": 0.95}],
        "hsn": "5007"
      },
      "expected_matching": {"top_3": [{"platform": "Meesho", "score": 0.84}]}
    },
    {
      "input": {"text_en": "second seller"},
      "expected_classification": {
        "top_3": [{"category": "Fashion > Ethnic Wear > Silk Sarees", "code": "FA-EW-SS", "confidence": 0.9}],
        "hsn": "5007"
      },
      "expected_matching": {"top_3": [{"platform": "Amazon India", "score": 0.8}]}
    }
  ]
}`
	c := Load(writeScenarios(t, shared))

	// Document order decides the category view, not map iteration order.
	for i := 0; i < 20; i++ {
		s, ok := c.LookupCategory("Fashion > Ethnic Wear > Silk Sarees")
		if !ok {
			t.Fatal("LookupCategory missed")
		}
		if s.Matching.Top3[0].Platform != "Meesho" {
			t.Fatalf("winner = %q, want Meesho (first in document)", s.Matching.Top3[0].Platform)
		}
	}
}

func TestLoadFailOpen(t *testing.T) {
	c := Load(filepath.Join(t.TempDir(), "absent.json"))
	if c == nil {
		t.Fatal("Load(missing) returned nil")
	}
	if c.Size() != 0 {
		t.Errorf("size = %d, want 0", c.Size())
	}

	c = Load(writeScenarios(t, "{broken"))
	if c.Size() != 0 {
		t.Errorf("malformed fixture should yield empty cache, size = %d", c.Size())
	}
}
