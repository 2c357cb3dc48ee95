package scenario

import (
	"os"

	gojson "github.com/goccy/go-json"

	"vyapar_server/core/domain"
)

// Cache holds the precomputed demo scenarios under two keyed views over the
// same backing document: by exact input text (both Hindi and English) and by
// top classification category path. It is an immutable startup fixture, so
// lookups need no locking. A missing fixture file is not an error; the
// cache is simply empty and every request takes the live path.
type Cache struct {
	byText     map[string]domain.Scenario
	byCategory map[string]domain.Scenario
}

// Load reads the scenario fixture. Unlike the taxonomy, this loader is
// fail-open: the pipelines work without a cache, just slower.
func Load(path string) *Cache {
	c := &Cache{
		byText:     make(map[string]domain.Scenario),
		byCategory: make(map[string]domain.Scenario),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return c
	}

	var doc domain.ScenarioDocument
	if err := gojson.Unmarshal(raw, &doc); err != nil {
		return c
	}

	for _, s := range doc.Scenarios {
		if s.Input.TextHi != "" {
			c.byText[s.Input.TextHi] = s
		}
		if s.Input.TextEn != "" {
			c.byText[s.Input.TextEn] = s
		}
		if len(s.Classification.Top3) > 0 {
			cat := s.Classification.Top3[0].Category
			// First scenario wins when two share a top category.
			if _, taken := c.byCategory[cat]; !taken && cat != "" {
				c.byCategory[cat] = s
			}
		}
	}

	return c
}

// Lookup returns the scenario whose input text exactly matches. Exact match
// keeps the fast path honest; near-misses go through the live pipeline.
func (c *Cache) Lookup(text string) (domain.Scenario, bool) {
	s, ok := c.byText[text]
	return s, ok
}

// LookupCategory returns the scenario whose top classification category
// equals the given path, for callers keyed by category rather than input
// text.
func (c *Cache) LookupCategory(categoryPath string) (domain.Scenario, bool) {
	s, ok := c.byCategory[categoryPath]
	return s, ok
}

// Size reports the number of distinct cached input texts.
func (c *Cache) Size() int {
	return len(c.byText)
}
