package taxonomy

import (
	"fmt"
	"os"
	"strings"

	gojson "github.com/goccy/go-json"

	"vyapar_server/core/domain"
)

// Store is the in-memory index over the category taxonomy. It is built once
// at startup and read-only afterwards, so no locking is needed.
type Store struct {
	entries []domain.TaxonomyEntry
	byCode  map[string]domain.TaxonomyEntry
	byPath  map[string]domain.TaxonomyEntry
	hsnSet  map[string]struct{}
}

// Load reads and indexes the taxonomy document. A missing or malformed file
// yields an empty store: every lookup then fails closed (unknown code) and
// callers route to the unclassified sentinel instead of crashing.
func Load(path string) *Store {
	raw, err := os.ReadFile(path)
	if err != nil {
		return build(domain.TaxonomyDocument{})
	}

	var doc domain.TaxonomyDocument
	if err := gojson.Unmarshal(raw, &doc); err != nil {
		return build(domain.TaxonomyDocument{})
	}
	return build(doc)
}

func build(doc domain.TaxonomyDocument) *Store {
	s := &Store{
		byCode: make(map[string]domain.TaxonomyEntry),
		byPath: make(map[string]domain.TaxonomyEntry),
		hsnSet: make(map[string]struct{}),
	}

	for _, l1 := range doc.Categories {
		for _, l2 := range l1.Subcategories {
			for _, l3 := range l2.Items {
				entry := domain.TaxonomyEntry{
					L1:           l1.L1,
					L2:           l2.L2,
					L3:           l3.L3,
					CategoryCode: l3.L3Code,
					HSNCode:      l3.HSN,
					CategoryPath: l1.L1 + " > " + l2.L2 + " > " + l3.L3,
				}
				// First occurrence wins on duplicate codes.
				if _, dup := s.byCode[entry.CategoryCode]; dup {
					continue
				}
				s.entries = append(s.entries, entry)
				s.byCode[entry.CategoryCode] = entry
				s.byPath[strings.ToLower(entry.CategoryPath)] = entry
				if entry.HSNCode != "" {
					s.hsnSet[entry.HSNCode] = struct{}{}
				}
			}
		}
	}

	return s
}

// Entries returns every taxonomy leaf in document order.
func (s *Store) Entries() []domain.TaxonomyEntry {
	return s.entries
}

// ByCode looks up a leaf by its category code.
func (s *Store) ByCode(code string) (domain.TaxonomyEntry, bool) {
	e, ok := s.byCode[code]
	return e, ok
}

// ByPath looks up a leaf by its "L1 > L2 > L3" path, case-insensitive.
func (s *Store) ByPath(path string) (domain.TaxonomyEntry, bool) {
	e, ok := s.byPath[strings.ToLower(strings.TrimSpace(path))]
	return e, ok
}

// IsValidHSN reports whether the HSN code is assigned to any taxonomy leaf.
func (s *Store) IsValidHSN(hsn string) bool {
	_, ok := s.hsnSet[hsn]
	return ok
}

// HSNFor resolves a category code to its HSN code. Codes outside the
// taxonomy map to the unclassified sentinel.
func (s *Store) HSNFor(code string) string {
	if e, ok := s.byCode[code]; ok && e.HSNCode != "" {
		return e.HSNCode
	}
	return domain.UnclassifiedHSN
}

// PromptCatalog renders the taxonomy as a compact listing for inclusion in a
// classification prompt, one leaf per line.
func (s *Store) PromptCatalog() string {
	var b strings.Builder
	for _, e := range s.entries {
		fmt.Fprintf(&b, "- %s (code: %s, hsn: %s)\n", e.CategoryPath, e.CategoryCode, e.HSNCode)
	}
	return b.String()
}
