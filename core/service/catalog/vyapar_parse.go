package catalog

import (
	"vyapar_server/core/agent/llm"
	"vyapar_server/core/domain"
)

// parsedClassification is the validated view over raw model output.
type parsedClassification struct {
	candidates []rawCandidate
	hsn        string
	attributes domain.ProductAttributes
}

// parseClassification extracts the classification object from raw model
// text. Returns nil when no top_3 list can be recovered; missing hsn or
// attributes degrade to their zero values instead.
func parseClassification(raw string) *parsedClassification {
	obj := llm.ExtractJSON(raw)

	top3, ok := obj["top_3"].([]any)
	if !ok || len(top3) == 0 {
		return nil
	}

	p := &parsedClassification{hsn: domain.UnclassifiedHSN}

	for _, item := range top3 {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		c := rawCandidate{
			Category: asString(entry["category"]),
			Code:     asString(entry["code"]),
		}
		if conf, ok := entry["confidence"].(float64); ok {
			c.Confidence = conf
		}
		if c.Category == "" {
			continue
		}
		p.candidates = append(p.candidates, c)
	}
	if len(p.candidates) == 0 {
		return nil
	}

	if hsn := asString(obj["hsn_code"]); hsn != "" {
		p.hsn = hsn
	}

	if attrs, ok := obj["attributes"].(map[string]any); ok {
		p.attributes = parseAttributes(attrs)
	}

	return p
}

func parseAttributes(m map[string]any) domain.ProductAttributes {
	attrs := domain.ProductAttributes{
		Material:      asString(m["material"]),
		Origin:        asString(m["origin"]),
		CraftType:     asString(m["craft_type"]),
		Certification: asString(m["certification"]),
		Quality:       asString(m["quality"]),
		Occasion:      asString(m["occasion"]),
		WorkType:      asString(m["work_type"]),
	}
	if types, ok := m["product_types"].([]any); ok {
		for _, t := range types {
			if s := asString(t); s != "" {
				attrs.ProductTypes = append(attrs.ProductTypes, s)
			}
		}
	}
	return attrs
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
