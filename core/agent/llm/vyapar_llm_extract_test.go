package llm

import "testing"

func TestExtractJSONDirect(t *testing.T) {
	obj := ExtractJSON(`{"hsn_code": "7418", "confidence": 0.92}`)
	if obj["hsn_code"] != "7418" {
		t.Errorf("hsn_code = %v, want 7418", obj["hsn_code"])
	}
	if obj["confidence"] != 0.92 {
		t.Errorf("confidence = %v, want 0.92", obj["confidence"])
	}
}

func TestExtractJSONFencedBlock(t *testing.T) {
	raw := "Here is the classification:\n```json\n{\"l1\": \"Handicrafts\"}\n```\nLet me know if you need anything else."
	obj := ExtractJSON(raw)
	if obj["l1"] != "Handicrafts" {
		t.Errorf("l1 = %v, want Handicrafts", obj["l1"])
	}
}

func TestExtractJSONUntaggedFence(t *testing.T) {
	raw := "```\n{\"l1\": \"Textiles\"}\n```"
	obj := ExtractJSON(raw)
	if obj["l1"] != "Textiles" {
		t.Errorf("l1 = %v, want Textiles", obj["l1"])
	}
}

func TestExtractJSONBraceSpan(t *testing.T) {
	raw := `Sure! Based on the description the result is {"l1": "Food Products", "hsn_code": "0904"} which matches spices.`
	obj := ExtractJSON(raw)
	if obj["l1"] != "Food Products" {
		t.Errorf("l1 = %v, want Food Products", obj["l1"])
	}
	if obj["hsn_code"] != "0904" {
		t.Errorf("hsn_code = %v, want 0904", obj["hsn_code"])
	}
}

func TestExtractJSONNestedBraces(t *testing.T) {
	raw := `Result: {"outer": {"inner": 1}} done.`
	obj := ExtractJSON(raw)
	inner, ok := obj["outer"].(map[string]any)
	if !ok {
		t.Fatalf("outer = %T, want map", obj["outer"])
	}
	if inner["inner"] != float64(1) {
		t.Errorf("inner = %v, want 1", inner["inner"])
	}
}

func TestExtractJSONNoObject(t *testing.T) {
	for _, raw := range []string{
		"I could not classify this product.",
		"",
		"{broken json",
		"[1, 2, 3]",
	} {
		obj := ExtractJSON(raw)
		if obj == nil {
			t.Fatalf("ExtractJSON(%q) returned nil, want empty map", raw)
		}
		if len(obj) != 0 {
			t.Errorf("ExtractJSON(%q) = %v, want empty map", raw, obj)
		}
	}
}
