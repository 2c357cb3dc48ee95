package catalog

import (
	"fmt"
	"strings"
)

// classifySystemPrompt pins the model to the classification role. The schema
// is enforced downstream regardless; this just raises the hit rate.
const classifySystemPrompt = "You are a product classification expert for Indian MSME products. Return only valid JSON matching the exact schema shown."

const classifyPromptTemplate = `You are an expert product classifier for Indian MSME products using the ONDC (Open Network for Digital Commerce) taxonomy.

## Available ONDC Categories (pick ONLY from this list):
%s

## Instructions:
- Classify the product into the TOP 3 most likely categories from the list above
- Use EXACT category paths, codes, and HSN codes from the taxonomy
- Confidence scores for all 3 must sum to ~1.0
- Extract product attributes from the description

## Few-shot Examples:

### Example 1:
Input: "I make brass decorative items - flower vase, diya stand, candle holder" (Moradabad)
Output:
{
  "top_3": [
    {"category": "Home & Decor > Metalware > Brass Decoratives", "code": "HD-MW-BD", "confidence": 0.92},
    {"category": "Home & Decor > Candles & Holders > Candle Holders", "code": "HD-CH-CH", "confidence": 0.05},
    {"category": "Art & Craft > Metal Art > Metal Art", "code": "AC-MA-MA", "confidence": 0.03}
  ],
  "hsn_code": "7418",
  "attributes": {
    "material": "Brass (Peetal)",
    "product_types": ["Flower Vase", "Diya Stand", "Candle Holder"],
    "origin": "Moradabad",
    "craft_type": "Handcrafted Metalware"
  }
}

### Example 2:
Input: "I make Banarasi silk sarees with zari work, for weddings" (Varanasi)
Output:
{
  "top_3": [
    {"category": "Fashion > Ethnic Wear > Silk Sarees", "code": "FA-EW-SS", "confidence": 0.96},
    {"category": "Fashion > Ethnic Wear > Handloom Sarees", "code": "FA-EW-HS", "confidence": 0.025},
    {"category": "Art & Craft > Textile Art > Textile Art", "code": "AC-TA-TA", "confidence": 0.015}
  ],
  "hsn_code": "5007",
  "attributes": {
    "material": "Silk (Banarasi)",
    "product_types": ["Banarasi Silk Saree"],
    "origin": "Varanasi",
    "craft_type": "Handloom Weaving",
    "work_type": "Zari",
    "occasion": "Wedding"
  }
}

### Example 3:
Input: "We produce organic black pepper and cardamom, export quality, FSSAI certified" (Kerala)
Output:
{
  "top_3": [
    {"category": "Food & Beverages > Spices > Organic Spices", "code": "FB-SP-OS", "confidence": 0.95},
    {"category": "Food & Beverages > Spices > Whole Spices", "code": "FB-SP-WS", "confidence": 0.035},
    {"category": "Health & Beauty > Organic Products > Organic Products", "code": "HB-OP-OP", "confidence": 0.015}
  ],
  "hsn_code": "0904",
  "attributes": {
    "material": "Organic Spices",
    "product_types": ["Black Pepper", "Cardamom"],
    "origin": "Kerala",
    "certification": "FSSAI",
    "quality": "Export Grade"
  }
}

## Now classify this product:
Product description: %s
Location: %s

Return ONLY the JSON object (no markdown fences, no explanation).`

// buildClassifyPrompt renders the classification prompt with the current
// taxonomy and the product under classification.
func buildClassifyPrompt(taxonomyCatalog, text, location string) string {
	return fmt.Sprintf(classifyPromptTemplate, strings.TrimRight(taxonomyCatalog, "\n"), text, location)
}
