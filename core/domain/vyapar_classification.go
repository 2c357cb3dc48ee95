package domain

// ConfidenceBand is the qualitative tier derived from a numeric confidence score.
type ConfidenceBand string

const (
	BandGreen  ConfidenceBand = "GREEN"  // >= 0.85
	BandYellow ConfidenceBand = "YELLOW" // 0.60 - 0.85
	BandRed    ConfidenceBand = "RED"    // < 0.60
)

// BandFor derives the confidence band for a score. Pure function; recompute
// whenever the confidence changes.
func BandFor(confidence float64) ConfidenceBand {
	switch {
	case confidence >= 0.85:
		return BandGreen
	case confidence >= 0.60:
		return BandYellow
	default:
		return BandRed
	}
}

// UnclassifiedHSN is the sentinel HSN code used when the model output carries
// a code outside the loaded taxonomy (or no code at all).
const UnclassifiedHSN = "9999"

// CategoryResult is one ranked classification candidate.
type CategoryResult struct {
	Category   string         `json:"category"`
	Code       string         `json:"code"`
	Confidence float64        `json:"confidence"`
	Band       ConfidenceBand `json:"band"`
}

// ProductAttributes is the sparse attribute set extracted from a product
// description. Every field is optional; absent fields are omitted.
type ProductAttributes struct {
	Material      string   `json:"material,omitempty"`
	ProductTypes  []string `json:"product_types,omitempty"`
	Origin        string   `json:"origin,omitempty"`
	CraftType     string   `json:"craft_type,omitempty"`
	Certification string   `json:"certification,omitempty"`
	Quality       string   `json:"quality,omitempty"`
	Occasion      string   `json:"occasion,omitempty"`
	WorkType      string   `json:"work_type,omitempty"`
}

// ClassifyResult is the full classification response for one product text.
type ClassifyResult struct {
	OriginalText     string            `json:"original_text"`
	TranslatedText   string            `json:"translated_text,omitempty"`
	LanguageDetected string            `json:"language_detected"`
	TopCategories    []CategoryResult  `json:"top_categories"`
	HSNCode          string            `json:"hsn_code"`
	Attributes       ProductAttributes `json:"attributes"`
	Catalog          *CatalogListing   `json:"ondc_catalog,omitempty"`
	ProcessingTimeMs float64           `json:"processing_time_ms"`
}

// CatalogListing is the ONDC-style catalog object synthesized from the top
// candidate, consumed by the commerce-network integration downstream.
type CatalogListing struct {
	Context CatalogContext `json:"context"`
	Message CatalogMessage `json:"message"`
}

type CatalogContext struct {
	Domain string `json:"domain"`
	Action string `json:"action"`
	BppID  string `json:"bpp_id"`
}

type CatalogMessage struct {
	Catalog CatalogItem `json:"catalog"`
}

type CatalogItem struct {
	Descriptor    CatalogDescriptor `json:"descriptor"`
	CategoryID    string            `json:"category_id"`
	FulfillmentID string            `json:"fulfillment_id"`
	LocationID    string            `json:"location_id"`
	Price         CatalogPrice      `json:"price"`
	Tags          []CatalogTag      `json:"tags"`
}

type CatalogDescriptor struct {
	Name      string `json:"name"`
	ShortDesc string `json:"short_desc"`
	LongDesc  string `json:"long_desc"`
}

type CatalogPrice struct {
	Currency    string `json:"currency"`
	Value       string `json:"value"`
	ListedValue string `json:"listed_value"`
}

type CatalogTag struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}
