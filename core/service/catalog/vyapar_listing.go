package catalog

import "vyapar_server/core/domain"

// buildCatalogListing synthesizes an ONDC-style catalog object from the top
// classification candidate. The price block is zeroed; merchants fill it in
// during onboarding.
func buildCatalogListing(top *domain.CategoryResult, hsn string, attrs domain.ProductAttributes, text string) *domain.CatalogListing {
	name := "Product"
	if len(attrs.ProductTypes) > 0 {
		name = attrs.ProductTypes[0]
	}

	categoryID := "GN-UC"
	if top != nil {
		categoryID = top.Code
	}

	origin := attrs.Origin
	if origin == "" {
		origin = "India"
	}

	shortDesc := text
	if runes := []rune(shortDesc); len(runes) > 100 {
		shortDesc = string(runes[:100])
	}

	return &domain.CatalogListing{
		Context: domain.CatalogContext{
			Domain: "nic2004:52110",
			Action: "on_search",
			BppID:  "vyaparsetu.ai",
		},
		Message: domain.CatalogMessage{
			Catalog: domain.CatalogItem{
				Descriptor: domain.CatalogDescriptor{
					Name:      name,
					ShortDesc: shortDesc,
					LongDesc:  text,
				},
				CategoryID:    categoryID,
				FulfillmentID: "F1",
				LocationID:    "L1",
				Price: domain.CatalogPrice{
					Currency:    "INR",
					Value:       "0",
					ListedValue: "0",
				},
				Tags: []domain.CatalogTag{
					{Code: "origin", Value: origin},
					{Code: "material", Value: attrs.Material},
					{Code: "hsn", Value: hsn},
				},
			},
		},
	}
}
