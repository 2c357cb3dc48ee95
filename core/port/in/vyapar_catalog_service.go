package in

import (
	"context"

	"vyapar_server/core/domain"
)

// CatalogService classifies merchant product descriptions into the
// controlled taxonomy. Classification never fails visibly: every failure
// mode inside the pipeline resolves to a schema-valid fallback result.
type CatalogService interface {
	ClassifyProduct(ctx context.Context, text, language, location string) (*domain.ClassifyResult, error)
	TranslateText(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
