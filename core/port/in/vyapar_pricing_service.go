package in

import (
	"context"

	"vyapar_server/core/domain"
)

// PricingService serves the per-category pricing and demand intelligence.
type PricingService interface {
	PricingIntelligence(ctx context.Context, category string, yourPrice *float64, language string) (*domain.PricingResult, error)
}
