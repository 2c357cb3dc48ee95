package in

import (
	"context"

	"vyapar_server/core/domain"
)

// MatchRequest carries the requester's product and profile into the
// platform matching engine.
type MatchRequest struct {
	ProductCategory    string
	ProductDescription string
	Location           string
	Language           string
	BusinessType       string // "B2B" or "B2C"
	Lat                *float64
	Lon                *float64
}

// MatchService ranks candidate sales-channel platforms for a product.
type MatchService interface {
	RecommendPlatforms(ctx context.Context, req MatchRequest) (*domain.MatchResult, error)
}
