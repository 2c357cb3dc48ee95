package http

import (
	"vyapar_server/core/port/in"

	"github.com/gofiber/fiber/v2"
)

type MatchHandler struct {
	matchService in.MatchService
}

func NewMatchHandler(matchService in.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

func (h *MatchHandler) Register(app fiber.Router) {
	match := app.Group("/match")
	match.Post("/recommend", h.Recommend)
}

// RecommendRequest is the platform recommendation request body.
type RecommendRequest struct {
	ProductCategory    string   `json:"product_category" validate:"required,min=1,max=200"`
	ProductDescription string   `json:"product_description" validate:"required,min=1,max=2000"`
	Location           string   `json:"location" validate:"required,max=100"`
	Language           string   `json:"language" validate:"omitempty,oneof=en hi"`
	BusinessType       string   `json:"business_type" validate:"omitempty,oneof=B2B B2C"`
	Lat                *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon                *float64 `json:"lon" validate:"omitempty,gte=-180,lte=180"`
}

// Recommend ranks sales-channel platforms for the merchant's product.
func (h *MatchHandler) Recommend(c *fiber.Ctx) error {
	var req RecommendRequest
	if err := parseAndValidate(c, &req); err != nil {
		return AppErrorResponse(c, err)
	}
	if req.Language == "" {
		req.Language = "en"
	}
	if req.BusinessType == "" {
		req.BusinessType = "B2C"
	}

	result, err := h.matchService.RecommendPlatforms(c.Context(), in.MatchRequest{
		ProductCategory:    req.ProductCategory,
		ProductDescription: req.ProductDescription,
		Location:           req.Location,
		Language:           req.Language,
		BusinessType:       req.BusinessType,
		Lat:                req.Lat,
		Lon:                req.Lon,
	})
	if err != nil {
		return InternalErrorResponse(c, err, "platform matching")
	}
	return c.JSON(result)
}
