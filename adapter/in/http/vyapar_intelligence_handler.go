package http

import (
	"net/url"
	"strconv"

	"vyapar_server/core/port/in"
	"vyapar_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

type IntelligenceHandler struct {
	pricingService in.PricingService
}

func NewIntelligenceHandler(pricingService in.PricingService) *IntelligenceHandler {
	return &IntelligenceHandler{pricingService: pricingService}
}

func (h *IntelligenceHandler) Register(app fiber.Router) {
	intelligence := app.Group("/intelligence")
	intelligence.Get("/pricing/:category", h.Pricing)
	intelligence.Get("/pricing", h.Pricing)
}

// Pricing serves the market snapshot and advice for a category. The
// category comes from the path segment or, for paths with slashes and
// "greater than" separators, the category query parameter.
func (h *IntelligenceHandler) Pricing(c *fiber.Ctx) error {
	category, err := categoryParam(c)
	if err != nil {
		return AppErrorResponse(c, err)
	}

	var yourPrice *float64
	if raw := c.Query("your_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price <= 0 {
			return ErrorResponse(c, 400, "your_price must be a positive number")
		}
		yourPrice = &price
	}

	language := c.Query("language", "en")
	if language != "en" && language != "hi" {
		return ErrorResponse(c, 400, "language must be en or hi")
	}

	result, svcErr := h.pricingService.PricingIntelligence(c.Context(), category, yourPrice, language)
	if svcErr != nil {
		return InternalErrorResponse(c, svcErr, "pricing intelligence")
	}
	return c.JSON(result)
}

func categoryParam(c *fiber.Ctx) (string, error) {
	if category := c.Query("category"); category != "" {
		return category, nil
	}
	raw := c.Params("category")
	if raw == "" {
		return "", apperr.MissingField("category")
	}
	category, err := url.QueryUnescape(raw)
	if err != nil {
		return "", apperr.InvalidInput("category", "malformed percent-encoding")
	}
	return category, nil
}
