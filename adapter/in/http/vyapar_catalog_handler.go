package http

import (
	"vyapar_server/core/port/in"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalogService in.CatalogService
}

func NewCatalogHandler(catalogService in.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) Register(app fiber.Router) {
	catalog := app.Group("/catalog")
	catalog.Post("/classify", h.Classify)
	catalog.Post("/translate", h.Translate)
}

// ClassifyRequest is the classification request body.
type ClassifyRequest struct {
	Text     string `json:"text" validate:"required,min=1,max=2000"`
	Language string `json:"language" validate:"omitempty,oneof=en hi"`
	Location string `json:"location" validate:"omitempty,max=100"`
}

// Classify runs the product description through the classification pipeline.
func (h *CatalogHandler) Classify(c *fiber.Ctx) error {
	var req ClassifyRequest
	if err := parseAndValidate(c, &req); err != nil {
		return AppErrorResponse(c, err)
	}
	if req.Language == "" {
		req.Language = "en"
	}
	if req.Location == "" {
		req.Location = "India"
	}

	result, err := h.catalogService.ClassifyProduct(c.Context(), req.Text, req.Language, req.Location)
	if err != nil {
		return InternalErrorResponse(c, err, "classification")
	}
	return c.JSON(result)
}

// TranslateRequest is the translation request body.
type TranslateRequest struct {
	Text       string `json:"text" validate:"required,min=1,max=5000"`
	SourceLang string `json:"source_lang" validate:"omitempty,len=2"`
	TargetLang string `json:"target_lang" validate:"omitempty,len=2"`
}

// TranslateResponse echoes the original text alongside the translation.
type TranslateResponse struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
}

// Translate translates text between the supported languages. Translation is
// fail-open: on upstream failure the original text comes back unchanged.
func (h *CatalogHandler) Translate(c *fiber.Ctx) error {
	var req TranslateRequest
	if err := parseAndValidate(c, &req); err != nil {
		return AppErrorResponse(c, err)
	}
	if req.SourceLang == "" {
		req.SourceLang = "hi"
	}
	if req.TargetLang == "" {
		req.TargetLang = "en"
	}

	translated, _ := h.catalogService.TranslateText(c.Context(), req.Text, req.SourceLang, req.TargetLang)

	return c.JSON(TranslateResponse{
		OriginalText:   req.Text,
		TranslatedText: translated,
		SourceLang:     req.SourceLang,
		TargetLang:     req.TargetLang,
	})
}
