package http

import (
	"fmt"

	"vyapar_server/core/domain"
	"vyapar_server/core/port/out"
	"vyapar_server/pkg/metrics"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	audit   out.AuditRecorder
	latency *metrics.LatencyRegistry
}

func NewAdminHandler(audit out.AuditRecorder, latency *metrics.LatencyRegistry) *AdminHandler {
	return &AdminHandler{audit: audit, latency: latency}
}

func (h *AdminHandler) Register(app fiber.Router) {
	admin := app.Group("/admin")
	admin.Get("/dashboard", h.Dashboard)
	admin.Post("/override", h.Override)
	admin.Get("/latency", h.Latency)
}

// Dashboard aggregates the classification audit log.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(h.audit.Dashboard())
}

// OverrideRequest is the manual correction request body.
type OverrideRequest struct {
	RecordID string `json:"record_id" validate:"required"`
	Field    string `json:"field" validate:"required,oneof=category platform hsn"`
	OldValue string `json:"old_value" validate:"required"`
	NewValue string `json:"new_value" validate:"required"`
	Reason   string `json:"reason" validate:"required,max=500"`
	AdminID  string `json:"admin_id" validate:"omitempty,max=100"`
}

// OverrideResponse confirms the appended override.
type OverrideResponse struct {
	Success  bool   `json:"success"`
	RecordID string `json:"record_id"`
	AuditID  string `json:"audit_id"`
	Message  string `json:"message"`
}

// Override appends a manual correction to the audit trail. The original
// record stays untouched; the correction is a new record referencing it.
func (h *AdminHandler) Override(c *fiber.Ctx) error {
	var req OverrideRequest
	if err := parseAndValidate(c, &req); err != nil {
		return AppErrorResponse(c, err)
	}
	if req.AdminID == "" {
		req.AdminID = "admin"
	}

	auditID := h.audit.RecordOverride(domain.OverrideRecord{
		RecordID: req.RecordID,
		Field:    req.Field,
		OldValue: req.OldValue,
		NewValue: req.NewValue,
		Reason:   req.Reason,
		AdminID:  req.AdminID,
	})

	return c.JSON(OverrideResponse{
		Success:  true,
		RecordID: req.RecordID,
		AuditID:  auditID,
		Message: fmt.Sprintf("Override applied. %s changed from '%s' to '%s'.",
			req.Field, req.OldValue, req.NewValue),
	})
}

// Latency reports per-stage latency percentiles.
func (h *AdminHandler) Latency(c *fiber.Ctx) error {
	all := h.latency.AllStats()
	stages := make(map[string]map[string]any, len(all))
	for name, stats := range all {
		stages[name] = stats.ToMap()
	}
	return c.JSON(fiber.Map{"stages": stages})
}
