package export

import (
	"quote-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for quote exports.
type Handler struct {
	service   *Service
	assembler Assembler
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, assembler Assembler) *Handler {
	return &Handler{service: service, assembler: assembler}
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/quotes")
	group.Get("/:identifier/export", h.HandleExport)
	group.Get("/:identifier/slots", h.HandleSlots)
}

// HandleExport runs the reconciliation engine and returns the assembled document.
// @Summary Export a quote
// @Description Reconcile a quote's configuration and return the canonical export data.
// @Tags export
// @Accept json
// @Produce json
// @Param identifier path string true "Quote ID or reference"
// @Success 200 {object} models.ExportData "Export data"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /quotes/{identifier}/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	identifier := c.Params("identifier")
	l := logger.WithRayID(h.service.logger, c)

	data, err := h.service.Export(c.Context(), identifier)
	if err != nil {
		l.Error("Export failed", zap.String("quote", identifier), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	body, err := h.assembler.Assemble(c.Context(), data)
	if err != nil {
		l.Error("Assembly failed", zap.String("quote", identifier), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, h.assembler.ContentType())
	return c.Send(body)
}

// HandleSlots returns only the canonical slot rows, for operator debugging.
// @Summary Inspect a quote's canonical slot rows
// @Description Run slot reconciliation only and return the per-chassis display rows.
// @Tags export
// @Accept json
// @Produce json
// @Param identifier path string true "Quote ID or reference"
// @Success 200 {object} models.ExportData "Slot rows only"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /quotes/{identifier}/slots [get]
func (h *Handler) HandleSlots(c *fiber.Ctx) error {
	identifier := c.Params("identifier")
	l := logger.WithRayID(h.service.logger, c)

	data, err := h.service.Export(c.Context(), identifier)
	if err != nil {
		l.Error("Slot inspection failed", zap.String("quote", identifier), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	type chassisRows struct {
		ItemID string `json:"item_id"`
		Name   string `json:"name"`
		Rows   any    `json:"rows"`
	}
	out := make([]chassisRows, 0, len(data.Chassis))
	for _, section := range data.Chassis {
		out = append(out, chassisRows{ItemID: section.ItemID, Name: section.Name, Rows: section.Rows})
	}
	return c.JSON(fiber.Map{
		"quote_id": data.QuoteID,
		"chassis":  out,
		"summary":  data.Summary,
	})
}
