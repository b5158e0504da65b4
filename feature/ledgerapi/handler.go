package ledgerapi

import (
	"loot-ledger/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the ledger API.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the ledger routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/ledger", h.HandleLedger)
	app.Get("/softres", h.HandleSoftres)
	app.Get("/runs", h.HandleRuns)
}

// HandleLedger serves the annotated loot ledger document.
func (h *Handler) HandleLedger(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	data, err := h.service.LootDocument()
	if err != nil {
		l.Error("Failed to read loot ledger", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "ledger unavailable"})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// HandleSoftres serves the soft-reserve ledger document.
func (h *Handler) HandleSoftres(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	data, err := h.service.SoftresDocument()
	if err != nil {
		l.Error("Failed to read soft-reserve ledger", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "ledger unavailable"})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// HandleRuns serves the journaled run history.
func (h *Handler) HandleRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.Runs(c.Context())
	if err != nil {
		l.Error("Failed to list runs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "journal unavailable"})
	}

	return c.JSON(runs)
}
