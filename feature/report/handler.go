package report

import (
	"bytes"
	"errors"

	"indy-builder/core/logger"
	"indy-builder/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the cost report.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the report routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/report")
	group.Get("/costs", h.HandleGetCosts)
	group.Post("/refresh", h.HandleRefresh)
	group.Get("/export.csv", h.HandleExportCSV)
}

// HandleGetCosts returns the latest cost results, computing them on first use.
func (h *Handler) HandleGetCosts(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	snap, err := h.service.Costs(c.UserContext())
	if err != nil {
		l.Error("Cost report failed", zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(snap)
}

// HandleRefresh recomputes the costs.
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	snap, err := h.service.Refresh(c.UserContext())
	if err != nil {
		l.Error("Cost refresh failed", zap.Error(err))
		return h.fail(c, err)
	}
	return c.JSON(snap)
}

// HandleExportCSV streams the hub report as a CSV attachment.
func (h *Handler) HandleExportCSV(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var buf bytes.Buffer
	if err := h.service.WriteCSV(c.UserContext(), &buf); err != nil {
		l.Error("CSV export failed", zap.Error(err))
		return h.fail(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Attachment("report.csv")
	return c.Send(buf.Bytes())
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if errors.Is(err, catalog.ErrNotWhitelisted) {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
