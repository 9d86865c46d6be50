package reconcile

import (
	"time"

	"tracking-auditor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the reconcile routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reconcile")
	group.Get("/", h.HandleReconcileWindow)
	group.Get("/pixel", h.HandlePixelComparison)
}

// parseWindow reads the from/to query parameters, defaulting to the last 24h.
func parseWindow(c *fiber.Ctx) (time.Time, time.Time, error) {
	to := time.Now().UTC()
	from := to.Add(-24 * time.Hour)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid 'from' timestamp, expected RFC3339")
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid 'to' timestamp, expected RFC3339")
		}
		to = parsed
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "'from' must be before 'to'")
	}
	return from, to, nil
}

// HandleReconcileWindow computes the reconciliation report for a window.
// @Summary Reconcile Window
// @Description Cross-references orders, conversion logs and pixel receipts for a time window and reports discrepancies.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param from query string false "Window start (RFC3339, default now-24h)"
// @Param to query string false "Window end (RFC3339, default now)"
// @Success 200 {object} reconcile.Result "Reconciliation Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile [get]
func (h *Handler) HandleReconcileWindow(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	from, to, err := parseWindow(c)
	if err != nil {
		return err
	}

	result, err := h.service.ReconcileWindow(c.Context(), from, to)
	if err != nil {
		l.Error("Reconciliation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// HandlePixelComparison runs the set-based pixel-vs-send comparison.
// @Summary Compare Pixel vs Sends
// @Description Classifies orders in a window into pixel-only, capi-only and both, flagging consent-blocked orders.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param from query string false "Window start (RFC3339, default now-24h)"
// @Param to query string false "Window end (RFC3339, default now)"
// @Success 200 {object} reconcile.PixelComparison "Pixel Comparison"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/pixel [get]
func (h *Handler) HandlePixelComparison(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	from, to, err := parseWindow(c)
	if err != nil {
		return err
	}

	cmp, err := h.service.ComparePixel(c.Context(), from, to)
	if err != nil {
		l.Error("Pixel comparison failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(cmp)
}
