package consistency

import (
	"time"

	"tracking-auditor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for consistency checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the consistency routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/consistency")
	group.Get("/:orderId", h.HandleCheckOrder)
	group.Post("/run", h.HandleBulkRun)
}

// HandleCheckOrder runs a deep three-source check for one order.
// @Summary Check Order
// @Description Cross-checks one order against its conversion attempts and pixel receipt and reports a consistency verdict.
// @Tags consistency
// @Accept json
// @Produce json
// @Param orderId path string true "Order id (canonicalized to its numeric form)"
// @Success 200 {object} consistency.CheckResult "Check Result"
// @Failure 404 {object} map[string]string "Order Not Found"
// @Router /consistency/{orderId} [get]
func (h *Handler) HandleCheckOrder(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	orderID := c.Params("orderId")
	result := h.service.CheckOrder(c.Context(), orderID)
	if result == nil {
		l.Info("Order yielded no consistency result", zap.String("order_id", orderID))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no authoritative record found for order",
		})
	}

	return c.JSON(result)
}

type bulkRunRequest struct {
	Limit      int     `json:"limit"`
	SampleRate float64 `json:"sample_rate"`
	WindowDays int     `json:"window_days"`
}

// HandleBulkRun runs a bulk consistency check over recent orders.
// @Summary Run Bulk Check
// @Description Deep-checks a bounded, optionally sampled set of recent orders and persists the run summary.
// @Tags consistency
// @Accept json
// @Produce json
// @Param request body consistency.bulkRunRequest false "Run options"
// @Success 200 {object} consistency.BulkReport "Bulk Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /consistency/run [post]
func (h *Handler) HandleBulkRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req bulkRunRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}
	if req.SampleRate < 0 || req.SampleRate > 1 {
		return fiber.NewError(fiber.StatusBadRequest, "sample_rate must be within [0, 1]")
	}

	opts := BulkOptions{
		Limit:      req.Limit,
		SampleRate: req.SampleRate,
		Window:     time.Duration(req.WindowDays) * 24 * time.Hour,
	}

	report, err := h.service.RunBulk(c.Context(), opts)
	if err != nil {
		l.Error("Bulk consistency run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
