package syncjob

import (
	"errors"

	"item-sync/core/logger"
	"item-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync passes and the mapping.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sync", h.HandleSync)
	app.Post("/sync/plan", h.HandlePlan)
	app.Get("/mappings", h.HandleListMappings)
	app.Get("/mappings/:side/:id", h.HandleGetMapping)
	app.Get("/strategies", h.HandleStrategies)
}

// HandleSync runs one pass.
// @Summary Run Sync Pass
// @Description Reconciles the reported change sets of both sides and persists the updated mapping. Per-item failures are listed in the report.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body Request true "Change sets of side A and side B"
// @Success 200 {object} reconcile.Report "Report"
// @Failure 400 {object} map[string]string "Invalid change set"
// @Failure 409 {object} map[string]interface{} "Pass aborted"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	return h.run(c, false)
}

// HandlePlan computes a pass without writing.
// @Summary Plan Sync Pass
// @Description Returns the actions a pass would perform, without touching either side or the mapping.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body Request true "Change sets of side A and side B"
// @Success 200 {object} reconcile.Report "Dry-run report"
// @Failure 400 {object} map[string]string "Invalid change set"
// @Router /sync/plan [post]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	return h.run(c, true)
}

func (h *Handler) run(c *fiber.Ctx, dryRun bool) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}
	req.DryRun = req.DryRun || dryRun

	report, err := h.service.Run(c.UserContext(), req, l)
	switch {
	case err == nil:
		return c.JSON(report)
	case errors.Is(err, reconcile.ErrInvalidChangeSet):
		l.Warn("Rejected sync request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case report != nil:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":  err.Error(),
			"report": report,
		})
	default:
		l.Error("Sync pass failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

// HandleListMappings returns every stored pair.
// @Summary List Mappings
// @Description Lists the identifier mapping, sorted by side-A id.
// @Tags mappings
// @Produce json
// @Success 200 {object} map[string]interface{} "Pairs"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /mappings [get]
func (h *Handler) HandleListMappings(c *fiber.Ctx) error {
	pairs, err := h.service.Mappings(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Mapping load failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"count": len(pairs),
		"pairs": pairs,
	})
}

// HandleGetMapping returns the counterpart of one ID.
// @Summary Get Mapping
// @Description Returns the counterpart of an item id.
// @Tags mappings
// @Produce json
// @Param side path string true "Side of the id (a or b)"
// @Param id path string true "Item id"
// @Success 200 {object} map[string]string "Pair"
// @Failure 400 {object} map[string]string "Invalid side"
// @Failure 404 {object} map[string]string "Not mapped"
// @Router /mappings/{side}/{id} [get]
func (h *Handler) HandleGetMapping(c *fiber.Ctx) error {
	side, err := reconcile.ParseSide(c.Params("side"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	id := c.Params("id")

	counterpart, ok, err := h.service.Lookup(c.UserContext(), side, id)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Mapping lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "id is not mapped",
		})
	}

	pair := reconcile.Pair{A: id, B: counterpart}
	if side == reconcile.SideB {
		pair = reconcile.Pair{A: counterpart, B: id}
	}
	return c.JSON(pair)
}

// HandleStrategies lists the conflict strategies.
// @Summary List Strategies
// @Description Lists the available conflict resolution strategies and the active one.
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]interface{} "Strategies"
// @Router /strategies [get]
func (h *Handler) HandleStrategies(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"active":     h.service.Strategy(),
		"strategies": reconcile.Strategies(),
	})
}
