package integrity

import (
	"item-sync/core/logger"
	"item-sync/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/mappings", h.HandleMappingCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all read-only integrity checks (Structure, Schema, Mappings). The mapping check looks up every stored pair and may take a long time.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.UserContext()
	report := make(map[string]interface{})

	if missing, err := h.service.CheckStructure(ctx); err != nil {
		report["structure"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["structure"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	if pairs, err := h.service.CheckPairs(ctx); err != nil {
		report["mappings"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["mappings"] = pairs
	}

	return c.JSON(report)
}

// HandleStructureCheck checks and optionally fixes bucket prefixes.
// @Summary Check Structure
// @Description Checks that the task prefix (and the mapping snapshot folder) exist in the bucket. Optionally creates missing folders.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Fix missing folders"
// @Success 200 {object} map[string]interface{} "Structure Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/structure [get]
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckStructure(c.UserContext())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))

		if fix {
			l.Info("Attempting to fix missing folders")
			if err := h.service.FixStructure(c.UserContext(), missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleSchemaCheck checks the database schema.
// @Summary Check Schema
// @Description Checks that the event and mapping tables hold every column of their models.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.Matched {
		l.Warn("Schema mismatch detected", zap.Strings("errors", report.Errors))
	}
	return c.JSON(report)
}

// HandleMappingCheck finds and optionally prunes dangling pairs.
// @Summary Check Mappings
// @Description Looks up both items of every stored pair and lists pairs whose item is gone on either side. With fix=true those pairs are removed from the mapping.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Prune dangling pairs"
// @Success 200 {object} map[string]interface{} "Mapping Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/mappings [get]
func (h *Handler) HandleMappingCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var (
		report  *checks.PairReport
		removed int
		err     error
	)
	if c.Query("fix") == "true" {
		report, removed, err = h.service.PrunePairs(c.UserContext())
	} else {
		report, err = h.service.CheckPairs(c.UserContext())
	}
	if err != nil {
		l.Error("Mapping check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Mapping check completed",
		zap.Int("checked", report.Checked),
		zap.Int("dangling", len(report.Dangling)),
		zap.Int("removed", removed),
	)
	return c.JSON(fiber.Map{
		"checked":  report.Checked,
		"dangling": report.Dangling,
		"removed":  removed,
	})
}
