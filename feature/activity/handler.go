package activity

import (
	"storage-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the activity history.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the activity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/activity", h.HandleRecent)
}

// HandleRecent lists recent mutations.
// @Summary List Activity
// @Description Returns the most recent successful mutations, newest first.
// @Tags activity
// @Produce json
// @Param bucket query string false "Only this bucket"
// @Param limit query int false "Maximum entries (default 50)"
// @Success 200 {array} activity.Entry
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /activity [get]
func (h *Handler) HandleRecent(c *fiber.Ctx) error {
	entries, err := h.store.Recent(c.Context(), c.Query("bucket"), c.QueryInt("limit", 50))
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Activity query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(entries)
}
