package health

import (
	"storage-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Message is returned by the liveness endpoint.
const Message = "This is a storage API. All good!"

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/health")
	group.Get("/", h.HandleLiveness)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/database", h.HandleDatabaseCheck)
}

// HandleLiveness answers without touching any dependency.
// @Summary Liveness
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health/ [get]
func (h *Handler) HandleLiveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": Message})
}

// HandleStorageCheck checks and optionally fixes the object store.
// @Summary Check Storage
// @Description Lists buckets with the configured credentials and checks the default bucket. Optionally creates it.
// @Tags health
// @Produce json
// @Param fix query boolean false "Create the default bucket when missing"
// @Success 200 {object} checks.StorageReport
// @Failure 503 {object} checks.StorageReport
// @Router /health/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	report := h.service.CheckStorage(c.Context())

	if report.Status == "degraded" && c.Query("fix") == "true" {
		l.Info("Attempting to create default bucket", zap.String("bucket", report.DefaultBucket))
		if err := h.service.FixStorage(c.Context()); err != nil {
			l.Error("Failed to create default bucket", zap.Error(err))
			report.Error = err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(report)
		}
		report = h.service.CheckStorage(c.Context())
	}

	if report.Status == "error" {
		l.Warn("Storage check failed", zap.String("error", report.Error))
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

// HandleDatabaseCheck pings the activity database.
// @Summary Check Database
// @Tags health
// @Produce json
// @Success 200 {object} checks.DatabaseReport
// @Failure 503 {object} checks.DatabaseReport
// @Router /health/database [get]
func (h *Handler) HandleDatabaseCheck(c *fiber.Ctx) error {
	report := h.service.CheckDatabase(c.Context())
	if report.Status == "error" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}
