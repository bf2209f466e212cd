package files

import (
	"storage-manager/core/metrics"
	"storage-manager/core/storage"
	"storage-manager/feature/activity"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new files feature.
func NewFeature(client storage.Client, cfg storage.Config, logger *zap.Logger, m *metrics.Metrics, recorder activity.Recorder) *Feature {
	svc := NewService(client, cfg, logger, m)
	return &Feature{
		service: svc,
		handler: NewHandler(svc, recorder),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "files"
}

// IsEnabled returns true if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the bucket and object routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
