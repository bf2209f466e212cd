package health

import (
	"context"

	"storage-manager/core/storage"
	"storage-manager/feature/health/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service runs the health checks.
type Service struct {
	client storage.Client
	cfg    storage.Config
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new health service. db may be nil.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
}

// CheckStorage verifies credentials and the default bucket.
func (s *Service) CheckStorage(ctx context.Context) checks.StorageReport {
	return checks.CheckStorage(ctx, s.client, s.cfg.DefaultBucket)
}

// FixStorage creates the default bucket when it is missing.
func (s *Service) FixStorage(ctx context.Context) error {
	return checks.FixDefaultBucket(ctx, s.client, s.cfg.DefaultBucket, s.cfg.Region, s.logger)
}

// CheckDatabase pings the activity database.
func (s *Service) CheckDatabase(ctx context.Context) checks.DatabaseReport {
	return checks.CheckDatabase(ctx, s.db)
}
