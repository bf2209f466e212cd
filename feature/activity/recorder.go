package activity

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Recorder receives mutation events. Implementations must not fail the request.
type Recorder interface {
	Record(ctx context.Context, e Event)
}

// Nop discards every event.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(context.Context, Event) {}

// Store persists events with GORM.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore creates a store on db.
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Migrate creates or updates the activity table.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("failed to migrate activity table: %w", err)
	}
	return nil
}

// Record implements Recorder. Failures are logged and dropped.
func (s *Store) Record(ctx context.Context, e Event) {
	entry := Entry{
		Operation: e.Operation,
		Bucket:    e.Bucket,
		Path:      e.Path,
		Target:    e.Target,
		RayID:     e.RayID,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.logger.Warn("Failed to record activity",
			zap.String("operation", e.Operation),
			zap.String("bucket", e.Bucket),
			zap.Error(err))
	}
}

// Recent returns the newest entries first, optionally filtered by bucket.
func (s *Store) Recent(ctx context.Context, bucket string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	q := s.db.WithContext(ctx).Model(&Entry{})
	if bucket != "" {
		q = q.Where("bucket = ?", bucket)
	}

	var entries []Entry
	if err := q.Order("id desc").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	return entries, nil
}
