package checks

import (
	"context"
	"fmt"

	"storage-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// StorageReport describes whether the object store answers with the configured credentials.
type StorageReport struct {
	Status        string `json:"status"`
	Buckets       int    `json:"buckets"`
	DefaultBucket string `json:"default_bucket"`
	DefaultExists bool   `json:"default_exists"`
	Error         string `json:"error,omitempty"`
}

// CheckStorage lists buckets and looks for the default bucket.
func CheckStorage(ctx context.Context, client storage.Client, defaultBucket string) StorageReport {
	report := StorageReport{Status: "ok", DefaultBucket: defaultBucket}

	buckets, err := client.ListBuckets(ctx)
	if err != nil {
		report.Status = "error"
		report.Error = err.Error()
		return report
	}
	report.Buckets = len(buckets)

	for _, b := range buckets {
		if b.Name == defaultBucket {
			report.DefaultExists = true
			break
		}
	}
	if !report.DefaultExists {
		report.Status = "degraded"
	}
	return report
}

// FixDefaultBucket creates the default bucket when it is missing.
func FixDefaultBucket(ctx context.Context, client storage.Client, bucket, region string, logger *zap.Logger) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}

	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	logger.Info("Created default bucket", zap.String("bucket", bucket))
	return nil
}
