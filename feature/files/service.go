package files

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"storage-manager/core/api"
	"storage-manager/core/metrics"
	"storage-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrFolderNotFound is returned when deleting a folder with no objects.
var ErrFolderNotFound = errors.New("folder is empty or does not exist")

// InputError marks a request the caller must fix.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

// Service implements the storage API on top of an object store.
type Service struct {
	client  storage.Client
	cfg     storage.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewService creates a new storage service. m may be nil.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{
		client:  client,
		cfg:     cfg,
		logger:  logger,
		metrics: m,
	}
}

// DefaultBucket is listed when a request names no bucket.
func (s *Service) DefaultBucket() string {
	return s.cfg.DefaultBucket
}

// ListBuckets returns every bucket.
func (s *Service) ListBuckets(ctx context.Context) ([]api.Bucket, error) {
	infos, err := s.client.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	buckets := make([]api.Bucket, 0, len(infos))
	for _, info := range infos {
		b := api.Bucket{Name: info.Name}
		if !info.CreationDate.IsZero() {
			created := info.CreationDate
			b.CreatedAt = &created
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}

// List returns the folders and files directly under folder.
// Folder markers and the folder's own placeholder are not listed.
func (s *Service) List(ctx context.Context, bucket, folder string) ([]api.Item, error) {
	prefix := folderPrefix(folder)
	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	}

	items := []api.Item{}
	for obj := range s.client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s/%s: %w", bucket, prefix, obj.Err)
		}
		if s.cfg.ListLimit > 0 && len(items) >= s.cfg.ListLimit {
			continue
		}

		name := strings.TrimPrefix(obj.Key, prefix)
		if strings.HasSuffix(name, "/") {
			name = strings.TrimSuffix(name, "/")
			if name == "" {
				continue
			}
			items = append(items, api.Item{Name: name, Type: api.TypeFolder, Path: name})
			continue
		}
		if name == "" || name == storage.FolderMarker {
			continue
		}

		size := obj.Size
		items = append(items, api.Item{Name: name, Type: api.TypeFile, Path: name, Size: &size})
	}
	return items, nil
}

// Upload stores content as folder/filename and returns the object key.
func (s *Service) Upload(ctx context.Context, bucket, folder, filename string, content io.Reader, size int64, contentType string) (string, error) {
	filename = path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if filename == "" || filename == "." || filename == "/" {
		return "", &InputError{"No file selected"}
	}

	key := folderPrefix(folder) + filename
	_, err := s.client.PutObject(ctx, bucket, key, content, size, minio.PutObjectOptions{ContentType: contentType})
	s.metrics.ObserveOperation("upload", err)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.logger.Info("Uploaded object", zap.String("bucket", bucket), zap.String("key", key), zap.Int64("size", size))
	return key, nil
}

// CreateFolder writes the marker object for parent/name and returns the folder path.
func (s *Service) CreateFolder(ctx context.Context, bucket, name, parent string) (string, error) {
	name = strings.Trim(name, "/")
	if name == "" {
		return "", &InputError{"Folder name is required"}
	}

	folder := folderPrefix(parent) + name + "/"
	_, err := s.client.PutObject(ctx, bucket, folder+storage.FolderMarker, bytes.NewReader(nil), 0, minio.PutObjectOptions{})
	s.metrics.ObserveOperation("create_folder", err)
	if err != nil {
		return "", fmt.Errorf("failed to create folder %s: %w", folder, err)
	}

	s.logger.Info("Created folder", zap.String("bucket", bucket), zap.String("folder", folder))
	return folder, nil
}

// DeleteFile removes a single object.
func (s *Service) DeleteFile(ctx context.Context, bucket, key string) error {
	key = cleanKey(key)
	if key == "" {
		return &InputError{"Path is required"}
	}

	err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
	s.metrics.ObserveOperation("delete_file", err)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// DeleteFolder removes every object under the folder and returns how many were removed.
func (s *Service) DeleteFolder(ctx context.Context, bucket, folder string) (int, error) {
	prefix := folderPrefix(folder)
	if prefix == "" {
		return 0, &InputError{"Path is required"}
	}

	n, err := s.removePrefix(ctx, bucket, prefix)
	if err == nil && n == 0 {
		err = ErrFolderNotFound
	}
	s.metrics.ObserveOperation("delete_folder", err)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Deleted folder", zap.String("bucket", bucket), zap.String("folder", prefix), zap.Int("objects", n))
	return n, nil
}

// Copy duplicates src at dst with a server-side copy. A src ending in "/"
// is a folder and every object under it is copied below dst.
func (s *Service) Copy(ctx context.Context, bucket, src, dst string) error {
	src, dst = cleanKey(src), cleanKey(dst)
	if err := checkTransfer(src, dst); err != nil {
		return err
	}

	var err error
	if isFolder(src) {
		_, err = s.copyPrefix(ctx, bucket, folderPrefix(src), folderPrefix(dst))
	} else {
		err = s.copy(ctx, bucket, src, dst)
	}
	s.metrics.ObserveOperation("copy", err)
	return err
}

// Move copies src to dst and then removes src. A failure to remove the source
// is returned as warn; the objects exist at dst in that case. Folders are
// moved like Copy treats them.
func (s *Service) Move(ctx context.Context, bucket, src, dst string) (warn error, err error) {
	src, dst = cleanKey(src), cleanKey(dst)
	if err := checkTransfer(src, dst); err != nil {
		return nil, err
	}

	if isFolder(src) {
		return s.moveFolder(ctx, bucket, folderPrefix(src), folderPrefix(dst))
	}

	if err := s.copy(ctx, bucket, src, dst); err != nil {
		s.metrics.ObserveOperation("move", err)
		return nil, err
	}
	s.metrics.ObserveOperation("move", nil)

	if err := s.client.RemoveObject(ctx, bucket, src, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Warn("Failed to delete original after move", zap.String("bucket", bucket), zap.String("key", src), zap.Error(err))
		return err, nil
	}
	return nil, nil
}

func (s *Service) moveFolder(ctx context.Context, bucket, src, dst string) (warn error, err error) {
	n, err := s.copyPrefix(ctx, bucket, src, dst)
	s.metrics.ObserveOperation("move", err)
	if err != nil {
		return nil, err
	}

	if _, err := s.removePrefix(ctx, bucket, src); err != nil {
		s.logger.Warn("Failed to delete original folder after move", zap.String("bucket", bucket), zap.String("folder", src), zap.Error(err))
		return err, nil
	}
	s.logger.Info("Moved folder", zap.String("bucket", bucket), zap.String("from", src), zap.String("to", dst), zap.Int("objects", n))
	return nil, nil
}

func checkTransfer(src, dst string) error {
	if strings.Trim(src, "/") == "" || strings.Trim(dst, "/") == "" {
		return &InputError{"Both path and new_path are required"}
	}
	if strings.Trim(src, "/") == strings.Trim(dst, "/") {
		return &InputError{"new_path must differ from path"}
	}
	if isFolder(src) && strings.HasPrefix(folderPrefix(dst), folderPrefix(src)) {
		return &InputError{"new_path must not be inside path"}
	}
	return nil
}

// DownloadURL returns a presigned GET URL for key.
func (s *Service) DownloadURL(ctx context.Context, bucket, key string) (string, error) {
	key = cleanKey(key)
	if key == "" {
		return "", &InputError{"Path is required"}
	}

	expiry := time.Duration(s.cfg.PresignExpirySeconds) * time.Second
	if expiry <= 0 {
		expiry = time.Hour
	}

	u, err := s.client.PresignedGetObject(ctx, bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("could not generate download link: %w", err)
	}
	return u.String(), nil
}

// CreateBucket makes a new bucket in the configured region.
func (s *Service) CreateBucket(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &InputError{"Bucket name is required."}
	}

	err := s.client.MakeBucket(ctx, name, minio.MakeBucketOptions{Region: s.cfg.Region})
	s.metrics.ObserveOperation("create_bucket", err)
	if err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", name, err)
	}

	s.logger.Info("Created bucket", zap.String("bucket", name))
	return nil
}

// DeleteBucket empties the bucket and removes it.
func (s *Service) DeleteBucket(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &InputError{"Bucket name is required."}
	}

	n, err := s.removePrefix(ctx, name, "")
	if err == nil {
		err = s.client.RemoveBucket(ctx, name)
	}
	s.metrics.ObserveOperation("delete_bucket", err)
	if err != nil {
		return fmt.Errorf("failed to delete bucket %s: %w", name, err)
	}

	s.logger.Info("Deleted bucket", zap.String("bucket", name), zap.Int("objects", n))
	return nil
}

func (s *Service) copy(ctx context.Context, bucket, src, dst string) error {
	_, err := s.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: bucket, Object: dst},
		minio.CopySrcOptions{Bucket: bucket, Object: src},
	)
	if err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return nil
}

// copyPrefix copies every object under src to the same relative key under dst.
func (s *Service) copyPrefix(ctx context.Context, bucket, src, dst string) (int, error) {
	keys, err := s.listKeys(ctx, bucket, src)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, ErrFolderNotFound
	}

	for _, k := range keys {
		if err := s.copy(ctx, bucket, k, dst+strings.TrimPrefix(k, src)); err != nil {
			return 0, err
		}
	}
	return len(keys), nil
}

func (s *Service) listKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s/%s: %w", bucket, prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// removePrefix deletes every object under prefix and returns the count.
func (s *Service) removePrefix(ctx context.Context, bucket, prefix string) (int, error) {
	keys, err := s.listKeys(ctx, bucket, prefix)
	if err != nil {
		return 0, err
	}
	if len(keys) == 0 {
		return 0, nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		objectsCh <- minio.ObjectInfo{Key: k}
	}
	close(objectsCh)

	for rerr := range s.client.RemoveObjects(ctx, bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		if rerr.Err != nil {
			return 0, fmt.Errorf("failed to delete %s: %w", rerr.ObjectName, rerr.Err)
		}
	}
	return len(keys), nil
}

// folderPrefix turns "a/b" or "/a/b/" into "a/b/", and "" into "".
func folderPrefix(folder string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return ""
	}
	return folder + "/"
}

func isFolder(key string) bool {
	return strings.HasSuffix(key, "/")
}

func cleanKey(key string) string {
	return strings.TrimPrefix(strings.TrimSpace(key), "/")
}
