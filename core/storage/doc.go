// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the storage API exposes: listing buckets and objects, uploading,
// server-side copies, deletes and presigned downloads. This abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Folders
//
// Object stores have no directories. A folder is a key prefix; empty folders
// are kept visible by a zero-byte FolderMarker object under the prefix.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	buckets, err := client.ListBuckets(ctx)
package storage
