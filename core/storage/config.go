package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// DefaultBucket is listed when a listing request omits the bucket.
	DefaultBucket string `mapstructure:"default_bucket" default:"Bucket1"`
	// Region is the location of new buckets (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PresignExpirySeconds is the lifetime of download URLs.
	PresignExpirySeconds int `mapstructure:"presign_expiry_seconds" default:"3600"`
	// ListLimit caps the number of entries returned by a folder listing.
	ListLimit int `mapstructure:"list_limit" default:"100"`
}
