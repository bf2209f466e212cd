package api

// Config holds configuration for the API client.
type Config struct {
	// BaseURL is the root of the storage API.
	BaseURL string `mapstructure:"base_url" default:"http://127.0.0.1:8000"`
	// ApiKey is sent as X-API-Key when set.
	ApiKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds bounds each request. Zero disables the timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
}
