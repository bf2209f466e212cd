package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8000"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// AllowOrigins is a comma separated list of browser origins allowed by CORS.
	AllowOrigins string `mapstructure:"allow_origins" default:"http://127.0.0.1:5500,http://localhost:5500"`
	// BodyLimitMB caps upload request bodies.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"64"`
}

// Origins returns the trimmed, non-empty CORS origins.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 64 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}
