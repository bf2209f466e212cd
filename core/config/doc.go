// Package config provides configuration management for the Storage Manager.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, CORS origins
//   - Storage: S3/MinIO credentials and listing settings
//   - Log: Logging level and format
//   - Database: optional MySQL connection for the activity history
//   - Client: base URL and timeout used by the browse command
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
