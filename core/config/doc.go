// Package config provides configuration management for quote-manager.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: quote record store connection details and schema profile
//   - Storage: S3/MinIO credentials for draft snapshots
//   - Catalog: remote option catalog endpoint and cache TTL
//   - Log: logging level and format
//
// Defaults come from the 'default' struct tags, bound recursively through
// reflection so every key is registered for AutomaticEnv.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
