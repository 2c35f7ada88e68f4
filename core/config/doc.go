// Package config provides configuration management for the sync service.
//
// It uses Viper to read environment variables, optionally seeded from a .env
// file loaded with godotenv. Defaults come from the `default` struct tags of
// each section, and nested keys map to upper-case variables joined by an
// underscore (sync.strategy -> SYNC_STRATEGY).
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP port, API key and request timeout
//   - Database: connection of the calendar (side A) database
//   - Storage: S3/MinIO credentials and the bucket holding tasks (side B)
//   - Log: logging level and format
//   - Sync: strategy, workers, fail-fast, side names and mapping backend
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.Strategy)
package config
