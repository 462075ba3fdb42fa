// Package config provides configuration management for the ingest service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, body limit)
//   - Log: Logging level and format
//   - Database: access-control MySQL connection details
//   - DocDB: market data MongoDB connection details
//   - Storage: S3/MinIO credentials for game-data objects
//   - Bus: Kafka broker and topic for delta events
//   - Gamedata: stack-size table location and fallback
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
