// Package config provides configuration management for the loot ledger.
//
// It utilizes Viper for loading configuration from environment variables
// and a .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Storage: publish-target S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Journal: run journal database location
//   - Ledger: persisted ledger and import file locations
//   - Items: item metadata service credentials and endpoints
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
