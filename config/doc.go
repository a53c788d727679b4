// Package config provides configuration loading for applications that
// embed the parakit engine.
//
// It uses Viper to load configuration from config.yml files and
// environment variables, with godotenv-backed .env resolution. The
// EngineConfig struct bundles engine tuning knobs with logging
// configuration; applications embed it in their own config structs.
//
// # Usage
//
//	var cfg config.EngineConfig
//	err := config.LoadConfig("my-app", &cfg)
//	cfg.ApplyDefaults()
//	err = cfg.Validate()
package config
