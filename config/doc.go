// Package config loads service configuration with Viper.
//
// LoadConfig reads cmd/<service>/config.yml (or an explicit file), overlays
// environment variables and an optional .env file loaded with godotenv, then
// unmarshals the result into the caller's struct. ServiceConfig holds the
// fields common to every service and is embedded by the application config.
//
// # Usage
//
//	var cfg app.Config
//	err := config.LoadConfig("voicelist", &cfg)
package config
