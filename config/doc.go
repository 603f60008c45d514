// Package config loads service configuration with Viper.
//
// Values come from, in increasing priority: the YAML config file, a .env
// file, and process environment variables. Environment variables are named
// after the mapstructure path of each field, upper-cased, with dots turned
// into underscores and the service prefix prepended:
// logging.level for service "compose-demo" reads COMPOSE_DEMO_LOGGING_LEVEL.
//
// After unmarshalling, ApplyDefaults is called when the target implements
// it and the result is checked with validation.Validate.
//
// # Usage
//
//	var cfg config.ServiceConfig
//	err := config.Load("compose-demo", &cfg)
package config
