// Package config loads and validates the application configuration from
// config.yml, with optional .env overrides for deployment-specific values.
package config
