package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied when config.yml omits a value
const (
	DefaultPort             = 16280
	DefaultStorePath        = "data/aidtrack.db"
	DefaultSpeedMPH         = 3.0
	DefaultFatigueFactor    = 0.95
	DefaultGenerosityFactor = 1.1
	DefaultRefreshMS        = 30000
)

// LoadAppConfig loads and validates the application configuration. The
// first readable path wins; with no readable path the defaults apply.
// AIDTRACK_PORT and AIDTRACK_STORE_PATH environment variables (optionally
// from a .env file) override the file values.
func LoadAppConfig(paths ...string) (AppConfig, error) {
	if len(paths) == 0 {
		paths = []string{"config.yml", "./config/config.yml"}
	}
	var cfg AppConfig
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, err
		}
		break
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Estimation); err != nil {
		return AppConfig{}, err
	}
	if err := v.Struct(cfg.Refresh); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath
	}
	if cfg.Estimation.DefaultSpeedMPH == 0 {
		cfg.Estimation.DefaultSpeedMPH = DefaultSpeedMPH
	}
	if cfg.Estimation.FatigueFactor == 0 {
		cfg.Estimation.FatigueFactor = DefaultFatigueFactor
	}
	if cfg.Estimation.GenerosityFactor == 0 {
		cfg.Estimation.GenerosityFactor = DefaultGenerosityFactor
	}
	if cfg.Refresh.IntervalMS == 0 {
		cfg.Refresh.IntervalMS = DefaultRefreshMS
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	_ = godotenv.Load() // .env is optional
	if v := os.Getenv("AIDTRACK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("AIDTRACK_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
}
