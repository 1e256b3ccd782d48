package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// StoreConfig contains snapshot store configuration
type StoreConfig struct {
	Path string `yaml:"path"`
}

// EstimationConfig contains the pace/ETA model parameters
type EstimationConfig struct {
	DefaultSpeedMPH  float64 `yaml:"defaultSpeedMPH" validate:"gt=0"`
	FatigueFactor    float64 `yaml:"fatigueFactor" validate:"gt=0,lte=1"`
	GenerosityFactor float64 `yaml:"generosityFactor" validate:"gte=1"`
}

// RefreshConfig contains the periodic recomputation settings
type RefreshConfig struct {
	IntervalMS int `yaml:"intervalMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server     ServerConfig     `yaml:"server" validate:"required"`
	Store      StoreConfig      `yaml:"store"`
	Estimation EstimationConfig `yaml:"estimation"`
	Refresh    RefreshConfig    `yaml:"refresh"`
}
