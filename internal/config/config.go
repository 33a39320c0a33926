package config

import (
	"errors"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all pipeline settings, populated from environment variables.
type Config struct {
	InputPath string `envconfig:"INPUT_PATH" default:"data/IOT-temp.csv"`
	OutputDir string `envconfig:"OUTPUT_DIR" default:"processed"`

	// ArtifactDBPath overrides the intermediate SQLite store location.
	// Defaults to <OutputDir>/artifacts.db.
	ArtifactDBPath string `envconfig:"ARTIFACT_DB_PATH"`

	TopDays int `envconfig:"TOP_DAYS" default:"5"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// PushgatewayURL enables a metrics push at the end of the run when set.
	PushgatewayURL string `envconfig:"PUSHGATEWAY_URL"`

	// KafkaBrokers enables stage-completion events when non-empty.
	KafkaBrokers     []string `envconfig:"KAFKA_BROKERS"`
	KafkaEventsTopic string   `envconfig:"KAFKA_EVENTS_TOPIC" default:"iot-temp-pipeline-events"`
}

// KafkaEnabled reports whether stage events should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if cfg.InputPath == "" {
		return nil, errors.New("INPUT_PATH is required")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}
	if cfg.TopDays <= 0 {
		return nil, errors.New("TOP_DAYS must be positive")
	}
	if cfg.KafkaEnabled() && cfg.KafkaEventsTopic == "" {
		return nil, errors.New("KAFKA_EVENTS_TOPIC is required when KAFKA_BROKERS is set")
	}

	if cfg.ArtifactDBPath == "" {
		cfg.ArtifactDBPath = filepath.Join(cfg.OutputDir, "artifacts.db")
	}

	return &cfg, nil
}
