package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Weather  WeatherConfig
	Batch    BatchConfig
	Model    ModelConfig
	Registry RegistryConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	RateLimitRPS int
}

type WeatherConfig struct {
	BaseURL            string
	HistoricalURL      string
	Timeout            time.Duration
	CacheTTL           time.Duration
	MinRequestInterval time.Duration
}

type BatchConfig struct {
	Size             int
	Pacing           time.Duration
	InferenceWorkers int
	InferenceBuffer  int
}

type ModelConfig struct {
	BundlePath      string
	PrimaryWeight   float64
	SecondaryWeight float64
}

type RegistryConfig struct {
	// DBPath switches the terrain registry to a sqlite file when set;
	// empty means the built-in static dataset.
	DBPath string
}

type LoggingConfig struct {
	Level string
}

// Load reads the environment. Defaults reproduce the documented serving
// policy: batches of 25, 100ms pacing, 10s upstream interval, 600s cache
// TTL, 0.7/0.3 ensemble weights.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 5),
		},
		Weather: WeatherConfig{
			BaseURL:            getEnv("WEATHER_BASE_URL", "https://api.open-meteo.com/v1"),
			HistoricalURL:      getEnv("WEATHER_HISTORICAL_URL", "https://archive-api.open-meteo.com/v1"),
			Timeout:            getEnvDuration("WEATHER_TIMEOUT", 15*time.Second),
			CacheTTL:           getEnvDuration("WEATHER_CACHE_TTL", 600*time.Second),
			MinRequestInterval: getEnvDuration("WEATHER_MIN_INTERVAL", 10*time.Second),
		},
		Batch: BatchConfig{
			Size:             getEnvInt("BATCH_SIZE", 25),
			Pacing:           getEnvDuration("BATCH_PACING", 100*time.Millisecond),
			InferenceWorkers: getEnvInt("INFERENCE_WORKERS", 4),
			InferenceBuffer:  getEnvInt("INFERENCE_BUFFER", 50),
		},
		Model: ModelConfig{
			BundlePath:      getEnv("MODEL_BUNDLE_PATH", "./data/model_bundle.json"),
			PrimaryWeight:   getEnvFloat("ENSEMBLE_PRIMARY_WEIGHT", 0.7),
			SecondaryWeight: getEnvFloat("ENSEMBLE_SECONDARY_WEIGHT", 0.3),
		},
		Registry: RegistryConfig{
			DBPath: getEnv("TERRAIN_DB_PATH", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Batch.Size < 1 {
		return fmt.Errorf("batch size must be at least 1, got %d", c.Batch.Size)
	}
	if c.Batch.InferenceWorkers < 1 {
		return fmt.Errorf("inference workers must be at least 1, got %d", c.Batch.InferenceWorkers)
	}

	if c.Weather.CacheTTL <= 0 {
		return fmt.Errorf("weather cache TTL must be positive")
	}
	if c.Weather.MinRequestInterval < 0 {
		return fmt.Errorf("weather minimum request interval must not be negative")
	}

	if c.Model.PrimaryWeight <= 0 || c.Model.SecondaryWeight <= 0 {
		return fmt.Errorf("ensemble weights must be positive")
	}
	if math.Abs(c.Model.PrimaryWeight+c.Model.SecondaryWeight-1) > 1e-9 {
		return fmt.Errorf("ensemble weights must sum to 1, got %g", c.Model.PrimaryWeight+c.Model.SecondaryWeight)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
