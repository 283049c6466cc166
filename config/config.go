package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"nychousing-backend/storage"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the server
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	// DatabaseURL is optional; empty keeps session state in memory
	DatabaseURL string

	Storage           storage.StorageConfig
	ModelArtifactPath string
	AppreciationRate  float64

	GeminiAPIKey         string
	GeminiModel          string
	NarrativeMaxTokens   int32
	NarrativeTemperature float32
	NarrativeTimeout     time.Duration

	CORSOrigin string
}

// LoadDotEnv loads a .env file from the working directory or the project root
// (relative to cmd/<tool>/). A missing file is not an error.
func LoadDotEnv() bool {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			return false
		}
	}
	return true
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		ModelArtifactPath: getEnv("MODEL_ARTIFACT_PATH", "house_price_model.json"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		CORSOrigin:        getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}

	storageCfg, err := storage.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	cfg.Storage = storageCfg

	if cfg.AppreciationRate, err = getFloat("APPRECIATION_RATE", 0.05); err != nil {
		return nil, err
	}

	maxTokens, err := getFloat("NARRATIVE_MAX_TOKENS", 600)
	if err != nil {
		return nil, err
	}
	cfg.NarrativeMaxTokens = int32(maxTokens)

	temperature, err := getFloat("NARRATIVE_TEMPERATURE", 0.4)
	if err != nil {
		return nil, err
	}
	cfg.NarrativeTemperature = float32(temperature)

	timeout := getEnv("NARRATIVE_TIMEOUT", "15s")
	cfg.NarrativeTimeout, err = time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid NARRATIVE_TIMEOUT %q: %w", timeout, err)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}
