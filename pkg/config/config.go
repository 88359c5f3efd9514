package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	BotToken          string `validate:"required"`
	ServiceCredential []byte `validate:"required"`
	TargetFolderID    string
	ServerPort        string
	Environment       string
	MaxFileBytes      int64
}

// Telegram's bot API refuses downloads above 20 MB, so there is no point
// accepting anything larger.
const defaultMaxFileBytes = 20 << 20

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		BotToken:       getEnv("BOT_AUTH_TOKEN", ""),
		TargetFolderID: getEnv("STORAGE_TARGET_CONTAINER_ID", ""),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		MaxFileBytes:   getEnvAsInt64("MAX_FILE_BYTES", defaultMaxFileBytes),
	}

	if raw := getEnv("STORAGE_SERVICE_CREDENTIAL", ""); raw != "" {
		if !json.Valid([]byte(raw)) {
			return nil, fmt.Errorf("STORAGE_SERVICE_CREDENTIAL is not valid JSON")
		}
		config.ServiceCredential = []byte(raw)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("missing required configuration: %w", err)
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
