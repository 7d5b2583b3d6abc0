package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Session SessionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	RedisURL           string
}

type BackendConfig struct {
	BaseURL         string
	DefaultImageURL string
}

type SessionConfig struct {
	Secret     string
	TTLMinutes int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8080"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8080"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Backend: BackendConfig{
			BaseURL:         getEnv("BACKEND_BASE_URL", "http://localhost:8000"),
			DefaultImageURL: getEnv("DEFAULT_IMAGE_URL", ""),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "dev-only-secret"),
			TTLMinutes: getEnvAsInt("SESSION_TTL_MINUTES", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
