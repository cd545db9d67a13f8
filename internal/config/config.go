package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	StorageBackend string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	DataDir        string
	LogLevel       string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	// .env is optional
	_ = godotenv.Load()

	return &Config{
		StorageBackend: getEnv("STORAGE_BACKEND", "sql"),
		DatabaseType:   getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./fruitfriends.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DataDir:        getEnv("DATA_DIR", "./data"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
