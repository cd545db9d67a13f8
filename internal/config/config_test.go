package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"STORAGE_BACKEND", "DATABASE_TYPE", "DB_PATH", "DATABASE_URL", "DATA_DIR", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "sql", cfg.StorageBackend)
	assert.Equal(t, "sqlite", cfg.DatabaseType)
	assert.Equal(t, "./fruitfriends.db", cfg.DatabasePath)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/fruit")
	t.Setenv("DATA_DIR", "/tmp/fruit")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, "postgres", cfg.DatabaseType)
	assert.Equal(t, "postgres://localhost/fruit", cfg.DatabaseURL)
	assert.Equal(t, "/tmp/fruit", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}
