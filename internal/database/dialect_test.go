package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialects(t *testing.T) {
	tests := []struct {
		name      string
		dialect   Dialect
		driver    string
		subdir    string
		dsnConfig DialectConfig
		dsn       string
	}{
		{
			name:      "SQLite",
			dialect:   NewSQLiteDialect(),
			driver:    "sqlite3",
			subdir:    "sqlite",
			dsnConfig: DialectConfig{Path: "./fruit.db", URL: "ignored"},
			dsn:       "./fruit.db",
		},
		{
			name:      "PostgreSQL",
			dialect:   NewPostgresDialect(),
			driver:    "postgres",
			subdir:    "postgres",
			dsnConfig: DialectConfig{Path: "ignored", URL: "postgres://localhost/fruit"},
			dsn:       "postgres://localhost/fruit",
		},
		{
			name:      "MySQL",
			dialect:   NewMySQLDialect(),
			driver:    "mysql",
			subdir:    "mysql",
			dsnConfig: DialectConfig{URL: "user:pass@tcp(localhost:3306)/fruit"},
			dsn:       "user:pass@tcp(localhost:3306)/fruit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.driver, tt.dialect.DriverName())
			assert.Equal(t, tt.subdir, tt.dialect.MigrationsSubdir())
			assert.Equal(t, tt.dsn, tt.dialect.DSN(tt.dsnConfig))
			assert.Contains(t, tt.dialect.CreateMigrationsTableQuery(), "CREATE TABLE IF NOT EXISTS migrations")

			upsert := tt.dialect.UpsertKV()
			assert.True(t, strings.HasPrefix(upsert, "INSERT INTO kv_store"))
			assert.Equal(t, 2, strings.Count(upsert, "?"))
		})
	}
}

func TestMigrationFilesExistForEveryDialect(t *testing.T) {
	for _, dialect := range []Dialect{NewSQLiteDialect(), NewPostgresDialect(), NewMySQLDialect()} {
		content, err := migrationFiles.ReadFile("migrations/" + dialect.MigrationsSubdir() + "/001_create_kv_store.sql")
		if assert.NoError(t, err, dialect.DriverName()) {
			assert.Contains(t, string(content), "kv_store")
		}
	}
}

// Keys differing only in case or trailing spaces must stay distinct rows,
// as they do on SQLite and Postgres
func TestMySQLKeyColumnIsBinary(t *testing.T) {
	content, err := migrationFiles.ReadFile("migrations/mysql/001_create_kv_store.sql")
	if !assert.NoError(t, err) {
		return
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.Contains(line, "store_key") {
			assert.Contains(t, line, "COLLATE utf8mb4_bin")
			return
		}
	}
	t.Fatal("store_key column not found")
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT store_value FROM kv_store WHERE store_key = ?",
			expected: "SELECT store_value FROM kv_store WHERE store_key = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT store_value FROM kv_store WHERE store_key = ?",
			expected: "SELECT store_value FROM kv_store WHERE store_key = $1",
		},
		{
			name:     "PostgreSQL upsert",
			dialect:  NewPostgresDialect(),
			query:    NewPostgresDialect().UpsertKV(),
			expected: strings.Replace(strings.Replace(NewPostgresDialect().UpsertKV(), "?", "$1", 1), "?", "$2", 1),
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "DELETE FROM kv_store WHERE store_key = ?",
			expected: "DELETE FROM kv_store WHERE store_key = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.dialect.RewriteQuery(tt.query))
		})
	}
}
