package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fruitfriends/internal/database"
	"fruitfriends/internal/storage"
)

// KVRepository stores key-value pairs in the kv_store table.
// It implements storage.Store.
type KVRepository struct {
	db database.DBTX
}

// NewKVRepository creates a new key-value repository
func NewKVRepository(db database.DBTX) *KVRepository {
	return &KVRepository{db: db}
}

// Get retrieves a value by key
func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	query := `SELECT store_value FROM kv_store WHERE store_key = ?`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return []byte(value), nil
}

// Set updates or inserts a value
func (r *KVRepository) Set(ctx context.Context, key string, value []byte) error {
	query := r.db.GetDialect().UpsertKV()
	if _, err := r.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// Remove deletes a key
func (r *KVRepository) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM kv_store WHERE store_key = ?`
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Keys lists keys with the given prefix in ascending order
func (r *KVRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	query := `
		SELECT store_key
		FROM kv_store
		WHERE SUBSTR(store_key, 1, ?) = ?
		ORDER BY store_key ASC
	`

	rows, err := r.db.QueryContext(ctx, query, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
