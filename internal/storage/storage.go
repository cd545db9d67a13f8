// Package storage defines the key-value persistence used for quiz progress
// and feedback, with in-memory and file-backed implementations. The SQL
// implementation lives in the repository package.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has no value
var ErrNotFound = errors.New("key not found")

// Store is a flat string-keyed store of opaque values
type Store interface {
	// Get returns the value for key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
	// Set creates or replaces the value for key
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// Keys lists the keys starting with prefix, sorted
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// GetJSON reads key and decodes it into v. ErrNotFound is passed through
// unwrapped so callers can tell "absent" from "broken".
func GetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &MalformedError{Key: key, Err: err}
	}
	return nil
}

// SetJSON encodes v and stores it under key
func SetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}

// MalformedError reports a stored value that could not be decoded
type MalformedError struct {
	Key string
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed value for %s: %v", e.Key, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
