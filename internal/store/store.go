// Package store holds the key-value persistence used to mirror application state.
// Values are whole JSON documents; every write replaces the previous value.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("store: key not found")

// Store is a string-keyed blob store with last-write-wins semantics.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
}

// Load decodes the JSON value under key into dst.
// It reports false (and no error) when the key is absent.
func Load(ctx context.Context, s Store, key string, dst any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Save encodes v as JSON and writes it under key.
func Save(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
