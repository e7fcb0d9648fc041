package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/crate/internal/shared"
)

// Driver identifies a storage backend.
type Driver string

const (
	DriverMemory     Driver = "memory"
	DriverFilesystem Driver = "fs"
	DriverSQLite     Driver = "sqlite"
	DriverPostgres   Driver = "postgres"
	DriverS3         Driver = "s3"
)

// ErrNotFound is returned by Get when nothing was ever written under a key.
var ErrNotFound = fmt.Errorf("key %w", shared.ErrNotFound)

// Store is a key-value store holding one serialized collection per key.
type Store interface {
	// Get returns the last value written under key or [ErrNotFound].
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value under key.
	Put(ctx context.Context, key string, value []byte) error
	Driver() Driver
	Close() error
}

// validateKey rejects keys that can't map onto every backend (file names, object keys, primary keys).
func validateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty key", shared.ErrInvalidArgument)
	case strings.Contains(key, ".."), strings.ContainsAny(key, `/\`):
		return fmt.Errorf("%w: key %q must be a plain name", shared.ErrInvalidArgument, key)
	}
	return nil
}
