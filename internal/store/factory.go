package store

import (
	"context"
	"fmt"

	"github.com/desertthunder/crate/internal/shared"
)

// Open selects and opens a [Store] from configuration.
//
// An empty driver means sqlite. The SQLite backend runs pending migrations on open.
func Open(ctx context.Context, storage shared.StorageConfig, database shared.DatabaseConfig) (Store, error) {
	driver := Driver(storage.Driver)
	if driver == "" {
		driver = DriverSQLite
	}

	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFilesystem:
		return NewFilesystem(storage.FSRoot)
	case DriverSQLite:
		return OpenSQLite(ctx, database)
	case DriverPostgres:
		return NewPostgres(ctx, storage.PostgresDSN)
	case DriverS3:
		return NewS3(ctx, storage.S3)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownDriver, storage.Driver)
	}
}
