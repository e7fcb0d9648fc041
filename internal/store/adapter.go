package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/crate/internal/shared"
)

// Adapter binds a [Store] to the single key one collection is persisted under.
type Adapter struct {
	store  Store
	key    string
	logger *log.Logger
}

// NewAdapter returns an adapter for key. A nil logger defaults to [shared.NewLogger].
func NewAdapter(s Store, key string, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Adapter{
		store:  s,
		key:    key,
		logger: shared.WithLogger(logger, "collection", key, "driver", s.Driver()),
	}
}

// Key returns the store key this adapter reads and writes.
func (a *Adapter) Key() string { return a.key }

// LoadRaw returns the last serialized collection written under the key.
//
// It never fails: a missing key reports false silently, any other read error is logged and also reports false.
func (a *Adapter) LoadRaw(ctx context.Context) (string, bool) {
	data, err := a.store.Get(ctx, a.key)
	if errors.Is(err, ErrNotFound) {
		a.logger.Debug("no persisted collection")
		return "", false
	}
	if err != nil {
		a.logger.Warn("failed to read persisted collection", "error", err)
		return "", false
	}
	return string(data), true
}

// SaveRaw writes serialized under the key.
//
// Failures are logged and returned so callers can report durability, but they never undo the in-memory change that triggered the save.
func (a *Adapter) SaveRaw(ctx context.Context, serialized string) error {
	if err := a.store.Put(ctx, a.key, []byte(serialized)); err != nil {
		a.logger.Error("failed to persist collection", "error", err)
		return fmt.Errorf("%w: %q: %w", shared.ErrPersistFailed, a.key, err)
	}
	a.logger.Debug("persisted collection", "bytes", len(serialized))
	return nil
}
