package collection

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/crate/internal/models"
	"github.com/desertthunder/crate/internal/shared"
	"github.com/desertthunder/crate/internal/store"
)

// Result is the snapshot produced by a mutation.
type Result[T any] struct {
	Items     []T
	Persisted bool // Persisted is false when the write-through save failed
}

// Manager loads, extends and resets one persisted collection.
type Manager[T models.Entity[T]] struct {
	adapter *store.Adapter
	seed    []T
	kind    string
	logger  *log.Logger
	mu      sync.Mutex
}

// New returns a manager persisting through adapter and falling back to seed.
//
// kind names the entity in duplicate messages ("album", "recipe"). seed is copied.
func New[T models.Entity[T]](adapter *store.Adapter, kind string, seed []T, logger *log.Logger) *Manager[T] {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager[T]{
		adapter: adapter,
		seed:    slices.Clone(seed),
		kind:    kind,
		logger:  shared.WithLogger(logger, "collection", adapter.Key()),
	}
}

// Seed returns a copy of the seed dataset.
func (m *Manager[T]) Seed() []T {
	return slices.Clone(m.seed)
}

// Load returns the persisted collection, or a copy of the seed when the store is empty or holds unusable data.
//
// Load never writes; the store stays empty until the first Add or Reset.
func (m *Manager[T]) Load(ctx context.Context) []T {
	raw, ok := m.adapter.LoadRaw(ctx)
	if !ok {
		return m.Seed()
	}

	items, err := Decode[T](raw)
	if err != nil {
		m.logger.Warn("discarding unreadable collection", "error", err)
		return m.Seed()
	}

	if err := Check(items); err != nil {
		m.logger.Warn("discarding inconsistent collection", "error", err)
		return m.Seed()
	}

	return items
}

// Add inserts candidate into current and persists the result.
//
// A candidate whose identity key matches an existing entity fails with [*models.DuplicateError] and nothing is written.
// Otherwise the candidate's id is replaced with max(id)+1 (0 for an empty collection), it is appended to a copy of
// current, and the copy is saved. current itself is never modified.
func (m *Manager[T]) Add(ctx context.Context, candidate T, current []T) (Result[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.add(ctx, candidate, current)
}

// Append adds candidate to the currently persisted collection.
//
// Load and Add happen under the same lock, so concurrent Appends can't both insert the same identity.
func (m *Manager[T]) Append(ctx context.Context, candidate T) (Result[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.add(ctx, candidate, m.Load(ctx))
}

// Reset persists the seed and returns a copy of it.
func (m *Manager[T]) Reset(ctx context.Context) Result[T] {
	m.mu.Lock()
	defer m.mu.Unlock()

	seed := m.Seed()
	return Result[T]{Items: seed, Persisted: m.save(ctx, seed)}
}

func (m *Manager[T]) add(ctx context.Context, candidate T, current []T) (Result[T], error) {
	key := models.KeyOf(candidate)
	for _, existing := range current {
		if models.KeyOf(existing) == key {
			title, secondary := existing.IdentityFields()
			m.logger.Debug("rejected duplicate", "key", key.String())
			return Result[T]{Items: current}, &models.DuplicateError{Kind: m.kind, Title: title, Secondary: secondary}
		}
	}

	next := make([]T, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, candidate.WithID(NextID(current)))

	return Result[T]{Items: next, Persisted: m.save(ctx, next)}, nil
}

// save writes items through the adapter and reports whether it succeeded.
func (m *Manager[T]) save(ctx context.Context, items []T) bool {
	raw, err := Encode(items)
	if err != nil {
		m.logger.Error("failed to encode collection", "error", err)
		return false
	}
	return m.adapter.SaveRaw(ctx, raw) == nil
}

// NextID returns max(id)+1 over items, or 0 when items is empty.
func NextID[T models.Entity[T]](items []T) int {
	next := 0
	for _, item := range items {
		if id := item.EntityID(); id >= next {
			next = id + 1
		}
	}
	return next
}

// Check verifies the collection invariants: non-negative unique ids, non-blank identity fields and unique identity keys.
func Check[T models.Entity[T]](items []T) error {
	ids := make(map[int]struct{}, len(items))
	keys := make(map[models.Identity]struct{}, len(items))

	for _, item := range items {
		id := item.EntityID()
		if id < 0 {
			return fmt.Errorf("negative id %d", id)
		}
		if _, dup := ids[id]; dup {
			return fmt.Errorf("id %d appears twice", id)
		}
		ids[id] = struct{}{}

		key := models.KeyOf(item)
		if key.Empty() {
			return fmt.Errorf("id %d has a blank title or secondary field", id)
		}
		if _, dup := keys[key]; dup {
			return fmt.Errorf("identity %q appears twice", key.String())
		}
		keys[key] = struct{}{}
	}
	return nil
}
