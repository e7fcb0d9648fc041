// Package collection implements the persisted, deduplicating collection manager.
//
// A [Manager] owns one collection: a seed dataset and the [store.Adapter] for the collection's key.
// It exposes three transitions over immutable snapshots:
//   - Load: decode the persisted collection, falling back to the seed when nothing usable is stored
//   - Add: reject identity-key duplicates, assign max(id)+1, append copy-on-write and write through
//   - Reset: persist the seed and return it
//
// Persistence failures never fail an operation. [Result.Persisted] carries the durability acknowledgement instead.
// Mutations are serialized per manager, so one Manager may be shared between goroutines.
package collection
