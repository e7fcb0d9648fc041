// Package services wires the collection managers into the [Catalog] every front end (CLI, HTTP API, TUI) talks to.
//
// # Catalog
//
// A [Catalog] owns one [collection.Manager] per collection kind, all persisting through the same [store.Store]
// under distinct keys from [shared.CollectionsConfig]. Each manager serializes its own mutations, so the
// catalog can be shared by concurrent HTTP handlers without extra locking.
//
// # Validation
//
// The Add* methods validate raw input with the model constructors before handing the candidate to the manager.
// Validation failures wrap [shared.ErrInvalidInput]; identity collisions surface as [*models.DuplicateError].
package services
