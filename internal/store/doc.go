// Package store persists serialized collections in a key-value backend.
//
// Each collection is written as one value under a fixed key (e.g. "albumsData"); there are no per-entity keys.
//
// Backends implement [Store]:
//   - [Memory] : process-local map, for tests and throwaway sessions
//   - [Filesystem] : one file per key under a root directory, replaced atomically
//   - [SQLite] : the collections table created by the embedded migrations
//   - [Postgres] : a collections table with a JSONB payload, via the pgx stdlib driver
//   - [S3] : one object per key in an S3-compatible bucket
//
// [Open] picks a backend from configuration. [Adapter] binds a Store to one key and contains its failures:
// reads never error and writes are best-effort, returning the error only as a durability acknowledgement.
package store
