// Package server exposes the catalog's collections over a JSON HTTP API.
//
// # Routes
//
// Every collection is mounted under /api/<name> with the same three routes:
//
//	GET  /api/<name>        list the collection (seed when nothing is persisted)
//	POST /api/<name>        add one entity; 201, 409 on duplicate, 422 on invalid input
//	POST /api/<name>/reset  restore the seed
//
// Mutations carry the X-Crate-Persisted header, "true" when the write reached the store.
// A failed write never fails the request; the in-memory result is returned either way.
//
// /healthz reports the storage driver and /metrics serves Prometheus metrics from a
// registry owned by the [Server].
//
// # Middleware
//
// Requests pass through request id assignment (uuid), structured logging with
// charmbracelet/log, chi's panic recoverer, and on mutation routes a per-client token
// bucket from golang.org/x/time/rate sized by [shared.ServerConfig.RequestsPerMinute].
package server
