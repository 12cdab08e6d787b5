// Package datastore persists cleaned asset batches in SQLite and tracks
// per-asset check-in progress (descriptor written, proxy copied) across
// pipeline runs.
package datastore
