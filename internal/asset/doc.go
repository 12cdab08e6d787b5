// Package asset defines the record model shared by every stage of the
// Gorilla to Dalet migration: one AssetRecord per merged export row, the
// NULL sentinel convention inherited from the upstream exports, and the
// status flags tracked in the local datastore.
package asset
