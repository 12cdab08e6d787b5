package testsupport

import (
	"context"
	"testing"

	"gordiva/internal/asset"
	"gordiva/internal/config"
	"gordiva/internal/datastore"
)

// MustOpenStore opens a datastore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *datastore.Store {
	t.Helper()

	store, err := datastore.Open(cfg)
	if err != nil {
		t.Fatalf("datastore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// LoadBatch replaces the assets table with the given records.
func LoadBatch(t testing.TB, store *datastore.Store, records []asset.Record) {
	t.Helper()

	if err := store.ReplaceBatch(context.Background(), records); err != nil {
		t.Fatalf("store.ReplaceBatch: %v", err)
	}
}
