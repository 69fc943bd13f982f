package testsupport

import (
	"context"
	"testing"

	"capcorpus/internal/config"
	"capcorpus/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// SeedChannel saves a channel row for tests.
func SeedChannel(t testing.TB, st *store.Store, id, title string) store.Channel {
	t.Helper()

	ch := store.Channel{ID: id, Title: title, Query: title}
	if err := st.SaveChannel(context.Background(), ch); err != nil {
		t.Fatalf("store.SaveChannel: %v", err)
	}
	return ch
}
