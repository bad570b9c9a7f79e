// Package helpers provides shared test constructors.
package helpers

import (
	"testing"

	"github.com/ammu2244/chatgpt-gateway/store"
)

// NewTestKV creates an in-memory KV for tests.
func NewTestKV(t *testing.T) store.KV {
	t.Helper()

	kv, err := store.NewKV(store.DriverMemory)
	if err != nil {
		t.Fatalf("failed to create memory kv: %v", err)
	}

	t.Cleanup(func() {
		_ = kv.Close()
	})

	return kv
}

// NewTestSQLiteKV creates a sqlite KV backed by an in-memory database.
func NewTestSQLiteKV(t *testing.T) store.KV {
	t.Helper()

	kv, err := store.NewKV(store.DriverSQLite, store.WithSQLiteDSN(":memory:"))
	if err != nil {
		t.Fatalf("failed to create sqlite kv: %v", err)
	}

	t.Cleanup(func() {
		_ = kv.Close()
	})

	return kv
}

// NewTestSessionStore creates a session store on an in-memory KV.
func NewTestSessionStore(t *testing.T) *store.SessionStore {
	t.Helper()
	return store.NewSessionStore(NewTestKV(t))
}
