package store

import (
	"testing"
)

// NewTestStore creates a Store backed by a private in-memory database that is
// closed when the test ends. This is only intended for use in tests.
func NewTestStore(tb testing.TB) *Store {
	tb.Helper()

	s, err := OpenMemory()
	if err != nil {
		tb.Fatalf("opening test store: %v", err)
	}
	tb.Cleanup(func() { s.Close() })
	return s
}
