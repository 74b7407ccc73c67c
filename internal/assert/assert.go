package assert

import (
	"strings"
	"testing"
)

func Equal[T comparable](t *testing.T, actual, expected T) {
	t.Helper()

	if actual != expected {
		t.Errorf("got: %v; want: %v", actual, expected)
	}
}

func StringContains(t *testing.T, actual, expectedSubstring string) {
	t.Helper()

	if !strings.Contains(actual, expectedSubstring) {
		t.Errorf("got: %q; expected to contain: %q", actual, expectedSubstring)
	}
}

// NilError fails the test if err is not nil.
func NilError(t *testing.T, actual error) {
	t.Helper()

	if actual != nil {
		t.Errorf("got: %v; expected: nil", actual)
	}
}

// Len fails the test if the map does not hold exactly n entries.
func Len[K comparable, V any](t *testing.T, m map[K]V, n int) {
	t.Helper()

	if len(m) != n {
		t.Errorf("got %d entries: %v; want: %d", len(m), m, n)
	}
}
