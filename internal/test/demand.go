package test

import (
	"fmt"
	"strings"
	"testing"
)

// DemandEquality stops the test unless got equals want.
func DemandEquality[T comparable](t *testing.T, got, want T, tags ...any) {
	t.Helper()
	equal(t, t.Fatalf, got, want, tags)
}

// ExpectEquality reports a mismatch between got and want but lets the test
// continue.
func ExpectEquality[T comparable](t *testing.T, got, want T, tags ...any) bool {
	t.Helper()
	return equal(t, t.Errorf, got, want, tags)
}

// DemandSuccess stops the test unless v is true, a nil error or nil.
func DemandSuccess(t *testing.T, v any, tags ...any) {
	t.Helper()
	if !succeeded(t, v, tags) {
		t.Fatalf("%swant success, got %v", label(tags), v)
	}
}

// DemandFailure stops the test unless v is false or a non-nil error.
func DemandFailure(t *testing.T, v any, tags ...any) {
	t.Helper()
	if succeeded(t, v, tags) {
		t.Fatalf("%swant failure, got %v (%T)", label(tags), v, v)
	}
}

func equal[T comparable](t *testing.T, report func(string, ...any), got, want T, tags []any) bool {
	t.Helper()
	if got == want {
		return true
	}
	report("%s%T mismatch: got %v, want %v", label(tags), got, got, want)
	return false
}

func succeeded(t *testing.T, v any, tags []any) bool {
	t.Helper()
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return v
	case error:
		return false
	}
	t.Fatalf("%scannot judge success of %T", label(tags), v)
	return false
}

// label joins the tags into a message prefix.
func label(tags []any) string {
	if len(tags) == 0 {
		return ""
	}
	return strings.TrimSuffix(fmt.Sprintln(tags...), "\n") + ": "
}
