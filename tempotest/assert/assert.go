// Package assert provides minimal assertion helpers for tests, so that
// the usual guard clauses do not drown the test logic.
package assert

import (
	"reflect"
	"testing"
)

// Nil fails the test if given value is not nil.
func Nil(t testing.TB, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal fails the test if the two values are not equal.
func Equal(t testing.TB, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %+v\n got %+v", want, got)
	}
}

// Panics runs given function and fails the test if it does not panic.
func Panics(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr fails the test if got error is not of the want kind. It
// understands the error matching of registered root errors.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	type iser interface {
		Is(error) bool
	}
	if e, ok := want.(iser); ok && e.Is(got) {
		return
	}
	t.Fatalf("want %q error, got %q", want, got)
}
