package kvmerr

import (
	"errors"
	"testing"
)

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := New(KindIo, "dial", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause")
	}
}

func TestErrorStringIncludesKindAndOp(t *testing.T) {
	err := New(KindConfigParse, "unmarshal config", errors.New("unexpected token"))
	got := err.Error()
	want := "ConfigParse: unmarshal config: unexpected token"
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestErrorStringWithoutCause(t *testing.T) {
	err := New(KindBroadcastLag, "publish", nil)
	if err.Error() != "BroadcastLag: publish" {
		t.Fatalf("unexpected error string: %q", err.Error())
	}
}

func TestKindStringUnknown(t *testing.T) {
	var k Kind = 99
	if k.String() != "Unknown" {
		t.Fatalf("expected Unknown for out-of-range Kind, got %q", k.String())
	}
}
