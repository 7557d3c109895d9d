package kvmevent

import "testing"

func TestKeyCodeStringKnown(t *testing.T) {
	if got := KeyEscape.String(); got != "Escape" {
		t.Errorf("KeyEscape.String() = %q", got)
	}
	if got := KeyKeyA.String(); got != "KeyA" {
		t.Errorf("KeyKeyA.String() = %q", got)
	}
}

func TestKeyCodeStringUnknown(t *testing.T) {
	if got := KeyCode(-1).String(); got != "Unknown" {
		t.Errorf("KeyCode(-1).String() = %q, want Unknown", got)
	}
}

func TestKeyByNameRoundTrip(t *testing.T) {
	for code, name := range keyNames {
		got, ok := KeyByName(name)
		if !ok {
			t.Fatalf("KeyByName(%q) not found", name)
		}
		if got != code {
			t.Errorf("KeyByName(%q) = %v, want %v", name, got, code)
		}
	}
}

func TestKeyByNameUnknown(t *testing.T) {
	if _, ok := KeyByName("NotARealKey"); ok {
		t.Error("expected KeyByName to report false for an unrecognized name")
	}
}
