//go:build linux

package platform

import (
	"testing"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
)

func TestXdotoolButtonMapsKnownButtons(t *testing.T) {
	cases := map[kvmevent.ButtonName]string{
		kvmevent.ButtonLeft:   "1",
		kvmevent.ButtonMiddle: "2",
		kvmevent.ButtonRight:  "3",
	}
	for name, want := range cases {
		got := xdotoolButton(kvmevent.Button{Name: name})
		if got != want {
			t.Fatalf("xdotoolButton(%v) = %q, want %q", name, got, want)
		}
	}
}

func TestXdotoolKeyNameMapsNamedKeys(t *testing.T) {
	if got := xdotoolKeyName(kvmevent.KeyReturn); got != "Return" {
		t.Fatalf("xdotoolKeyName(KeyReturn) = %q, want Return", got)
	}
	if got := xdotoolKeyName(kvmevent.KeyControlLeft); got != "ctrl" {
		t.Fatalf("xdotoolKeyName(KeyControlLeft) = %q, want ctrl", got)
	}
}

func TestXdotoolKeyNameFallsBackToStringer(t *testing.T) {
	if got := xdotoolKeyName(kvmevent.KeyKeyQ); got != "KeyQ" {
		t.Fatalf("xdotoolKeyName(KeyKeyQ) = %q, want KeyQ", got)
	}
}
