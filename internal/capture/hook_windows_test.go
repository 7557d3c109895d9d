//go:build windows

package capture

import (
	"testing"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
)

func TestTranslateMouseMove(t *testing.T) {
	data := &msllhookstruct{pt: struct{ x, y int32 }{x: 120, y: 340}}
	ev, ok := translateMouse(wmMouseMove, data)
	if !ok {
		t.Fatal("expected ok")
	}
	if ev.Kind != kvmevent.KindPointerMove || ev.X != 120 || ev.Y != 340 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestTranslateMouseWheelDirection(t *testing.T) {
	data := &msllhookstruct{mouseData: uint32(int16(120)) << 16}
	ev, ok := translateMouse(wmMouseWheel, data)
	if !ok || ev.Kind != kvmevent.KindWheel || ev.DY != 1 {
		t.Fatalf("unexpected event: %+v, ok=%v", ev, ok)
	}
}

func TestVKToKeyCodeLetters(t *testing.T) {
	if got := vkToKeyCode('A'); got != kvmevent.KeyKeyA {
		t.Fatalf("vkToKeyCode('A') = %v, want KeyKeyA", got)
	}
	if got := vkToKeyCode('5'); got != kvmevent.KeyNum5 {
		t.Fatalf("vkToKeyCode('5') = %v, want KeyNum5", got)
	}
}

func TestVKToKeyCodeReturn(t *testing.T) {
	if got := vkToKeyCode(0x0D); got != kvmevent.KeyReturn {
		t.Fatalf("vkToKeyCode(0x0D) = %v, want KeyReturn", got)
	}
}
