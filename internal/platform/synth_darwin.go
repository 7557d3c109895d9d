//go:build darwin && cgo

package platform

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

static void moveMouse(double x, double y) {
	CGEventRef event = CGEventCreateMouseEvent(NULL, kCGEventMouseMoved, CGPointMake(x, y), kCGMouseButtonLeft);
	CGEventPost(kCGHIDEventTap, event);
	CFRelease(event);
}

static void clickMouse(double x, double y, int down, int button) {
	CGEventType type;
	CGMouseButton btn;
	switch (button) {
	case 1:
		btn = kCGMouseButtonRight;
		type = down ? kCGEventRightMouseDown : kCGEventRightMouseUp;
		break;
	case 2:
		btn = kCGMouseButtonCenter;
		type = down ? kCGEventOtherMouseDown : kCGEventOtherMouseUp;
		break;
	default:
		btn = kCGMouseButtonLeft;
		type = down ? kCGEventLeftMouseDown : kCGEventLeftMouseUp;
	}
	CGEventRef event = CGEventCreateMouseEvent(NULL, type, CGPointMake(x, y), btn);
	CGEventPost(kCGHIDEventTap, event);
	CFRelease(event);
}

static void scrollMouse(int32_t delta) {
	CGEventRef event = CGEventCreateScrollWheelEvent(NULL, kCGScrollEventUnitLine, 1, delta);
	CGEventPost(kCGHIDEventTap, event);
	CFRelease(event);
}

static void keyEvent(uint16_t vk, int down) {
	CGEventRef event = CGEventCreateKeyboardEvent(NULL, (CGKeyCode)vk, down != 0);
	CGEventPost(kCGHIDEventTap, event);
	CFRelease(event);
}
*/
import "C"

import (
	"fmt"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
)

// quartzSynthesizer posts events through the macOS Quartz Event Services,
// the standard way to inject input on Darwin without a kernel extension.
type quartzSynthesizer struct{}

func NewSynthesizer() Synthesizer {
	return &quartzSynthesizer{}
}

func (s *quartzSynthesizer) Synthesize(ev kvmevent.Event) error {
	switch ev.Kind {
	case kvmevent.KindPointerMove:
		C.moveMouse(C.double(ev.X), C.double(ev.Y))
		return nil
	case kvmevent.KindButton:
		down := C.int(0)
		if ev.Pressed {
			down = 1
		}
		C.clickMouse(C.double(ev.X), C.double(ev.Y), down, C.int(quartzButton(ev.Btn)))
		return nil
	case kvmevent.KindWheel:
		C.scrollMouse(C.int32_t(ev.DY))
		return nil
	case kvmevent.KindKey:
		vk := quartzKeyCode(ev.Code)
		if vk == 0xFFFF {
			return fmt.Errorf("platform: unmapped key %s", ev.Code.String())
		}
		down := C.int(0)
		if ev.Pressed {
			down = 1
		}
		C.keyEvent(C.uint16_t(vk), down)
		return nil
	default:
		return fmt.Errorf("platform: unhandled event kind %s", ev.Kind)
	}
}

func quartzButton(b kvmevent.Button) int {
	switch b.Name {
	case kvmevent.ButtonRight:
		return 1
	case kvmevent.ButtonMiddle:
		return 2
	default:
		return 0
	}
}

// quartzKeyCode maps to the fixed macOS virtual key codes (layout
// independent, same table used by every Carbon/Quartz input tool).
func quartzKeyCode(code kvmevent.KeyCode) uint16 {
	switch code {
	case kvmevent.KeyReturn:
		return 0x24
	case kvmevent.KeyTab:
		return 0x30
	case kvmevent.KeySpace:
		return 0x31
	case kvmevent.KeyBackspace:
		return 0x33
	case kvmevent.KeyEscape:
		return 0x35
	case kvmevent.KeyDelete:
		return 0x75
	case kvmevent.KeyHome:
		return 0x73
	case kvmevent.KeyEnd:
		return 0x77
	case kvmevent.KeyPageUp:
		return 0x74
	case kvmevent.KeyPageDown:
		return 0x79
	case kvmevent.KeyUpArrow:
		return 0x7E
	case kvmevent.KeyDownArrow:
		return 0x7D
	case kvmevent.KeyLeftArrow:
		return 0x7B
	case kvmevent.KeyRightArrow:
		return 0x7C
	case kvmevent.KeyControlLeft, kvmevent.KeyControlRight:
		return 0x3B
	case kvmevent.KeyAlt:
		return 0x3A
	case kvmevent.KeyShiftLeft, kvmevent.KeyShiftRight:
		return 0x38
	case kvmevent.KeyMetaLeft, kvmevent.KeyMetaRight:
		return 0x37
	default:
		return 0xFFFF
	}
}
