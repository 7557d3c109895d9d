//go:build darwin && cgo

package capture

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>
#include <stdlib.h>

extern uintptr_t goTapCallback(CGEventType type, CGEventRef event);

static CGEventRef tapCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon) {
	uintptr_t swallow = goTapCallback(type, event);
	if (swallow) {
		return NULL;
	}
	return event;
}

static CFMachPortRef installTap() {
	CGEventMask mask =
		CGEventMaskBit(kCGEventMouseMoved) |
		CGEventMaskBit(kCGEventLeftMouseDown) | CGEventMaskBit(kCGEventLeftMouseUp) |
		CGEventMaskBit(kCGEventRightMouseDown) | CGEventMaskBit(kCGEventRightMouseUp) |
		CGEventMaskBit(kCGEventOtherMouseDown) | CGEventMaskBit(kCGEventOtherMouseUp) |
		CGEventMaskBit(kCGEventScrollWheel) |
		CGEventMaskBit(kCGEventKeyDown) | CGEventMaskBit(kCGEventKeyUp);
	return CGEventTapCreate(kCGHIDEventTap, kCGHeadInsertEventTap, kCGEventTapOptionDefault, mask, tapCallback, NULL);
}
*/
import "C"

import (
	"context"
	"fmt"
	"sync"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
)

// eventTapHook installs a CGEventTap, the macOS equivalent of a global
// low-level input hook. Requires the process to hold Accessibility
// permission; CGEventTapCreate returns NULL otherwise.
type eventTapHook struct{}

func NewHook() Hook {
	return &eventTapHook{}
}

func (h *eventTapHook) Grab() bool { return true }

var (
	activeMu  sync.Mutex
	activeCB  func(kvmevent.Event) bool
)

func (h *eventTapHook) Run(ctx context.Context, onEvent func(kvmevent.Event) (swallow bool)) error {
	activeMu.Lock()
	activeCB = onEvent
	activeMu.Unlock()
	defer func() {
		activeMu.Lock()
		activeCB = nil
		activeMu.Unlock()
	}()

	tap := C.installTap()
	if tap == 0 {
		return fmt.Errorf("capture: CGEventTapCreate failed, check accessibility permission")
	}
	defer C.CFRelease(C.CFTypeRef(tap))

	runLoopSource := C.CFMachPortCreateRunLoopSource(0, tap, 0)
	defer C.CFRelease(C.CFTypeRef(runLoopSource))

	runLoop := C.CFRunLoopGetCurrent()
	C.CFRunLoopAddSource(runLoop, runLoopSource, C.kCFRunLoopCommonModes)
	C.CGEventTapEnable(tap, C.true)

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		C.CFRunLoopStop(runLoop)
		close(done)
	}()

	C.CFRunLoopRun()
	<-done
	return ctx.Err()
}

//export goTapCallback
func goTapCallback(eventType C.CGEventType, event C.CGEventRef) C.uintptr_t {
	activeMu.Lock()
	cb := activeCB
	activeMu.Unlock()
	if cb == nil {
		return 0
	}

	ev, ok := translateCGEvent(eventType, event)
	if !ok {
		return 0
	}
	if cb(ev) {
		return 1
	}
	return 0
}

func translateCGEvent(eventType C.CGEventType, event C.CGEventRef) (kvmevent.Event, bool) {
	loc := C.CGEventGetLocation(event)
	switch eventType {
	case C.kCGEventMouseMoved:
		return kvmevent.Event{Kind: kvmevent.KindPointerMove, X: float64(loc.x), Y: float64(loc.y)}, true
	case C.kCGEventLeftMouseDown, C.kCGEventLeftMouseUp:
		return kvmevent.Event{Kind: kvmevent.KindButton, Btn: kvmevent.Button{Name: kvmevent.ButtonLeft}, Pressed: eventType == C.kCGEventLeftMouseDown}, true
	case C.kCGEventRightMouseDown, C.kCGEventRightMouseUp:
		return kvmevent.Event{Kind: kvmevent.KindButton, Btn: kvmevent.Button{Name: kvmevent.ButtonRight}, Pressed: eventType == C.kCGEventRightMouseDown}, true
	case C.kCGEventOtherMouseDown, C.kCGEventOtherMouseUp:
		return kvmevent.Event{Kind: kvmevent.KindButton, Btn: kvmevent.Button{Name: kvmevent.ButtonMiddle}, Pressed: eventType == C.kCGEventOtherMouseDown}, true
	case C.kCGEventScrollWheel:
		delta := int32(C.CGEventGetIntegerValueField(event, C.kCGScrollWheelEventDeltaAxis1))
		return kvmevent.Event{Kind: kvmevent.KindWheel, DY: delta}, true
	case C.kCGEventKeyDown, C.kCGEventKeyUp:
		vk := uint16(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode))
		return kvmevent.Event{Kind: kvmevent.KindKey, Code: vkToKeyCode(vk), Pressed: eventType == C.kCGEventKeyDown}, true
	default:
		return kvmevent.Event{}, false
	}
}

func vkToKeyCode(vk uint16) kvmevent.KeyCode {
	switch vk {
	case 0x24:
		return kvmevent.KeyReturn
	case 0x30:
		return kvmevent.KeyTab
	case 0x31:
		return kvmevent.KeySpace
	case 0x33:
		return kvmevent.KeyBackspace
	case 0x35:
		return kvmevent.KeyEscape
	case 0x75:
		return kvmevent.KeyDelete
	case 0x73:
		return kvmevent.KeyHome
	case 0x77:
		return kvmevent.KeyEnd
	case 0x74:
		return kvmevent.KeyPageUp
	case 0x79:
		return kvmevent.KeyPageDown
	case 0x7E:
		return kvmevent.KeyUpArrow
	case 0x7D:
		return kvmevent.KeyDownArrow
	case 0x7B:
		return kvmevent.KeyLeftArrow
	case 0x7C:
		return kvmevent.KeyRightArrow
	case 0x3B:
		return kvmevent.KeyControlLeft
	case 0x3A:
		return kvmevent.KeyAlt
	case 0x38:
		return kvmevent.KeyShiftLeft
	case 0x37:
		return kvmevent.KeyMetaLeft
	default:
		return kvmevent.KeyUnknown
	}
}
