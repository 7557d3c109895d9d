//go:build windows

package capture

import (
	"context"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
)

var (
	user32             = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHook = user32.NewProc("SetWindowsHookExW")
	procUnhookWindows  = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHook   = user32.NewProc("CallNextHookEx")
	procGetMessage     = user32.NewProc("GetMessageW")
	procPostThreadMsg  = user32.NewProc("PostThreadMessageW")
)

const (
	whMouseLL   = 14
	whKeyboardLL = 13

	wmMouseMove  = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp  = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp  = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp  = 0x0208
	wmMouseWheel = 0x020A
	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105

	wmQuit = 0x0012
)

type msllhookstruct struct {
	pt          struct{ x, y int32 }
	mouseData   uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

type kbdllhookstruct struct {
	vkCode      uint32
	scanCode    uint32
	flags       uint32
	time        uint32
	dwExtraInfo uintptr
}

// lowLevelHook installs the WH_MOUSE_LL / WH_KEYBOARD_LL global hooks,
// the only way to observe (and optionally swallow) input system-wide on
// Windows without an elevated driver.
type lowLevelHook struct {
	onEvent    func(kvmevent.Event) bool
	mouseHook  windows.Handle
	kbHook     windows.Handle
	threadID   uint32
}

func NewHook() Hook {
	return &lowLevelHook{}
}

func (h *lowLevelHook) Grab() bool { return true }

func (h *lowLevelHook) Run(ctx context.Context, onEvent func(kvmevent.Event) (swallow bool)) error {
	h.onEvent = onEvent
	h.threadID = windows.GetCurrentThreadId()

	mouseCB := windows.NewCallback(h.mouseProc)
	kbCB := windows.NewCallback(h.keyboardProc)

	mouseHook, _, err := procSetWindowsHook.Call(whMouseLL, mouseCB, 0, 0)
	if mouseHook == 0 {
		return fmt.Errorf("capture: SetWindowsHookExW(mouse) failed: %w", err)
	}
	h.mouseHook = windows.Handle(mouseHook)
	defer procUnhookWindows.Call(mouseHook)

	kbHook, _, err := procSetWindowsHook.Call(whKeyboardLL, kbCB, 0, 0)
	if kbHook == 0 {
		return fmt.Errorf("capture: SetWindowsHookExW(keyboard) failed: %w", err)
	}
	h.kbHook = windows.Handle(kbHook)
	defer procUnhookWindows.Call(kbHook)

	go func() {
		<-ctx.Done()
		procPostThreadMsg.Call(uintptr(h.threadID), wmQuit, 0, 0)
	}()

	var msg struct {
		hwnd    uintptr
		message uint32
		wParam  uintptr
		lParam  uintptr
		time    uint32
		pt      struct{ x, y int32 }
	}
	for {
		ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if ret == 0 || ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (h *lowLevelHook) mouseProc(nCode int32, wParam uintptr, lParam uintptr) uintptr {
	if nCode >= 0 {
		data := (*msllhookstruct)(unsafe.Pointer(lParam))
		ev, ok := translateMouse(uint32(wParam), data)
		if ok && h.onEvent(ev) {
			return 1
		}
	}
	ret, _, _ := procCallNextHook.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

func (h *lowLevelHook) keyboardProc(nCode int32, wParam uintptr, lParam uintptr) uintptr {
	if nCode >= 0 {
		data := (*kbdllhookstruct)(unsafe.Pointer(lParam))
		ev, ok := translateKey(uint32(wParam), data)
		if ok && h.onEvent(ev) {
			return 1
		}
	}
	ret, _, _ := procCallNextHook.Call(0, uintptr(nCode), wParam, lParam)
	return ret
}

func translateMouse(msg uint32, data *msllhookstruct) (kvmevent.Event, bool) {
	switch msg {
	case wmMouseMove:
		return kvmevent.Event{Kind: kvmevent.KindPointerMove, X: float64(data.pt.x), Y: float64(data.pt.y)}, true
	case wmLButtonDown, wmLButtonUp:
		return kvmevent.Event{Kind: kvmevent.KindButton, Btn: kvmevent.Button{Name: kvmevent.ButtonLeft}, Pressed: msg == wmLButtonDown}, true
	case wmRButtonDown, wmRButtonUp:
		return kvmevent.Event{Kind: kvmevent.KindButton, Btn: kvmevent.Button{Name: kvmevent.ButtonRight}, Pressed: msg == wmRButtonDown}, true
	case wmMButtonDown, wmMButtonUp:
		return kvmevent.Event{Kind: kvmevent.KindButton, Btn: kvmevent.Button{Name: kvmevent.ButtonMiddle}, Pressed: msg == wmMButtonDown}, true
	case wmMouseWheel:
		delta := int32(int16(data.mouseData >> 16))
		return kvmevent.Event{Kind: kvmevent.KindWheel, DY: delta / 120}, true
	default:
		return kvmevent.Event{}, false
	}
}

func translateKey(msg uint32, data *kbdllhookstruct) (kvmevent.Event, bool) {
	switch msg {
	case wmKeyDown, wmSysKeyDown, wmKeyUp, wmSysKeyUp:
		code := vkToKeyCode(uint16(data.vkCode))
		pressed := msg == wmKeyDown || msg == wmSysKeyDown
		return kvmevent.Event{Kind: kvmevent.KindKey, Code: code, Pressed: pressed}, true
	default:
		return kvmevent.Event{}, false
	}
}

// vkToKeyCode is the inverse of the synthesis side's keyToVK: translates a
// captured Win32 virtual-key code back into the symbolic KeyCode shared
// across the wire protocol.
func vkToKeyCode(vk uint16) kvmevent.KeyCode {
	switch {
	case vk >= 'A' && vk <= 'Z':
		if code, ok := kvmevent.KeyByName("Key" + string(rune(vk))); ok {
			return code
		}
	case vk >= '0' && vk <= '9':
		if code, ok := kvmevent.KeyByName("Num" + string(rune(vk))); ok {
			return code
		}
	}
	switch vk {
	case 0x0D:
		return kvmevent.KeyReturn
	case 0x09:
		return kvmevent.KeyTab
	case 0x20:
		return kvmevent.KeySpace
	case 0x08:
		return kvmevent.KeyBackspace
	case 0x1B:
		return kvmevent.KeyEscape
	case 0x2E:
		return kvmevent.KeyDelete
	case 0x2D:
		return kvmevent.KeyInsert
	case 0x24:
		return kvmevent.KeyHome
	case 0x23:
		return kvmevent.KeyEnd
	case 0x21:
		return kvmevent.KeyPageUp
	case 0x22:
		return kvmevent.KeyPageDown
	case 0x26:
		return kvmevent.KeyUpArrow
	case 0x28:
		return kvmevent.KeyDownArrow
	case 0x25:
		return kvmevent.KeyLeftArrow
	case 0x27:
		return kvmevent.KeyRightArrow
	case 0x11:
		return kvmevent.KeyControlLeft
	case 0x12:
		return kvmevent.KeyAlt
	case 0x10:
		return kvmevent.KeyShiftLeft
	case 0x5B:
		return kvmevent.KeyMetaLeft
	case 0x14:
		return kvmevent.KeyCapsLock
	case 0x90:
		return kvmevent.KeyNumLock
	case 0x91:
		return kvmevent.KeyScrollLock
	case 0x2C:
		return kvmevent.KeyPrintScreen
	case 0x13:
		return kvmevent.KeyPause
	default:
		return kvmevent.KeyUnknown
	}
}
