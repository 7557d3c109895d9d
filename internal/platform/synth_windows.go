//go:build windows

package platform

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
	"github.com/master-moose/aurorakvm/internal/logging"
)

var log = logging.L("platform")

var (
	user32           = syscall.NewLazyDLL("user32.dll")
	procSendInput    = user32.NewProc("SendInput")
	procSetCursorPos = user32.NewProc("SetCursorPos")
	procMapVK        = user32.NewProc("MapVirtualKeyW")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseeventfLeftDown   = 0x0002
	mouseeventfLeftUp     = 0x0004
	mouseeventfRightDown  = 0x0008
	mouseeventfRightUp    = 0x0010
	mouseeventfMiddleDown = 0x0020
	mouseeventfMiddleUp   = 0x0040
	mouseeventfWheel      = 0x0800

	keyeventfKeyUp       = 0x0002
	keyeventfExtendedKey = 0x0001

	mapvkVKToVSC = 0
)

type mouseInput struct {
	dx, dy      int32
	mouseData   uint32
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type keybdInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type rawInput struct {
	inputType uint32
	padding   [4]byte
	mi        mouseInput
}

// sendInputSynthesizer drives the Win32 SendInput API directly, the way
// any Windows remote-input tool ultimately must: SetCursorPos for plain
// hover moves (cheap, auto-coalesces), SendInput for clicks/keys/wheel.
type sendInputSynthesizer struct {
	mu         sync.Mutex
	buttonDown bool
}

func NewSynthesizer() Synthesizer {
	return &sendInputSynthesizer{}
}

func (s *sendInputSynthesizer) Synthesize(ev kvmevent.Event) error {
	switch ev.Kind {
	case kvmevent.KindPointerMove:
		return s.moveTo(int32(ev.X), int32(ev.Y))
	case kvmevent.KindButton:
		return s.button(ev.Btn, ev.Pressed)
	case kvmevent.KindWheel:
		return s.wheel(ev.DY)
	case kvmevent.KindKey:
		return s.key(ev.Code, ev.Pressed)
	default:
		return fmt.Errorf("platform: unhandled event kind %s", ev.Kind)
	}
}

func (s *sendInputSynthesizer) moveTo(x, y int32) error {
	ret, _, _ := procSetCursorPos.Call(uintptr(x), uintptr(y))
	if ret == 0 {
		return fmt.Errorf("platform: SetCursorPos failed")
	}
	return nil
}

func (s *sendInputSynthesizer) button(b kvmevent.Button, pressed bool) error {
	s.mu.Lock()
	s.buttonDown = pressed
	s.mu.Unlock()

	var flags uint32
	switch {
	case b.Name == kvmevent.ButtonRight && pressed:
		flags = mouseeventfRightDown
	case b.Name == kvmevent.ButtonRight && !pressed:
		flags = mouseeventfRightUp
	case b.Name == kvmevent.ButtonMiddle && pressed:
		flags = mouseeventfMiddleDown
	case b.Name == kvmevent.ButtonMiddle && !pressed:
		flags = mouseeventfMiddleUp
	case pressed:
		flags = mouseeventfLeftDown
	default:
		flags = mouseeventfLeftUp
	}

	in := rawInput{inputType: inputMouse}
	in.mi.dwFlags = flags
	return s.dispatch(&in)
}

func (s *sendInputSynthesizer) wheel(dy int32) error {
	in := rawInput{inputType: inputMouse}
	in.mi.dwFlags = mouseeventfWheel
	in.mi.mouseData = uint32(dy * 120)
	return s.dispatch(&in)
}

func (s *sendInputSynthesizer) key(code kvmevent.KeyCode, pressed bool) error {
	vk := keyToVK(code)
	if vk == 0 {
		log.Warn("no VK mapping for key, dropping event", "key", code.String())
		return fmt.Errorf("platform: unmapped key %s", code.String())
	}

	in := rawInput{inputType: inputKeyboard}
	ki := (*keybdInput)(unsafe.Pointer(&in.mi))
	ki.wVk = vk
	scCode, _, _ := procMapVK.Call(uintptr(vk), mapvkVKToVSC)
	ki.wScan = uint16(scCode)
	if isExtendedVK(vk) {
		ki.dwFlags |= keyeventfExtendedKey
	}
	if !pressed {
		ki.dwFlags |= keyeventfKeyUp
	}
	return s.dispatch(&in)
}

func (s *sendInputSynthesizer) dispatch(in *rawInput) error {
	ret, _, _ := procSendInput.Call(1, uintptr(unsafe.Pointer(in)), unsafe.Sizeof(*in))
	if ret == 0 {
		return fmt.Errorf("platform: SendInput failed")
	}
	return nil
}

func isExtendedVK(vk uint16) bool {
	switch vk {
	case 0x21, 0x22, 0x23, 0x24, 0x25, 0x26, 0x27, 0x28, 0x2D, 0x2E, 0x5B, 0x5C, 0x90, 0x91, 0x2C:
		return true
	}
	return false
}

func keyToVK(code kvmevent.KeyCode) uint16 {
	if vk, ok := letterAndDigitVK(code); ok {
		return vk
	}
	switch code {
	case kvmevent.KeyReturn:
		return 0x0D
	case kvmevent.KeyTab:
		return 0x09
	case kvmevent.KeySpace:
		return 0x20
	case kvmevent.KeyBackspace:
		return 0x08
	case kvmevent.KeyEscape:
		return 0x1B
	case kvmevent.KeyDelete:
		return 0x2E
	case kvmevent.KeyInsert:
		return 0x2D
	case kvmevent.KeyHome:
		return 0x24
	case kvmevent.KeyEnd:
		return 0x23
	case kvmevent.KeyPageUp:
		return 0x21
	case kvmevent.KeyPageDown:
		return 0x22
	case kvmevent.KeyUpArrow:
		return 0x26
	case kvmevent.KeyDownArrow:
		return 0x28
	case kvmevent.KeyLeftArrow:
		return 0x25
	case kvmevent.KeyRightArrow:
		return 0x27
	case kvmevent.KeyControlLeft, kvmevent.KeyControlRight:
		return 0x11
	case kvmevent.KeyAlt, kvmevent.KeyAltGr:
		return 0x12
	case kvmevent.KeyShiftLeft, kvmevent.KeyShiftRight:
		return 0x10
	case kvmevent.KeyMetaLeft, kvmevent.KeyMetaRight:
		return 0x5B
	case kvmevent.KeyCapsLock:
		return 0x14
	case kvmevent.KeyNumLock:
		return 0x90
	case kvmevent.KeyScrollLock:
		return 0x91
	case kvmevent.KeyPrintScreen:
		return 0x2C
	case kvmevent.KeyPause:
		return 0x13
	default:
		return 0
	}
}

// letterAndDigitVK exploits that on a US layout VK_A..VK_Z and
// VK_0..VK_9 equal the ASCII codes of 'A'..'Z' and '0'..'9'.
func letterAndDigitVK(code kvmevent.KeyCode) (uint16, bool) {
	name := code.String()
	if len(name) == 4 && name[:3] == "Key" {
		c := name[3]
		if c >= 'A' && c <= 'Z' {
			return uint16(c), true
		}
	}
	if len(name) == 4 && name[:3] == "Num" {
		c := name[3]
		if c >= '0' && c <= '9' {
			return uint16(c), true
		}
	}
	return 0, false
}
