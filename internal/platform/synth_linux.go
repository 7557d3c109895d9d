//go:build linux

package platform

import (
	"fmt"
	"os/exec"
	"strconv"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
)

// xdotoolSynthesizer shells out to xdotool, the same approach taken for
// every X11 action in this package: no cgo, no direct Xlib bindings, just
// a subprocess per action.
type xdotoolSynthesizer struct{}

func NewSynthesizer() Synthesizer {
	return &xdotoolSynthesizer{}
}

func (s *xdotoolSynthesizer) Synthesize(ev kvmevent.Event) error {
	switch ev.Kind {
	case kvmevent.KindPointerMove:
		return exec.Command("xdotool", "mousemove", strconv.Itoa(int(ev.X)), strconv.Itoa(int(ev.Y))).Run()
	case kvmevent.KindButton:
		btn := xdotoolButton(ev.Btn)
		action := "mousedown"
		if !ev.Pressed {
			action = "mouseup"
		}
		return exec.Command("xdotool", action, btn).Run()
	case kvmevent.KindWheel:
		direction := "4"
		delta := ev.DY
		if delta < 0 {
			direction = "5"
			delta = -delta
		}
		for i := int32(0); i < delta; i++ {
			if err := exec.Command("xdotool", "click", direction).Run(); err != nil {
				return err
			}
		}
		return nil
	case kvmevent.KindKey:
		action := "keydown"
		if !ev.Pressed {
			action = "keyup"
		}
		return exec.Command("xdotool", action, xdotoolKeyName(ev.Code)).Run()
	default:
		return fmt.Errorf("platform: unhandled event kind %s", ev.Kind)
	}
}

func xdotoolButton(b kvmevent.Button) string {
	switch b.Name {
	case kvmevent.ButtonRight:
		return "3"
	case kvmevent.ButtonMiddle:
		return "2"
	default:
		return "1"
	}
}

func xdotoolKeyName(k kvmevent.KeyCode) string {
	switch k {
	case kvmevent.KeyReturn:
		return "Return"
	case kvmevent.KeyTab:
		return "Tab"
	case kvmevent.KeySpace:
		return "space"
	case kvmevent.KeyBackspace:
		return "BackSpace"
	case kvmevent.KeyEscape:
		return "Escape"
	case kvmevent.KeyDelete:
		return "Delete"
	case kvmevent.KeyHome:
		return "Home"
	case kvmevent.KeyEnd:
		return "End"
	case kvmevent.KeyPageUp:
		return "Page_Up"
	case kvmevent.KeyPageDown:
		return "Page_Down"
	case kvmevent.KeyUpArrow:
		return "Up"
	case kvmevent.KeyDownArrow:
		return "Down"
	case kvmevent.KeyLeftArrow:
		return "Left"
	case kvmevent.KeyRightArrow:
		return "Right"
	case kvmevent.KeyControlLeft, kvmevent.KeyControlRight:
		return "ctrl"
	case kvmevent.KeyAlt, kvmevent.KeyAltGr:
		return "alt"
	case kvmevent.KeyShiftLeft, kvmevent.KeyShiftRight:
		return "shift"
	case kvmevent.KeyMetaLeft, kvmevent.KeyMetaRight:
		return "super"
	default:
		return k.String()
	}
}
