// Package kvmevent defines the platform-neutral input event model shared by
// the capture loop, the wire codec, and the synthesis adapters.
package kvmevent

import "fmt"

// Kind discriminates the variant carried by an Event.
type Kind int

const (
	KindPointerMove Kind = iota
	KindButton
	KindKey
	KindWheel
)

func (k Kind) String() string {
	switch k {
	case KindPointerMove:
		return "PointerMove"
	case KindButton:
		return "Button"
	case KindKey:
		return "Key"
	case KindWheel:
		return "Wheel"
	default:
		return "Unknown"
	}
}

// ButtonName is a closed set of recognized pointer buttons, with Other
// carrying a platform-raw code for anything outside that set.
type ButtonName int

const (
	ButtonLeft ButtonName = iota
	ButtonRight
	ButtonMiddle
	ButtonOther
)

// Button identifies a pointer button, including an escape hatch for
// platform-specific codes reported outside the common three.
type Button struct {
	Name ButtonName
	Code uint32 // only meaningful when Name == ButtonOther
}

func (b Button) String() string {
	switch b.Name {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	default:
		return fmt.Sprintf("Other(%d)", b.Code)
	}
}

// Event is the algebraic input event exchanged between the capture loop,
// the wire codec, and the synthesis adapters. Only the fields relevant to
// Kind are populated; the zero value of the others is ignored.
type Event struct {
	Kind Kind

	// PointerMove
	X, Y float64

	// Button
	Btn     Button
	Pressed bool

	// Key
	Code KeyCode

	// Wheel
	DX, DY int32
}

func NewPointerMove(x, y float64) Event {
	return Event{Kind: KindPointerMove, X: x, Y: y}
}

func NewButton(btn Button, pressed bool) Event {
	return Event{Kind: KindButton, Btn: btn, Pressed: pressed}
}

func NewKey(code KeyCode, pressed bool) Event {
	return Event{Kind: KindKey, Code: code, Pressed: pressed}
}

func NewWheel(dx, dy int32) Event {
	return Event{Kind: KindWheel, DX: dx, DY: dy}
}

func (e Event) String() string {
	switch e.Kind {
	case KindPointerMove:
		return fmt.Sprintf("PointerMove(%.1f,%.1f)", e.X, e.Y)
	case KindButton:
		return fmt.Sprintf("Button(%s,pressed=%v)", e.Btn, e.Pressed)
	case KindKey:
		return fmt.Sprintf("Key(%s,pressed=%v)", e.Code, e.Pressed)
	case KindWheel:
		return fmt.Sprintf("Wheel(%d,%d)", e.DX, e.DY)
	default:
		return "Event(?)"
	}
}
