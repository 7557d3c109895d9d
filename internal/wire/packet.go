package wire

import "github.com/master-moose/aurorakvm/internal/kvmevent"

// ProtocolVersion is exchanged in the handshake and must match exactly;
// a mismatch is a HandshakeRejected error.
const ProtocolVersion uint32 = 1

// MaxFrameSize bounds a single encoded frame (length-prefix value and the
// payload that follows it). Frames above this are rejected without
// reading the payload.
const MaxFrameSize = 1 << 20 // 1 MiB

// ScreenInfo describes the sender's local display geometry, carried in the
// Handshake so the server can route input to the rectangle the client
// actually occupies.
type ScreenInfo struct {
	Name   string `json:"name"`
	X      int32  `json:"x"`
	Y      int32  `json:"y"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// PacketType discriminates the Packet union for JSON (de)serialization.
type PacketType string

const (
	PacketHandshake PacketType = "handshake"
	PacketEvent     PacketType = "event"
	PacketHeartbeat PacketType = "heartbeat"
)

// Packet is the tagged union carried over the wire: a client handshake, a
// routed input event, or an idle-connection heartbeat.
type Packet struct {
	Type PacketType `json:"type"`

	// Handshake fields.
	Version    uint32      `json:"version,omitempty"`
	Secret     *string     `json:"secret,omitempty"`
	ScreenInfo *ScreenInfo `json:"screen_info,omitempty"`

	// Event field.
	Event *EventPayload `json:"event,omitempty"`
}

// EventPayload is the wire-safe encoding of a kvmevent.Event.
type EventPayload struct {
	Kind    string `json:"kind"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Button  string  `json:"button,omitempty"`
	ButtonCode uint32 `json:"button_code,omitempty"`
	Pressed bool    `json:"pressed,omitempty"`
	Key     string  `json:"key,omitempty"`
	DX      int32   `json:"dx,omitempty"`
	DY      int32   `json:"dy,omitempty"`
}

func NewHandshake(version uint32, secret *string, screen *ScreenInfo) Packet {
	return Packet{Type: PacketHandshake, Version: version, Secret: secret, ScreenInfo: screen}
}

func NewHeartbeat() Packet {
	return Packet{Type: PacketHeartbeat}
}

func NewEvent(ev kvmevent.Event) Packet {
	return Packet{Type: PacketEvent, Event: encodeEvent(ev)}
}

func encodeEvent(ev kvmevent.Event) *EventPayload {
	p := &EventPayload{Kind: ev.Kind.String()}
	switch ev.Kind {
	case kvmevent.KindPointerMove:
		p.X, p.Y = ev.X, ev.Y
	case kvmevent.KindButton:
		p.Button = ev.Btn.String()
		p.ButtonCode = ev.Btn.Code
		p.Pressed = ev.Pressed
	case kvmevent.KindKey:
		p.Key = ev.Code.String()
		p.Pressed = ev.Pressed
	case kvmevent.KindWheel:
		p.DX, p.DY = ev.DX, ev.DY
	}
	return p
}

// Decode converts a wire EventPayload back into a kvmevent.Event.
func (p *EventPayload) Decode() kvmevent.Event {
	switch p.Kind {
	case "PointerMove":
		return kvmevent.NewPointerMove(p.X, p.Y)
	case "Button":
		btn := kvmevent.Button{Code: p.ButtonCode}
		switch p.Button {
		case "Left":
			btn.Name = kvmevent.ButtonLeft
		case "Right":
			btn.Name = kvmevent.ButtonRight
		case "Middle":
			btn.Name = kvmevent.ButtonMiddle
		default:
			btn.Name = kvmevent.ButtonOther
		}
		return kvmevent.NewButton(btn, p.Pressed)
	case "Key":
		code, _ := kvmevent.KeyByName(p.Key)
		return kvmevent.NewKey(code, p.Pressed)
	case "Wheel":
		return kvmevent.NewWheel(p.DX, p.DY)
	default:
		return kvmevent.Event{}
	}
}
