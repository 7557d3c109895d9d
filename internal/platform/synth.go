// Package platform adapts kvmevent.Event to and from the host operating
// system: Synthesizer implementations inject events into the local input
// queue (the client side of a hand-off), and ListScreens reports the
// local display geometry a client announces in its handshake.
package platform

import "github.com/master-moose/aurorakvm/internal/kvmevent"

// Synthesizer injects a received Event into the local input queue as if
// it originated from a physical device.
type Synthesizer interface {
	Synthesize(ev kvmevent.Event) error
}

// Screen describes one connected display output.
type Screen struct {
	Name      string
	X, Y      int32
	Width     uint32
	Height    uint32
	IsPrimary bool
}
