//go:build linux

package capture

import (
	"context"
	"strconv"
	"strings"
	"time"

	"os/exec"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
)

const pollInterval = 16 * time.Millisecond // ~60 Hz, matches xdotool's own latency budget

// pollingHook tracks the pointer by shelling out to xdotool the same way
// the Linux synthesis side does, since a true low-level input grab needs
// either root evdev access or an X11 extension this module doesn't carry.
// Listen-only: Grab reports false, so the local cursor keeps moving even
// while focus is routed to a remote client.
type pollingHook struct{}

func NewHook() Hook {
	return &pollingHook{}
}

func (h *pollingHook) Grab() bool { return false }

func (h *pollingHook) Run(ctx context.Context, onEvent func(kvmevent.Event) (swallow bool)) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var lastX, lastY float64
	haveLast := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			x, y, err := queryPointer()
			if err != nil {
				continue
			}
			if haveLast && x == lastX && y == lastY {
				continue
			}
			lastX, lastY, haveLast = x, y, true
			onEvent(kvmevent.Event{Kind: kvmevent.KindPointerMove, X: x, Y: y})
		}
	}
}

func queryPointer() (x, y float64, err error) {
	out, err := exec.Command("xdotool", "getmouselocation", "--shell").Output()
	if err != nil {
		return 0, 0, err
	}
	for _, line := range strings.Split(string(out), "\n") {
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		v, convErr := strconv.ParseFloat(parts[1], 64)
		if convErr != nil {
			continue
		}
		switch parts[0] {
		case "X":
			x = v
		case "Y":
			y = v
		}
	}
	return x, y, nil
}
