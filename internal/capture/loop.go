// Package capture runs the dedicated input-capture-and-routing loop: a
// platform hook delivered on a thread pinned away from the cooperative
// scheduler via runtime.LockOSThread, since platform input APIs are
// typically thread-affine.
package capture

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
	"github.com/master-moose/aurorakvm/internal/logging"
	"github.com/master-moose/aurorakvm/internal/topology"
)

var log = logging.L("capture")

// Hook is the platform input-capture contract: an implementation installs
// a global input hook and invokes OnEvent for every captured event. Grab
// reports whether this platform can swallow events from the local OS
// (true-grab) or only observe them (listen-only — local movement still
// happens even while routed to a remote client, a known limitation on
// platforms without a real input grab).
type Hook interface {
	Grab() bool
	Run(ctx context.Context, onEvent func(kvmevent.Event) (swallow bool)) error
}

// Metrics are lock-free counters exposed for the status view and tests.
type Metrics struct {
	EventsLocal     atomic.Uint64
	EventsForwarded atomic.Uint64
	FocusChanges    atomic.Uint64
}

// Loop drives topology.Advance from captured input and publishes routed
// events to the connection manager.
type Loop struct {
	topo    *topology.Topology
	hook    Hook
	publish func(client string, ev kvmevent.Event)
	Metrics Metrics
}

func NewLoop(topo *topology.Topology, hook Hook, publish func(client string, ev kvmevent.Event)) *Loop {
	return &Loop{topo: topo, hook: hook, publish: publish}
}

// ErrHookFailed wraps a platform hook installation/run failure: non-fatal,
// the server degrades to a passive network server with no local capture.
var ErrHookFailed = errors.New("capture: platform hook failed")

// Run installs the platform hook on a locked OS thread and blocks until
// ctx is done or the hook errors. Callers should run this in its own
// goroutine.
func (l *Loop) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	absolute := !l.hook.Grab()

	err := l.hook.Run(ctx, func(ev kvmevent.Event) bool {
		return l.handle(ev, absolute)
	})
	if err != nil {
		log.Error("platform hook failed", "error", err)
		return errors.Join(ErrHookFailed, err)
	}
	return nil
}

func (l *Loop) handle(ev kvmevent.Event, absolute bool) bool {
	var prev, next = l.topo.GetFocus(), l.topo.GetFocus()
	var swallow bool

	switch ev.Kind {
	case kvmevent.KindPointerMove:
		var consumed bool
		if absolute {
			prev, next, consumed = l.topo.Advance(ev.X, ev.Y, true)
		} else {
			prev, next, consumed = l.topo.Advance(ev.X, ev.Y, false)
		}
		swallow = !consumed
	default:
		next = l.topo.GetFocus()
		swallow = next.Remote
	}

	if next != prev {
		l.Metrics.FocusChanges.Add(1)
		log.Info("focus changed", "from", prev.String(), "to", next.String())
	}

	// The move that crosses from the local desktop onto a remote screen is
	// the last one the local OS sees: it passes through and is not forwarded.
	handOff := !prev.Remote && next.Remote
	if handOff {
		swallow = false
	}

	if next.Remote && !handOff {
		l.Metrics.EventsForwarded.Add(1)
		l.publish(next.Client, ev)
	} else {
		l.Metrics.EventsLocal.Add(1)
	}

	return swallow
}
