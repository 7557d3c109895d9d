package capture

import (
	"context"
	"testing"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
	"github.com/master-moose/aurorakvm/internal/topology"
)

type fakeHook struct {
	grab   bool
	events []kvmevent.Event
}

func (h *fakeHook) Grab() bool { return h.grab }

func (h *fakeHook) Run(ctx context.Context, onEvent func(kvmevent.Event) (swallow bool)) error {
	for _, ev := range h.events {
		onEvent(ev)
	}
	return nil
}

func testConfig() topology.Config {
	return topology.Config{
		LocalScreens: []topology.Rect{{X: 0, Y: 0, Width: 1920, Height: 1080}},
		Clients: []topology.ClientConfig{
			{Name: "right", Rect: topology.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}},
		},
	}
}

func TestLoopForwardsEventsOnceRemote(t *testing.T) {
	topo := topology.New(testConfig())
	hook := &fakeHook{grab: false, events: []kvmevent.Event{
		kvmevent.NewPointerMove(1920, 500), // absolute hand-off target
		kvmevent.NewKey(kvmevent.KeyReturn, true),
	}}

	var published []string
	loop := NewLoop(topo, hook, func(client string, ev kvmevent.Event) {
		published = append(published, client+":"+ev.String())
	})

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if topo.GetFocus() != topology.FocusRemote("right") {
		t.Fatalf("expected focus Remote(right), got %v", topo.GetFocus())
	}
	if loop.Metrics.FocusChanges.Load() != 1 {
		t.Fatalf("expected 1 focus change, got %d", loop.Metrics.FocusChanges.Load())
	}
	if loop.Metrics.EventsForwarded.Load() != 1 {
		t.Fatalf("expected 1 forwarded event (the trailing key), got %d", loop.Metrics.EventsForwarded.Load())
	}
	if len(published) != 1 || published[0] != "right:Key(Return,pressed=true)" {
		t.Fatalf("unexpected published events: %v", published)
	}
}

func TestLoopStaysLocalInsideLocalRect(t *testing.T) {
	topo := topology.New(testConfig())
	hook := &fakeHook{grab: true, events: []kvmevent.Event{
		kvmevent.NewPointerMove(500, 500),
	}}

	loop := NewLoop(topo, hook, func(string, kvmevent.Event) {
		t.Fatal("should not publish while focus is Local")
	})

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if loop.Metrics.EventsLocal.Load() != 1 {
		t.Fatalf("expected 1 local event, got %d", loop.Metrics.EventsLocal.Load())
	}
}
