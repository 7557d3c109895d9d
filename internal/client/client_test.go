package client

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
	"github.com/master-moose/aurorakvm/internal/wire"
)

type fakeSynthesizer struct {
	mu     sync.Mutex
	events []kvmevent.Event
}

func (f *fakeSynthesizer) Synthesize(ev kvmevent.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeSynthesizer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func TestClientHandshakeAndSynthesizesEvents(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		pkt, err := wire.ReadPacket(conn)
		if err != nil || pkt.Type != wire.PacketHandshake {
			t.Errorf("expected handshake, got %+v err=%v", pkt, err)
			return
		}

		wire.WritePacket(conn, wire.NewEvent(kvmevent.NewKey(kvmevent.KeyReturn, true)))
	}()

	synth := &fakeSynthesizer{}
	c := New(Config{ServerAddr: ln.Addr().String(), Screen: wire.ScreenInfo{Name: "right"}}, synth)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go c.Run(ctx)

	deadline := time.Now().Add(1500 * time.Millisecond)
	for synth.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if synth.count() != 1 {
		t.Fatalf("expected 1 synthesized event, got %d", synth.count())
	}

	<-serverDone
}

func TestJitterStaysWithinBounds(t *testing.T) {
	base := 2 * time.Second
	for i := 0; i < 20; i++ {
		d := jitter(base)
		if d < 0 {
			t.Fatalf("jitter produced negative duration: %v", d)
		}
		if d > base+base {
			t.Fatalf("jitter produced implausibly large duration: %v", d)
		}
	}
}
