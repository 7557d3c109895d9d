package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
	"github.com/master-moose/aurorakvm/internal/topology"
	"github.com/master-moose/aurorakvm/internal/wire"
)

func TestHandshakeAndTargetedDelivery(t *testing.T) {
	topo := topology.New(topology.Config{
		Clients: []topology.ClientConfig{{Name: "right"}},
	})
	s := New(topo)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ln.Close() // we only needed a free port
	addr := ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- s.ListenAndServe(ctx, addr) }()
	time.Sleep(50 * time.Millisecond)

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := wire.WritePacket(conn, wire.NewHandshake(wire.ProtocolVersion, nil, &wire.ScreenInfo{Name: "right", Width: 1920, Height: 1080})); err != nil {
		t.Fatalf("handshake write: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.Roster().Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.Roster().Len() != 1 {
		t.Fatalf("expected 1 roster entry after handshake, got %d", s.Roster().Len())
	}
	if client, ok := s.Roster().Get(conn.LocalAddr().String()); ok && client.SessionID == "" {
		t.Fatal("expected roster entry to carry a non-empty session id")
	}

	s.Bus().Publish("right", kvmevent.NewKey(kvmevent.KeyReturn, true))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	pkt, err := wire.ReadPacket(conn)
	if err != nil {
		t.Fatalf("expected to receive routed event: %v", err)
	}
	if pkt.Type != wire.PacketEvent || pkt.Event == nil || pkt.Event.Key != "Return" {
		t.Fatalf("unexpected packet: %+v", pkt)
	}
}

func TestHandshakeRejectedOnVersionMismatch(t *testing.T) {
	topo := topology.New(topology.Config{})
	s := New(topo)

	ln, _ := net.Listen("tcp", "127.0.0.1:0")
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.ListenAndServe(ctx, addr)
	time.Sleep(50 * time.Millisecond)

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	wire.WritePacket(conn, wire.NewHandshake(999, nil, nil))

	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	buf := make([]byte, 1)
	if _, err := conn.Read(buf); err == nil {
		t.Fatal("expected connection to be closed after version mismatch")
	}
}
