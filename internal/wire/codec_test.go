package wire

import (
	"bytes"
	"net"
	"testing"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
)

func createSocketPair(t *testing.T) (net.Conn, net.Conn) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	clientDone := make(chan net.Conn, 1)
	go func() {
		c, err := net.Dial("tcp", ln.Addr().String())
		if err != nil {
			t.Errorf("dial: %v", err)
			clientDone <- nil
			return
		}
		clientDone <- c
	}()

	server, err := ln.Accept()
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	client := <-clientDone
	if client == nil {
		t.Fatal("dial failed")
	}
	return server, client
}

func TestWriteReadPacketRoundTrip(t *testing.T) {
	server, client := createSocketPair(t)
	defer server.Close()
	defer client.Close()

	secret := "sekrit"
	sent := NewHandshake(ProtocolVersion, &secret, &ScreenInfo{Name: "left", Width: 1920, Height: 1080})

	errCh := make(chan error, 1)
	go func() { errCh <- WritePacket(client, sent) }()

	got, err := ReadPacket(server)
	if err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("WritePacket: %v", err)
	}

	if got.Type != PacketHandshake || got.Version != ProtocolVersion {
		t.Fatalf("unexpected packet: %+v", got)
	}
	if got.Secret == nil || *got.Secret != secret {
		t.Fatalf("secret not round-tripped: %+v", got.Secret)
	}
	if got.ScreenInfo == nil || got.ScreenInfo.Width != 1920 {
		t.Fatalf("screen info not round-tripped: %+v", got.ScreenInfo)
	}
}

func TestWriteReadPacketEventRoundTrip(t *testing.T) {
	server, client := createSocketPair(t)
	defer server.Close()
	defer client.Close()

	ev := kvmevent.NewKey(kvmevent.KeyReturn, true)
	errCh := make(chan error, 1)
	go func() { errCh <- WritePacket(client, NewEvent(ev)) }()

	got, err := ReadPacket(server)
	if err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("WritePacket: %v", err)
	}

	if got.Type != PacketEvent || got.Event == nil {
		t.Fatalf("unexpected packet: %+v", got)
	}
	decoded := got.Event.Decode()
	if decoded.Kind != kvmevent.KindKey || decoded.Code != kvmevent.KeyReturn || !decoded.Pressed {
		t.Fatalf("event not round-tripped: %+v", decoded)
	}
}

func TestReadPacketRejectsOversizedFrame(t *testing.T) {
	server, client := createSocketPair(t)
	defer server.Close()
	defer client.Close()

	header := make([]byte, 4)
	oversized := uint32(MaxFrameSize + 1)
	header[0] = byte(oversized >> 24)
	header[1] = byte(oversized >> 16)
	header[2] = byte(oversized >> 8)
	header[3] = byte(oversized)

	go client.Write(header)

	_, err := ReadPacket(server)
	if err != ErrFrameTooLarge {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
}

func TestWritePacketRejectsPayloadAboveMax(t *testing.T) {
	var buf bytes.Buffer
	secret := string(make([]byte, MaxFrameSize+1))
	err := WritePacket(&buf, NewHandshake(ProtocolVersion, &secret, nil))
	if err == nil {
		t.Fatal("expected error for oversized payload")
	}
}
