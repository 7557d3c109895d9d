package statusui

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/master-moose/aurorakvm/internal/roster"
	"github.com/master-moose/aurorakvm/internal/topology"
)

func TestServePushesSnapshotOverWebSocket(t *testing.T) {
	topo := topology.New(topology.Config{
		LocalScreens: []topology.Rect{{X: 0, Y: 0, Width: 1920, Height: 1080}},
	})
	rost := roster.New()
	rost.Insert("10.0.0.5:51000", roster.ConnectedClient{Name: "office-mac"})

	srv := New(topo, rost)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read message failed: %v", err)
	}
	if !strings.Contains(string(data), "office-mac") {
		t.Fatalf("expected snapshot to contain roster entry, got %s", data)
	}
	if !strings.Contains(string(data), "\"focus\":\"Local\"") {
		t.Fatalf("expected snapshot to report local focus, got %s", data)
	}
}
