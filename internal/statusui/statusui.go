// Package statusui serves a local read-only status page: the roster
// snapshot and current focus, pushed over a WebSocket at the 2 Hz the
// operator-facing GUI is specified to poll at. It only ever reads the
// topology and roster, never mutates them.
package statusui

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/master-moose/aurorakvm/internal/hostinfo"
	"github.com/master-moose/aurorakvm/internal/logging"
	"github.com/master-moose/aurorakvm/internal/roster"
	"github.com/master-moose/aurorakvm/internal/topology"
)

var log = logging.L("statusui")

const pollInterval = 500 * time.Millisecond // 2 Hz

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// snapshot is the payload pushed to each connected status client.
type snapshot struct {
	Host    string                   `json:"host"`
	Focus   string                   `json:"focus"`
	Clients []roster.ConnectedClient `json:"clients"`
}

// Server serves the status WebSocket endpoint over a local listener.
type Server struct {
	topo   *topology.Topology
	roster *roster.Roster
	host   string
}

func New(topo *topology.Topology, rost *roster.Roster) *Server {
	return &Server{topo: topo, roster: rost, host: hostinfo.Hostname()}
}

// Handler returns the http.Handler to mount at the status endpoint.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.serveWS)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := snapshot{
				Host:    s.host,
				Focus:   s.topo.GetFocus().String(),
				Clients: s.roster.Snapshot(),
			}
			data, err := json.Marshal(snap)
			if err != nil {
				log.Warn("marshal snapshot failed", "error", err)
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}
}

// ListenAndServe binds addr and serves the status endpoint until ctx is
// canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/status", s.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
