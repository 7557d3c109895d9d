// Package server implements the connection manager: it accepts client TCP
// connections, performs the handshake, registers into the live roster, and
// forwards events the capture loop routes to that client. Each accepted
// connection is submitted to a bounded worker pool so an overload sheds new
// connections instead of spawning unbounded goroutines, and shutdown can
// drain in-flight connections with a deadline.
package server

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"

	"github.com/master-moose/aurorakvm/internal/kvmerr"
	"github.com/master-moose/aurorakvm/internal/logging"
	"github.com/master-moose/aurorakvm/internal/roster"
	"github.com/master-moose/aurorakvm/internal/topology"
	"github.com/master-moose/aurorakvm/internal/wire"
	"github.com/master-moose/aurorakvm/internal/workerpool"
)

var log = logging.L("server")

// heartbeatInterval is how often idle (non-focused) subscribers receive a
// Heartbeat packet, so a dead peer is detected even when no input is
// currently routed to it.
const heartbeatInterval = 10 * time.Second

type Server struct {
	topo   *topology.Topology
	roster *roster.Roster
	bus    *Bus
	pool   *workerpool.Pool
	ln     net.Listener
}

func New(topo *topology.Topology) *Server {
	return &Server{
		topo:   topo,
		roster: roster.New(),
		bus:    NewBus(),
		pool:   workerpool.New(64, 256),
	}
}

func (s *Server) Roster() *roster.Roster { return s.roster }
func (s *Server) Bus() *Bus              { return s.bus }

// ListenAndServe binds addr and accepts connections until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return kvmerr.New(kvmerr.KindIo, "listen", err)
	}
	s.ln = ln
	log.Info("listening", "addr", addr)

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return kvmerr.New(kvmerr.KindIo, "accept", err)
			}
		}

		c := conn
		if !s.pool.Submit(func() { s.handleConn(ctx, c) }) {
			log.Warn("connection rejected, pool saturated", "remote", c.RemoteAddr())
			c.Close()
		}
	}
}

// Shutdown stops accepting new connections and drains in-flight ones.
func (s *Server) Shutdown(ctx context.Context) {
	if s.ln != nil {
		s.ln.Close()
	}
	s.pool.StopAccepting()
	s.pool.Drain(ctx)
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	addr := conn.RemoteAddr().String()
	sessionID := uuid.NewString()
	clog := logging.WithCommand(log, sessionID, "client")
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	pkt, err := wire.ReadPacket(conn)
	conn.SetReadDeadline(time.Time{})
	if err != nil {
		clog.Warn("handshake read failed", "remote", addr, "error", err)
		return
	}
	if pkt.Type != wire.PacketHandshake {
		clog.Warn("first packet was not a handshake", "remote", addr, "type", pkt.Type)
		return
	}
	if pkt.Version != wire.ProtocolVersion {
		clog.Warn("handshake rejected: version mismatch", "remote", addr, "version", pkt.Version)
		return
	}

	cfg := s.topo.GetConfig()
	if cfg.Secret != nil {
		if pkt.Secret == nil || *pkt.Secret != *cfg.Secret {
			clog.Warn("handshake rejected: secret mismatch", "remote", addr)
			return
		}
	}

	name := addr
	var screen topology.Rect
	if pkt.ScreenInfo != nil {
		name = pkt.ScreenInfo.Name
		screen = topology.Rect{X: pkt.ScreenInfo.X, Y: pkt.ScreenInfo.Y, Width: pkt.ScreenInfo.Width, Height: pkt.ScreenInfo.Height}
	}

	s.roster.Insert(addr, roster.ConnectedClient{
		Addr: addr, Name: name, SessionID: sessionID, Screen: screen, ConnectedAt: time.Now(),
	})
	defer s.roster.Remove(addr)

	sub := s.bus.Subscribe(name)
	defer s.bus.Unsubscribe(sub)

	clog.Info("client connected", "remote", addr, "name", name)
	s.writeLoop(conn, sub, clog)
	clog.Info("client disconnected", "remote", addr, "name", name)
}

func (s *Server) writeLoop(conn net.Conn, sub *Subscriber, clog *slog.Logger) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := wire.WritePacket(conn, wire.NewEvent(ev)); err != nil {
				clog.Warn("write failed, dropping connection", "error", err)
				return
			}
		case <-ticker.C:
			if err := wire.WritePacket(conn, wire.NewHeartbeat()); err != nil {
				clog.Warn("heartbeat write failed, dropping connection", "error", err)
				return
			}
		}
	}
}
