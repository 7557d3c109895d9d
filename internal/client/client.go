// Package client implements the remote side of a hand-off: it dials the
// server, performs the handshake, and synthesizes every Event packet it
// receives into the local input queue via a platform.Synthesizer.
package client

import (
	"context"
	"math/rand"
	"net"
	"time"

	"github.com/master-moose/aurorakvm/internal/kvmerr"
	"github.com/master-moose/aurorakvm/internal/logging"
	"github.com/master-moose/aurorakvm/internal/platform"
	"github.com/master-moose/aurorakvm/internal/wire"
)

var log = logging.L("client")

const (
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
	backoffFactor  = 2.0
	jitterFactor   = 0.3
	readTimeout    = 30 * time.Second
	dialTimeout    = 10 * time.Second
)

// Config describes this client's identity and where to connect.
type Config struct {
	ServerAddr string
	Screen     wire.ScreenInfo
	Secret     *string
}

// Client owns the TCP connection to the server and drives the
// reconnect-with-backoff loop the same way a long-lived agent connection
// would: dial, handshake, pump incoming packets until the connection
// drops, then retry with exponential backoff and jitter.
type Client struct {
	cfg   Config
	synth platform.Synthesizer
}

func New(cfg Config, synth platform.Synthesizer) *Client {
	return &Client{cfg: cfg, synth: synth}
}

// Run blocks, reconnecting as needed, until ctx is canceled.
func (c *Client) Run(ctx context.Context) error {
	backoff := initialBackoff

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		conn, err := c.connect(ctx)
		if err != nil {
			log.Warn("connect failed", "error", err)

			sleep := jitter(backoff)
			log.Info("retrying", "delay", sleep)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sleep):
			}

			backoff = time.Duration(float64(backoff) * backoffFactor)
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		backoff = initialBackoff
		c.readLoop(ctx, conn)
		conn.Close()
	}
}

func (c *Client) connect(ctx context.Context) (net.Conn, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.cfg.ServerAddr)
	if err != nil {
		return nil, kvmerr.New(kvmerr.KindIo, "dial", err)
	}

	screen := c.cfg.Screen
	if err := wire.WritePacket(conn, wire.NewHandshake(wire.ProtocolVersion, c.cfg.Secret, &screen)); err != nil {
		conn.Close()
		return nil, kvmerr.New(kvmerr.KindIo, "send handshake", err)
	}

	log.Info("connected", "server", c.cfg.ServerAddr, "name", screen.Name)
	return conn, nil
}

func (c *Client) readLoop(ctx context.Context, conn net.Conn) {
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		pkt, err := wire.ReadPacket(conn)
		if err != nil {
			if ctx.Err() == nil {
				log.Warn("read failed, reconnecting", "error", err)
			}
			return
		}

		switch pkt.Type {
		case wire.PacketEvent:
			if pkt.Event == nil {
				continue
			}
			ev := pkt.Event.Decode()
			if err := c.synth.Synthesize(ev); err != nil {
				log.Warn("synthesize failed", "error", err)
			}
		case wire.PacketHeartbeat:
			// Read deadline reset above is sufficient liveness tracking.
		default:
			log.Warn("unexpected packet type after handshake", "type", pkt.Type)
		}
	}
}

func jitter(base time.Duration) time.Duration {
	delta := time.Duration(float64(base) * jitterFactor * (rand.Float64()*2 - 1))
	sleep := base + delta
	if sleep < 0 {
		sleep = base
	}
	return sleep
}
