// Package discovery implements the UDP presence beacon: a server
// periodically announces itself on the local broadcast domain, and a
// client listens for a bounded window, keeping only announcements from
// private or loopback sources.
package discovery

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/master-moose/aurorakvm/internal/kvmerr"
	"github.com/master-moose/aurorakvm/internal/logging"
)

var log = logging.L("discovery")

const (
	// Port is the fixed UDP port both the beacon and the listener bind.
	Port = 8079

	// BroadcastInterval is how often a server re-announces itself.
	BroadcastInterval = 2 * time.Second

	// DefaultListenTimeout is how long Discover waits for announcements
	// before returning whatever it has collected.
	DefaultListenTimeout = 5 * time.Second

	broadcastAddr = "255.255.255.255"
	protocolVersion = 1
)

// Announcement is the payload a server beacons and a client decodes.
// Addr is filled in by Discover from the datagram's source address and
// is never part of the wire payload: a beacon doesn't reliably know its
// own outbound IP on a multi-homed host.
type Announcement struct {
	Name    string `json:"name"`
	Port    uint16 `json:"port"`
	Version uint32 `json:"version"`
	Addr    string `json:"-"`
}

// Beacon sends Announcement datagrams to the broadcast address every
// BroadcastInterval until ctx is canceled.
func Beacon(ctx context.Context, name string, port uint16) error {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{})
	if err != nil {
		return kvmerr.New(kvmerr.KindIo, "beacon listen", err)
	}
	defer conn.Close()

	if err := enableBroadcast(conn); err != nil {
		return kvmerr.New(kvmerr.KindIo, "enable broadcast", err)
	}

	dst := &net.UDPAddr{IP: net.ParseIP(broadcastAddr), Port: Port}
	announcement := Announcement{Name: name, Port: port, Version: protocolVersion}
	data, err := json.Marshal(announcement)
	if err != nil {
		return kvmerr.New(kvmerr.KindDecode, "marshal announcement", err)
	}

	ticker := time.NewTicker(BroadcastInterval)
	defer ticker.Stop()

	log.Info("beacon started", "name", name, "port", port, "interval", BroadcastInterval)
	for {
		if _, err := conn.WriteTo(data, dst); err != nil {
			log.Warn("beacon send failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Discover listens on Port for timeout, returning every distinct
// announcing IP whose source address is private (RFC1918) or loopback.
// An empty result means the caller should fall back to an explicit
// server address.
func Discover(ctx context.Context, timeout time.Duration) ([]Announcement, error) {
	if timeout <= 0 {
		timeout = DefaultListenTimeout
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{Port: Port})
	if err != nil {
		return nil, kvmerr.New(kvmerr.KindIo, "discover listen", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	conn.SetReadDeadline(deadline)

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	seen := make(map[string]bool)
	var results []Announcement

	buf := make([]byte, 4096)
	for {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			break
		}

		if addr == nil || !isPrivateOrLoopback(addr.IP) {
			continue
		}
		udpAddr := addr
		if seen[udpAddr.IP.String()] {
			continue
		}

		var a Announcement
		if err := json.Unmarshal(buf[:n], &a); err != nil {
			log.Warn("discard unparseable announcement", "from", udpAddr.IP, "error", err)
			continue
		}
		a.Addr = udpAddr.IP.String()

		seen[udpAddr.IP.String()] = true
		results = append(results, a)
	}

	return results, nil
}

var privateBlocks = func() []*net.IPNet {
	cidrs := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16", "127.0.0.0/8"}
	blocks := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, block, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(err)
		}
		blocks = append(blocks, block)
	}
	return blocks
}()

func isPrivateOrLoopback(ip net.IP) bool {
	for _, block := range privateBlocks {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}
