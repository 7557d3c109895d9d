// Package roster tracks connected clients so the topology engine and any
// local status view can look them up: a sync.RWMutex-guarded map with
// Insert/Remove/Snapshot-style accessors.
package roster

import (
	"sync"
	"time"

	"github.com/master-moose/aurorakvm/internal/topology"
)

// ConnectedClient is one entry in the live roster.
type ConnectedClient struct {
	Addr        string
	Name        string
	SessionID   string // log-correlation id minted once per connection
	Screen      topology.Rect
	ConnectedAt time.Time
}

// Roster is the single lock-protected source of truth for connected
// clients. Snapshot copies under the lock so callers never perform I/O
// while holding it.
type Roster struct {
	mu      sync.RWMutex
	clients map[string]ConnectedClient
}

func New() *Roster {
	return &Roster{clients: make(map[string]ConnectedClient)}
}

func (r *Roster) Insert(addr string, c ConnectedClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[addr] = c
}

func (r *Roster) Remove(addr string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, addr)
}

func (r *Roster) Get(addr string) (ConnectedClient, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[addr]
	return c, ok
}

// Snapshot returns a point-in-time copy of all connected clients.
func (r *Roster) Snapshot() []ConnectedClient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ConnectedClient, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out
}

func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
