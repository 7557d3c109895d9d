package server

import (
	"sync"
	"sync/atomic"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
)

// BusCapacity is the bounded per-subscriber queue depth.
const BusCapacity = 100

// Subscriber is a per-connection handle into the Bus. Each connection's
// write loop ranges over Events until Unsubscribe closes it.
type Subscriber struct {
	client string
	ch     chan kvmevent.Event
}

func (s *Subscriber) Events() <-chan kvmevent.Event { return s.ch }

// Bus is a bounded, targeted fan-out: Publish addresses an event to the
// subscriber registered for a given client name. If that subscriber's
// queue is full, the oldest queued event is dropped to make room
// (drop-oldest-on-slow-consumer), and BroadcastLag is incremented so a
// slow consumer condition is observable.
//
// Targeted delivery (as opposed to broadcasting every event to every
// connected client) is the delivery model this bus implements — see
// DESIGN.md for the rationale.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber
	BroadcastLag atomic.Uint64
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[string]*Subscriber)}
}

func (b *Bus) Subscribe(client string) *Subscriber {
	sub := &Subscriber{client: client, ch: make(chan kvmevent.Event, BusCapacity)}
	b.mu.Lock()
	b.subscribers[client] = sub
	b.mu.Unlock()
	return sub
}

func (b *Bus) Unsubscribe(sub *Subscriber) {
	b.mu.Lock()
	if b.subscribers[sub.client] == sub {
		delete(b.subscribers, sub.client)
	}
	b.mu.Unlock()
	close(sub.ch)
}

// Publish addresses an event to the named client's subscriber, if any.
func (b *Bus) Publish(client string, ev kvmevent.Event) {
	b.mu.RLock()
	sub, ok := b.subscribers[client]
	b.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case sub.ch <- ev:
		return
	default:
	}

	// Queue full: drop the oldest queued event and retry once.
	select {
	case <-sub.ch:
		b.BroadcastLag.Add(1)
	default:
	}
	select {
	case sub.ch <- ev:
	default:
	}
}
