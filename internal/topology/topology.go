// Package topology implements the hand-off/hand-back state machine that
// decides, from the current virtual-cursor position, whether input stays
// local or routes to a connected client.
package topology

import "sync"

// Rect is a half-open screen rectangle: [X, X+Width) x [Y, Y+Height).
type Rect struct {
	X, Y          int32
	Width, Height uint32
}

// Contains reports whether (x, y) falls within the half-open rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.X) && x < float64(r.X)+float64(r.Width) &&
		y >= float64(r.Y) && y < float64(r.Y)+float64(r.Height)
}

// ClientConfig describes one remote client's identity and screen geometry.
type ClientConfig struct {
	Name string
	IP   string
	Rect Rect
}

// Config is the whole-struct, atomically-replaceable topology
// configuration: UpdateConfig never partially mutates state.
type Config struct {
	Port            uint16
	Secret          *string
	InputGrabHotkey *string // reserved, currently inert
	LocalScreens    []Rect
	Clients         []ClientConfig
}

// Focus is either Local, or Remote naming exactly one client.
type Focus struct {
	Remote bool
	Client string
}

var FocusLocal = Focus{}

func FocusRemote(client string) Focus {
	return Focus{Remote: true, Client: client}
}

func (f Focus) String() string {
	if !f.Remote {
		return "Local"
	}
	return "Remote(" + f.Client + ")"
}

// Topology is the single mutex-protected owner of focus and virtual-cursor
// state. Only the capture loop mutates focus and cursor; config reloads
// replace the configuration under the same lock.
type Topology struct {
	mu     sync.Mutex
	config Config
	focus  Focus
	cursor [2]float64
}

func New(cfg Config) *Topology {
	return &Topology{config: cfg, focus: FocusLocal}
}

// InsideLocal reports whether (x, y) is inside any local screen rect.
func (t *Topology) InsideLocal(x, y float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.insideLocalLocked(x, y)
}

func (t *Topology) insideLocalLocked(x, y float64) bool {
	for _, r := range t.config.LocalScreens {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// FindClientAt returns the first client (in config order) whose rect
// contains (x, y).
func (t *Topology) FindClientAt(x, y float64) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.findClientAtLocked(x, y)
}

func (t *Topology) findClientAtLocked(x, y float64) (string, bool) {
	for _, c := range t.config.Clients {
		if c.Rect.Contains(x, y) {
			return c.Name, true
		}
	}
	return "", false
}

// InsideClient reports whether (x, y) is inside the named client's rect.
func (t *Topology) InsideClient(name string, x, y float64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range t.config.Clients {
		if c.Name == name {
			return c.Rect.Contains(x, y)
		}
	}
	return false
}

// CheckEdge is the pure hand-off predicate: only valid when focus is
// currently Local. Returns the client to hand off to, if (x, y) has left
// every local rect and entered some client's rect.
func (t *Topology) CheckEdge(x, y float64) (Focus, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.checkEdgeLocked(x, y)
}

func (t *Topology) checkEdgeLocked(x, y float64) (Focus, bool) {
	if t.focus.Remote {
		return Focus{}, false
	}
	if t.insideLocalLocked(x, y) {
		return Focus{}, false
	}
	if name, ok := t.findClientAtLocked(x, y); ok {
		return FocusRemote(name), true
	}
	return Focus{}, false
}

func (t *Topology) GetFocus() Focus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.focus
}

func (t *Topology) SetFocus(f Focus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.focus = f
}

func (t *Topology) GetConfig() Config {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.config
}

// UpdateConfig atomically replaces the whole configuration.
func (t *Topology) UpdateConfig(cfg Config) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.config = cfg
}

func (t *Topology) Cursor() (float64, float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursor[0], t.cursor[1]
}

func (t *Topology) SetCursor(x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor[0], t.cursor[1] = x, y
}

// MoveCursor integrates a delta into the virtual cursor and returns the
// new position, without evaluating a focus transition. The capture loop
// does not call it; it integrates deltas through Advance.
func (t *Topology) MoveCursor(dx, dy float64) (float64, float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor[0] += dx
	t.cursor[1] += dy
	return t.cursor[0], t.cursor[1]
}

// Advance is the single authoritative hand-off/hand-back algorithm, folded
// into one call so callers exercise exactly one code path: it updates the
// virtual cursor (absolute set, or delta integration when absolute is
// false), evaluates the focus transition, and reports consumedLocally:
// true when the resulting focus is Local (the event belongs to the local
// OS), false when it is Remote.
func (t *Topology) Advance(x, y float64, absolute bool) (prev, next Focus, consumedLocally bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if absolute {
		t.cursor[0], t.cursor[1] = x, y
	} else {
		t.cursor[0] += x
		t.cursor[1] += y
	}
	cx, cy := t.cursor[0], t.cursor[1]

	prev = t.focus

	switch {
	case !t.focus.Remote:
		// Local: look for a hand-off to a client.
		if !t.insideLocalLocked(cx, cy) {
			if name, ok := t.findClientAtLocked(cx, cy); ok {
				t.focus = FocusRemote(name)
			}
		}
	default:
		// Remote: hand back to Local once the cursor re-enters a local
		// rect, or re-target directly to a different client if the
		// cursor has crossed straight into its rect without passing
		// through a local screen.
		if t.insideLocalLocked(cx, cy) {
			t.focus = FocusLocal
		} else if name, ok := t.findClientAtLocked(cx, cy); ok && name != t.focus.Client {
			t.focus = FocusRemote(name)
		}
	}

	next = t.focus
	consumedLocally = !next.Remote
	return prev, next, consumedLocally
}
