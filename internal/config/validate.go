package config

import (
	"fmt"
	"net"
)

// ValidationResult splits validation findings into Fatals (Reload rejects
// the new config and keeps the running one) and Warnings (logged; the
// config is applied as loaded, with no value altered).
type ValidationResult struct {
	Fatals   []error
	Warnings []error
}

func (r ValidationResult) HasFatals() bool { return len(r.Fatals) > 0 }

// AllErrors concatenates Fatals then Warnings, for callers that just want
// everything printed.
func (r ValidationResult) AllErrors() []error {
	all := make([]error, 0, len(r.Fatals)+len(r.Warnings))
	all = append(all, r.Fatals...)
	all = append(all, r.Warnings...)
	return all
}

// ValidateTiered checks cfg for problems, applying defaults already
// filled in by Load/applyDefaults. Only a condition that would make
// routing ambiguous or the bind address unusable is fatal; everything
// else — an unparseable client IP, overlapping rectangles, a short
// secret, a zero-sized local screen — is a warning and the config is still
// applied, in line with the policy that a malformed config logs and
// continues rather than aborts.
func (c *Config) ValidateTiered() ValidationResult {
	var result ValidationResult

	if c.Port == 0 {
		result.Fatals = append(result.Fatals, fmt.Errorf("port must not be 0"))
	}

	seenNames := make(map[string]bool, len(c.Clients))
	for _, cl := range c.Clients {
		if cl.Name == "" {
			result.Fatals = append(result.Fatals, fmt.Errorf("client entry missing name"))
			continue
		}
		if seenNames[cl.Name] {
			result.Fatals = append(result.Fatals, fmt.Errorf("duplicate client name %q makes routing ambiguous", cl.Name))
		}
		seenNames[cl.Name] = true

		if cl.IP != "" && net.ParseIP(cl.IP) == nil {
			result.Warnings = append(result.Warnings, fmt.Errorf("client %q has an unparseable ip %q", cl.Name, cl.IP))
		}
	}

	if len(c.LocalScreens) == 0 {
		result.Warnings = append(result.Warnings, fmt.Errorf("local_screens is empty after defaulting"))
	}
	for i, s := range c.LocalScreens {
		if s.Width == 0 || s.Height == 0 {
			result.Warnings = append(result.Warnings, fmt.Errorf("local_screens[%d] has zero width or height", i))
		}
	}

	for i := 0; i < len(c.Clients); i++ {
		for j := i + 1; j < len(c.Clients); j++ {
			if rectsOverlap(c.Clients[i], c.Clients[j]) {
				result.Warnings = append(result.Warnings, fmt.Errorf("clients %q and %q have overlapping screens", c.Clients[i].Name, c.Clients[j].Name))
			}
		}
	}

	if c.Secret != nil && len(*c.Secret) < 8 {
		result.Warnings = append(result.Warnings, fmt.Errorf("secret is shorter than 8 characters"))
	}

	return result
}

func rectsOverlap(a, b Client) bool {
	ax2, ay2 := int64(a.X)+int64(a.Width), int64(a.Y)+int64(a.Height)
	bx2, by2 := int64(b.X)+int64(b.Width), int64(b.Y)+int64(b.Height)
	return int64(a.X) < bx2 && int64(b.X) < ax2 && int64(a.Y) < by2 && int64(b.Y) < ay2
}
