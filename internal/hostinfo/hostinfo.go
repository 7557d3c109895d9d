// Package hostinfo provides this host's identity for the handshake's
// screen_info.name field and the status viewer's roster display, the
// way the collectors package wraps gopsutil for the same "who is this
// machine" question.
package hostinfo

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/host"
)

// Hostname returns the name a client identifies itself by during the
// handshake. Falls back to os.Hostname if gopsutil's host info is
// unavailable (e.g. inside a restricted container).
func Hostname() string {
	if info, err := host.Info(); err == nil && info.Hostname != "" {
		return info.Hostname
	}
	if name, err := os.Hostname(); err == nil {
		return name
	}
	return "unknown-host"
}

// Summary describes the local machine for display in the version
// command and the status viewer.
type Summary struct {
	Hostname string
	OS       string
	Uptime   time.Duration
}

// Describe gathers a Summary via gopsutil, degrading gracefully when a
// field can't be read rather than failing the whole call.
func Describe() Summary {
	s := Summary{Hostname: Hostname(), OS: "unknown"}

	info, err := host.Info()
	if err != nil {
		return s
	}
	if info.Platform != "" {
		s.OS = fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion)
	} else {
		s.OS = info.OS
	}
	s.Uptime = time.Duration(info.Uptime) * time.Second
	return s
}
