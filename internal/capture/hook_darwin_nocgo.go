//go:build darwin && !cgo

package capture

import (
	"context"
	"errors"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
)

// ErrCgoRequired is returned by Run in cgo-disabled builds: CGEventTapCreate
// has no pure-Go binding.
var ErrCgoRequired = errors.New("capture: darwin input capture requires cgo")

type unsupportedHook struct{}

func NewHook() Hook {
	return &unsupportedHook{}
}

func (unsupportedHook) Grab() bool { return false }

func (unsupportedHook) Run(ctx context.Context, onEvent func(kvmevent.Event) (swallow bool)) error {
	return ErrCgoRequired
}
