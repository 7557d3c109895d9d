//go:build darwin && !cgo

package platform

import (
	"errors"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
)

// ErrCgoRequired is returned by every Synthesize call in cgo-disabled
// builds: Quartz Event Services has no pure-Go binding.
var ErrCgoRequired = errors.New("platform: darwin input synthesis requires cgo")

type unsupportedSynthesizer struct{}

func NewSynthesizer() Synthesizer {
	return &unsupportedSynthesizer{}
}

func (unsupportedSynthesizer) Synthesize(kvmevent.Event) error {
	return ErrCgoRequired
}
