//go:build windows

package platform

import (
	"testing"

	"github.com/master-moose/aurorakvm/internal/kvmevent"
)

func TestKeyToVKMapsLettersAndDigits(t *testing.T) {
	if vk := keyToVK(kvmevent.KeyKeyA); vk != 'A' {
		t.Fatalf("keyToVK(KeyKeyA) = 0x%X, want 0x41", vk)
	}
	if vk := keyToVK(kvmevent.KeyNum5); vk != '5' {
		t.Fatalf("keyToVK(KeyNum5) = 0x%X, want 0x35", vk)
	}
}

func TestKeyToVKMapsNamedKeys(t *testing.T) {
	if vk := keyToVK(kvmevent.KeyReturn); vk != 0x0D {
		t.Fatalf("keyToVK(KeyReturn) = 0x%X, want 0x0D", vk)
	}
	if vk := keyToVK(kvmevent.KeyEscape); vk != 0x1B {
		t.Fatalf("keyToVK(KeyEscape) = 0x%X, want 0x1B", vk)
	}
}

func TestKeyToVKUnknownReturnsZero(t *testing.T) {
	if vk := keyToVK(kvmevent.KeyUnknown); vk != 0 {
		t.Fatalf("keyToVK(KeyUnknown) = 0x%X, want 0", vk)
	}
}

func TestIsExtendedVKRecognizesNavCluster(t *testing.T) {
	if !isExtendedVK(0x24) {
		t.Fatal("expected Home (0x24) to be an extended key")
	}
	if isExtendedVK(0x41) {
		t.Fatal("did not expect VK_A to be an extended key")
	}
}
