package config

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidateTieredZeroPortIsFatal(t *testing.T) {
	cfg := Default()
	cfg.Port = 0
	result := cfg.ValidateTiered()
	if !result.HasFatals() {
		t.Fatal("port 0 should be fatal")
	}
}

func TestValidateTieredDuplicateClientNameIsFatal(t *testing.T) {
	cfg := Default()
	cfg.Clients = []Client{
		{Name: "right", IP: "192.168.1.10", Width: 1920, Height: 1080},
		{Name: "right", IP: "192.168.1.11", Width: 1920, Height: 1080},
	}
	result := cfg.ValidateTiered()
	if !result.HasFatals() {
		t.Fatal("duplicate client name should be fatal")
	}
	found := false
	for _, err := range result.Fatals {
		if strings.Contains(err.Error(), "duplicate client name") {
			found = true
		}
	}
	if !found {
		t.Fatal("expected duplicate client name error in fatals")
	}
}

func TestValidateTieredUnparseableIPIsWarning(t *testing.T) {
	cfg := Default()
	cfg.Clients = []Client{{Name: "right", IP: "not-an-ip", Width: 1920, Height: 1080}}
	result := cfg.ValidateTiered()
	if result.HasFatals() {
		t.Fatalf("unparseable ip should be a warning, not fatal: %v", result.Fatals)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected warning for unparseable ip")
	}
}

func TestValidateTieredOverlappingClientsIsWarning(t *testing.T) {
	cfg := Default()
	cfg.Clients = []Client{
		{Name: "a", X: 0, Y: 0, Width: 1000, Height: 1000},
		{Name: "b", X: 500, Y: 500, Width: 1000, Height: 1000},
	}
	result := cfg.ValidateTiered()
	if result.HasFatals() {
		t.Fatalf("overlap should be a warning, not fatal: %v", result.Fatals)
	}
	found := false
	for _, err := range result.Warnings {
		if strings.Contains(err.Error(), "overlapping") {
			found = true
		}
	}
	if !found {
		t.Fatal("expected overlapping warning")
	}
}

func TestValidateTieredShortSecretIsWarning(t *testing.T) {
	cfg := Default()
	secret := "abc"
	cfg.Secret = &secret
	result := cfg.ValidateTiered()
	if result.HasFatals() {
		t.Fatal("short secret should not be fatal")
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected warning for short secret")
	}
}

func TestHasFatals(t *testing.T) {
	r := ValidationResult{}
	if r.HasFatals() {
		t.Fatal("HasFatals() on empty result should be false")
	}
	r.Fatals = append(r.Fatals, fmt.Errorf("test error"))
	if !r.HasFatals() {
		t.Fatal("HasFatals() should be true with a fatal error")
	}
}

func TestAllErrorsReturnsBoth(t *testing.T) {
	cfg := Default()
	cfg.Port = 0                                                        // fatal
	cfg.Clients = []Client{{Name: "a", IP: "bad-ip", Width: 10, Height: 10}} // warning
	result := cfg.ValidateTiered()

	all := result.AllErrors()
	if len(all) < 2 {
		t.Fatalf("AllErrors() returned %d errors, expected at least 2 (fatals + warnings)", len(all))
	}
}

func TestValidConfigHasNoErrors(t *testing.T) {
	cfg := Default()
	cfg.Clients = []Client{{Name: "right", IP: "192.168.1.10", Width: 1920, Height: 1080}}
	result := cfg.ValidateTiered()
	if result.HasFatals() {
		t.Fatalf("valid config has fatals: %v", result.Fatals)
	}
	if len(result.Warnings) > 0 {
		t.Fatalf("valid config has warnings: %v", result.Warnings)
	}
}
