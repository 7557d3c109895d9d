package hostinfo

import "testing"

func TestHostnameIsNonEmpty(t *testing.T) {
	if Hostname() == "" {
		t.Fatal("expected a non-empty hostname")
	}
}

func TestDescribeReportsHostname(t *testing.T) {
	s := Describe()
	if s.Hostname == "" {
		t.Fatal("expected Describe to report a non-empty hostname")
	}
	if s.OS == "" {
		t.Fatal("expected Describe to report a non-empty OS field")
	}
	if s.Uptime < 0 {
		t.Fatalf("expected non-negative uptime, got %v", s.Uptime)
	}
}
