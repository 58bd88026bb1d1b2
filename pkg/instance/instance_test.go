package instance

import "testing"

func TestGetIDPrefersExplicitInstance(t *testing.T) {
	t.Setenv("SWEETSHOP_INSTANCE_ID", "api-1")
	t.Setenv("DYNO", "web.1")
	if got := GetID(); got != "api-1" {
		t.Fatalf("expected api-1, got %q", got)
	}
}

func TestGetIDFallsBack(t *testing.T) {
	t.Setenv("SWEETSHOP_INSTANCE_ID", "")
	t.Setenv("DYNO", "")
	t.Setenv("HOSTNAME", "")
	if got := GetID(); got != "local" {
		t.Fatalf("expected local, got %q", got)
	}
}
