package internal

import (
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
	if cfg.App.HTTP.Port != 3000 {
		t.Errorf("default port = %d, want 3000", cfg.App.HTTP.Port)
	}
	if cfg.SQLite.Path == "" || cfg.Uploads.Path == "" {
		t.Errorf("default paths missing: %+v", cfg)
	}
}

func TestHTTPConfig_PortBounds(t *testing.T) {
	for _, port := range []int{0, -1, 65536} {
		cfg := HTTPConfig{Port: port}
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail validation", port)
		}
	}
	cfg := HTTPConfig{Port: 8080}
	if err := cfg.Validate(); err != nil {
		t.Errorf("port 8080 should pass: %v", err)
	}
}

func TestHTTPConfig_Address(t *testing.T) {
	cfg := HTTPConfig{Port: 3000}
	if got := cfg.Address(); got != ":3000" {
		t.Errorf("Address() = %q, want :3000", got)
	}
}

func TestFullConfig_CatchesNestedErrors(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SQLite.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch empty sqlite path")
	}

	cfg = NewDefaultConfig()
	cfg.Uploads.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch empty uploads path")
	}
}
