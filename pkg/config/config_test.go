package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

type validatedConfig struct {
	Port int `yaml:"port"`
}

func (c *validatedConfig) Validate() error {
	if c.Port <= 0 {
		return os.ErrInvalid
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "name: skillet\nport: 3000\n")

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "skillet" || cfg.Port != 3000 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_SERVICE_NAME", "from-env")
	path := writeFile(t, "name: ${TEST_SERVICE_NAME}\n")

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "from-env" {
		t.Errorf("name = %q, want from-env", cfg.Name)
	}
}

func TestLoadRunsValidation(t *testing.T) {
	path := writeFile(t, "port: 0\n")

	var cfg validatedConfig
	err := Load(path, &cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("error = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	var cfg testConfig
	if err := Load(filepath.Join(t.TempDir(), "absent.yaml"), &cfg); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadIfExists(t *testing.T) {
	cfg := testConfig{Name: "default", Port: 1}
	loaded, err := LoadIfExists(filepath.Join(t.TempDir(), "absent.yaml"), &cfg)
	if err != nil {
		t.Fatalf("LoadIfExists: %v", err)
	}
	if loaded {
		t.Error("loaded = true for missing file")
	}
	if cfg.Name != "default" || cfg.Port != 1 {
		t.Errorf("defaults clobbered: %+v", cfg)
	}

	path := writeFile(t, "name: real\nport: 9\n")
	loaded, err = LoadIfExists(path, &cfg)
	if err != nil {
		t.Fatalf("LoadIfExists: %v", err)
	}
	if !loaded {
		t.Error("loaded = false for present file")
	}
	if cfg.Name != "real" || cfg.Port != 9 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeFile(t, "name: [unclosed\n")

	var cfg testConfig
	if err := Load(path, &cfg); err == nil {
		t.Fatal("expected parse error")
	}
}
