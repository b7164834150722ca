// ABOUTME: Tests for serve command structure and catalog loading
// ABOUTME: The gateway itself is covered in internal/gateway

package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/radar-oficial/internal/config"
)

func TestNewServeCmd(t *testing.T) {
	cmd := NewServeCmd()

	if cmd.Use != "serve" {
		t.Errorf("Use = %q, want %q", cmd.Use, "serve")
	}
	if cmd.RunE == nil {
		t.Error("RunE should be set")
	}
	for _, route := range []string{"/institutions", "/states", "/chat", "/metrics"} {
		if !strings.Contains(cmd.Long, route) {
			t.Errorf("Long description should mention %s", route)
		}
	}
}

func TestLoadCatalog_DefaultWhenMissing(t *testing.T) {
	t.Setenv("RADAR_CATALOG", "")
	cfg := &config.Config{CatalogPath: filepath.Join(t.TempDir(), "catalog.yaml")}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		t.Fatalf("loadCatalog() error = %v", err)
	}
	if states := catalog.States(); len(states) != 1 || states[0] != "PI" {
		t.Errorf("States() = %v, want built-in [PI]", states)
	}
}

func TestLoadCatalog_ExplicitPathMustExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	t.Setenv("RADAR_CATALOG", path)

	if _, err := loadCatalog(&config.Config{CatalogPath: path}); err == nil {
		t.Error("expected error for a configured catalog that does not exist")
	}
}

func TestLoadCatalog_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `
institutions:
  - id: 7
    name: Governo do Ceará
    slug: governo-ce
    state: CE
agents:
  CE:
    endpoint_env: DO_AGENT_CE_URL
    key_env: DO_AGENT_CE_ACCESS_KEY
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RADAR_CATALOG", path)

	catalog, err := loadCatalog(&config.Config{CatalogPath: path})
	if err != nil {
		t.Fatalf("loadCatalog() error = %v", err)
	}
	if _, ok := catalog.Institution("governo-ce"); !ok {
		t.Error("governo-ce not loaded")
	}
}
