// ABOUTME: Tests for YAML catalog parsing and validation
// ABOUTME: Covers state codes, duplicate slugs and agent env names
package gateway

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/harper/radar-oficial/internal/scope"
)

const sampleCatalog = `
institutions:
  - id: 1
    name: Governo do Maranhão
    slug: governo-ma
    state: MA
agents:
  PI:
    endpoint_env: DO_AGENT_PIAUI_URL
    key_env: DO_AGENT_PIAUI_ACCESS_KEY
  MA:
    endpoint_env: DO_AGENT_MA_URL
    key_env: DO_AGENT_MA_ACCESS_KEY
`

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if diff := cmp.Diff([]string{"MA", "PI"}, c.States()); diff != "" {
		t.Errorf("States() mismatch (-want +got):\n%s", diff)
	}
	inst, ok := c.Institution("governo-ma")
	if !ok || inst.State != "MA" {
		t.Errorf("Institution() = %+v, %v", inst, ok)
	}
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"bad state", "institutions:\n  - {id: 1, name: X, slug: x, state: ZZ}\n", scope.ErrInvalidState},
		{"bad agent state", "agents:\n  ZZ: {endpoint_env: A, key_env: B}\n", scope.ErrInvalidState},
		{"missing key env", "agents:\n  PI: {endpoint_env: A}\n", nil},
		{"duplicate slug", "institutions:\n  - {id: 1, name: X, slug: x, state: PI}\n  - {id: 2, name: Y, slug: x, state: PI}\n", nil},
		{"missing slug", "institutions:\n  - {id: 1, name: X, state: PI}\n", nil},
		{"not yaml", "institutions: [", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			if err == nil {
				t.Fatal("ParseCatalog() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultCatalogIsValid(t *testing.T) {
	if err := DefaultCatalog().Validate(); err != nil {
		t.Errorf("DefaultCatalog().Validate() = %v", err)
	}
}
