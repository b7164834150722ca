// ABOUTME: Runs the CLI end to end against an in-process gateway
// ABOUTME: Uses the sqlite store so the selection survives between commands

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/harper/radar-oficial/internal/gateway"
)

type cannedAgent struct{ answer string }

func (a cannedAgent) Complete(ctx context.Context, question string) (string, error) {
	return a.answer, nil
}

// setupCLI points the CLI at a test gateway and a fresh sqlite store
func setupCLI(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	factory := func(endpoint, key string) (gateway.Completer, error) {
		return cannedAgent{answer: "Foram publicadas 4 nomeações."}, nil
	}
	srv, err := gateway.NewServer(gateway.Config{RateLimit: 1000, RateBurst: 1000}, gateway.DefaultCatalog(), gateway.WithAgentFactory(factory))
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	api := httptest.NewServer(srv.Handler())
	t.Cleanup(api.Close)

	dir := t.TempDir()
	t.Setenv("RADAR_API_URL", api.URL)
	t.Setenv("RADAR_STORE", "sqlite")
	t.Setenv("RADAR_SQLITE_PATH", filepath.Join(dir, "radar.db"))
	t.Setenv("RADAR_LOG_FILE", filepath.Join(dir, "radar.log"))
	t.Setenv("RADAR_SCOPE_KIND", "state")
	t.Setenv("RADAR_DIRECTORY_RETRIES", "0")
	t.Setenv("DO_AGENT_PIAUI_URL", "http://agent.invalid")
	t.Setenv("DO_AGENT_PIAUI_ACCESS_KEY", "secret")
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return plain(out.String()), err
}

func TestCLI_SelectThenAsk(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "options")
	if err != nil {
		t.Fatalf("options error = %v", err)
	}
	if !strings.Contains(out, "PI") || !strings.Contains(out, "Piauí") {
		t.Errorf("options output = %q, want Piauí listed", out)
	}

	out, err = runCLI(t, "ask", "Houve nomeações?")
	if !errors.Is(err, errScopeRequired) {
		t.Fatalf("ask without scope error = %v, want errScopeRequired", err)
	}
	if !strings.Contains(out, "Selecione um diário:") {
		t.Errorf("ask without scope should list diários, got %q", out)
	}

	out, err = runCLI(t, "scope", "select", "PI")
	if err != nil {
		t.Fatalf("scope select error = %v", err)
	}
	if !strings.Contains(out, "Diário selecionado") || !strings.Contains(out, "Piauí") {
		t.Errorf("scope select output = %q", out)
	}

	out, err = runCLI(t, "scope", "show")
	if err != nil {
		t.Fatalf("scope show error = %v", err)
	}
	if !strings.Contains(out, "Diário: Piauí") || !strings.Contains(out, "state=PI") {
		t.Errorf("scope show output = %q", out)
	}

	out, err = runCLI(t, "ask", "Houve", "nomeações?")
	if err != nil {
		t.Fatalf("ask error = %v", err)
	}
	if !strings.Contains(out, "Foram publicadas 4 nomeações.") {
		t.Errorf("ask output = %q", out)
	}
}

func TestCLI_ScopeShowJSON(t *testing.T) {
	setupCLI(t)

	out, err := runCLI(t, "--format", "json", "scope", "show")
	if err != nil {
		t.Fatalf("scope show error = %v", err)
	}
	var view scopeView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if view.Resolved || view.Kind != "state" {
		t.Errorf("view = %+v, want unresolved state scope", view)
	}
}

func TestCLI_SelectUnknown(t *testing.T) {
	setupCLI(t)

	if _, err := runCLI(t, "scope", "select", "SP"); err == nil {
		t.Error("selecting a state without an agent should fail")
	}
}
