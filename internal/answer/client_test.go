// ABOUTME: Tests for the answering client request shape and failure modes
// ABOUTME: Uses httptest servers to observe query params, bodies and aborts
package answer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harper/radar-oficial/internal/models"
	"github.com/harper/radar-oficial/internal/scope"
)

func history(t *testing.T, texts ...string) []models.Message {
	t.Helper()
	var msgs []models.Message
	for _, text := range texts {
		msg, err := models.NewUserMessage(text)
		if err != nil {
			t.Fatal(err)
		}
		msgs = append(msgs, msg)
	}
	return msgs
}

func TestClient_Ask_StateParam(t *testing.T) {
	var gotQuery string
	var gotBody Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/chat" {
			t.Errorf("got %s %s, want POST /chat", r.Method, r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"text":"Sim, houve três nomeações."}`))
	}))
	defer srv.Close()

	param := scope.Jurisdiction{Code: "PI"}.Param()
	reply, err := NewClient(srv.URL, time.Second).Ask(context.Background(), history(t, "Houve nomeações?"), &param)
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if reply != "Sim, houve três nomeações." {
		t.Errorf("reply = %q", reply)
	}
	if gotQuery != "state=PI" {
		t.Errorf("query = %q, want state=PI", gotQuery)
	}
	if len(gotBody.Messages) != 1 || gotBody.Messages[0].Text() != "Houve nomeações?" {
		t.Errorf("body messages = %+v", gotBody.Messages)
	}
}

func TestClient_Endpoint(t *testing.T) {
	client := NewClient("https://api.radaroficial.app/", time.Second)
	inst := scope.Institution{Name: "Governo do Piauí", Slug: "governo-pi"}.Param()

	tests := []struct {
		name  string
		param *scope.Param
		want  string
	}{
		{"unscoped", nil, "https://api.radaroficial.app/chat"},
		{"institution", &inst, "https://api.radaroficial.app/chat?i=governo-pi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := client.Endpoint(tt.param); got != tt.want {
				t.Errorf("Endpoint() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_Ask_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Failed to process chat completion", http.StatusInternalServerError)
	}))
	defer srv.Close()

	param := scope.Jurisdiction{Code: "PI"}.Param()
	_, err := NewClient(srv.URL, time.Second).Ask(context.Background(), history(t, "oi"), &param)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != 500 {
		t.Errorf("error = %v, want StatusError 500", err)
	}
}

func TestClient_Ask_SelectionRequired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[{"type":"tool-call","toolName":"select-diario-state","toolCallId":"1","argsText":"","args":{}}]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Ask(context.Background(), history(t, "oi"), nil)
	if !errors.Is(err, ErrSelectionRequired) {
		t.Errorf("error = %v, want ErrSelectionRequired", err)
	}
}

func TestClient_Ask_Cancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	param := scope.Jurisdiction{Code: "PI"}.Param()
	_, err := NewClient(srv.URL, 0).Ask(ctx, history(t, "oi"), &param)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
