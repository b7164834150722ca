// ABOUTME: Tests for the agent client against a fake OpenAI-compatible endpoint
// ABOUTME: Covers request shape, auth header, empty choices and breaker tripping
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func fakeAgent(t *testing.T, status int, answer string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/api/v1/chat/completions" {
			t.Errorf("path = %s, want /api/v1/chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v, want one user message", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
			return
		}
		choices := []map[string]any{}
		if answer != "" {
			choices = append(choices, map[string]any{
				"index":   0,
				"message": map[string]any{"role": "assistant", "content": answer},
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "x", "choices": choices})
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestNewAgentClient_Validation(t *testing.T) {
	if _, err := NewAgentClient(DefaultConfig("", "key")); err == nil {
		t.Error("expected error for missing endpoint")
	}
	if _, err := NewAgentClient(DefaultConfig("http://agent", "")); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestComplete(t *testing.T) {
	srv, _ := fakeAgent(t, http.StatusOK, "Foram publicadas 2 nomeações.")
	client, err := NewAgentClient(DefaultConfig(srv.URL+"/", "secret"))
	if err != nil {
		t.Fatal(err)
	}

	got, err := client.Complete(context.Background(), "Houve nomeações?")
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "Foram publicadas 2 nomeações." {
		t.Errorf("Complete() = %q", got)
	}
}

func TestComplete_NoChoices(t *testing.T) {
	srv, _ := fakeAgent(t, http.StatusOK, "")
	client, _ := NewAgentClient(DefaultConfig(srv.URL, "secret"))

	if _, err := client.Complete(context.Background(), "oi"); !errors.Is(err, ErrNoChoices) {
		t.Errorf("error = %v, want ErrNoChoices", err)
	}
}

func TestComplete_BreakerOpens(t *testing.T) {
	srv, hits := fakeAgent(t, http.StatusInternalServerError, "")
	cfg := DefaultConfig(srv.URL, "secret")
	cfg.Breaker = CircuitBreakerConfig{MaxFailures: 2, Timeout: time.Minute}
	client, _ := NewAgentClient(cfg)

	for i := 0; i < 2; i++ {
		if _, err := client.Complete(context.Background(), "oi"); err == nil {
			t.Fatalf("call %d: expected upstream error", i)
		}
	}
	if _, err := client.Complete(context.Background(), "oi"); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("error = %v, want ErrCircuitOpen", err)
	}
	if hits.Load() != 2 {
		t.Errorf("agent hit %d times, want 2", hits.Load())
	}
	if client.Breaker().State() != "open" {
		t.Errorf("State() = %q, want open", client.Breaker().State())
	}
}

func TestCircuitBreaker_CancelDoesNotTrip(t *testing.T) {
	cb := NewCircuitBreakerWithConfig(CircuitBreakerConfig{MaxFailures: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := cb.Execute(ctx, func() (interface{}, error) { return "x", nil }); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	_, _ = cb.Execute(context.Background(), func() (interface{}, error) { return nil, context.Canceled })
	if cb.State() != "closed" {
		t.Errorf("State() = %q, want closed", cb.State())
	}
}
