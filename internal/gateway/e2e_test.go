// ABOUTME: Drives a full conversation against the gateway over real HTTP
// ABOUTME: Directory and answering clients, scope store and runtime are all real
package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/harper/radar-oficial/internal/answer"
	"github.com/harper/radar-oficial/internal/core"
	"github.com/harper/radar-oficial/internal/directory"
	"github.com/harper/radar-oficial/internal/logging"
	"github.com/harper/radar-oficial/internal/scope"
	"github.com/harper/radar-oficial/internal/storage"
)

func TestConversationThroughGateway(t *testing.T) {
	configureAgentEnv(t)
	agent := &fakeAgent{answer: "Sim, 4 nomeações publicadas."}
	srv := newTestServer(t, Config{}, agent)
	api := httptestServer(t, srv)

	kv := storage.NewMemoryKV()
	store := storage.NewScopeStore(kv, scope.JurisdictionKind{}).WithLogger(logging.Discard())
	if err := store.Hydrate(); err != nil {
		t.Fatal(err)
	}
	conv := core.NewConversation(core.Deps{
		Store:     store,
		Directory: directory.NewClient(api, 5*time.Second),
		Answerer:  answer.NewClient(api, 5*time.Second),
	})
	if err := conv.Presenter().Mount(context.Background()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	reply, err := conv.Send(context.Background(), "oi")
	if err != nil {
		t.Fatalf("first Send() error = %v", err)
	}
	if calls := reply.ToolCalls(); len(calls) != 1 || calls[0].ToolName != "select-diario-state" {
		t.Fatalf("first reply = %+v, want a selection request", reply.Content)
	}

	if _, err := conv.Select("1"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if conv.Thread().Title() != "Piauí" {
		t.Errorf("title = %q, want Piauí", conv.Thread().Title())
	}
	raw, _ := kv.Get("diarioState")
	if string(raw) != `"PI"` {
		t.Errorf("persisted = %s, want \"PI\"", raw)
	}

	reply, err = conv.Send(context.Background(), "Houve nomeações recentes nesta semana?")
	if err != nil {
		t.Fatalf("second Send() error = %v", err)
	}
	if reply.Text() != "Sim, 4 nomeações publicadas." {
		t.Errorf("reply = %q", reply.Text())
	}
	questions := agent.Questions()
	if len(questions) != 1 || questions[0] != "Houve nomeações recentes nesta semana?" {
		t.Errorf("agent questions = %v", questions)
	}
}
