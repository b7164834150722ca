// ABOUTME: Resolves a state code to its agent client, built once and reused
// ABOUTME: Reuse keeps each agent's circuit breaker state across requests
package gateway

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/harper/radar-oficial/internal/llm"
)

var (
	// ErrUnknownState means the catalog has no agent for the state
	ErrUnknownState = errors.New("invalid diario state")
	// ErrAgentNotConfigured means the agent's env vars are unset
	ErrAgentNotConfigured = errors.New("agent not configured")
)

// Completer answers one question; implemented by llm.AgentClient
type Completer interface {
	Complete(ctx context.Context, question string) (string, error)
}

// AgentFactory builds the client for a state's agent
type AgentFactory func(endpoint, key string) (Completer, error)

// AgentSettings tune the default factory
type AgentSettings struct {
	Model   string
	Timeout time.Duration
}

// NewAgentFactory returns a factory producing llm.AgentClient instances
func NewAgentFactory(settings AgentSettings) AgentFactory {
	return func(endpoint, key string) (Completer, error) {
		cfg := llm.DefaultConfig(endpoint, key)
		if settings.Model != "" {
			cfg.Model = settings.Model
		}
		if settings.Timeout > 0 {
			cfg.Timeout = settings.Timeout
		}
		return llm.NewAgentClient(cfg)
	}
}

// AgentPool maps state codes to agent clients
type AgentPool struct {
	catalog *Catalog
	factory AgentFactory
	lookup  func(string) string

	mu      sync.Mutex
	clients map[string]Completer
}

// NewAgentPool creates a pool reading agent settings from the process environment
func NewAgentPool(catalog *Catalog, factory AgentFactory) *AgentPool {
	return &AgentPool{
		catalog: catalog,
		factory: factory,
		lookup:  os.Getenv,
		clients: make(map[string]Completer),
	}
}

// Agent returns the client for state, creating it on first use
func (p *AgentPool) Agent(state string) (Completer, error) {
	ref, ok := p.catalog.Agents[state]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownState, state)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if client, ok := p.clients[state]; ok {
		return client, nil
	}

	endpoint := p.lookup(ref.EndpointEnv)
	if endpoint == "" {
		return nil, fmt.Errorf("%w: %s environment variable not set", ErrAgentNotConfigured, ref.EndpointEnv)
	}
	key := p.lookup(ref.KeyEnv)
	if key == "" {
		return nil, fmt.Errorf("%w: %s environment variable not set", ErrAgentNotConfigured, ref.KeyEnv)
	}

	client, err := p.factory(endpoint, key)
	if err != nil {
		return nil, fmt.Errorf("creating agent for %s: %w", state, err)
	}
	p.clients[state] = client
	return client, nil
}
