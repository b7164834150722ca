// ABOUTME: OpenAI-compatible client for the per-state answering agents
// ABOUTME: Sends the user's question to {endpoint}/api/v1 and returns the first choice
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultAgentModel is sent as the model name; hosted agents ignore it
const DefaultAgentModel = "n/a"

// ErrNoChoices is returned when the agent answers without any completion
var ErrNoChoices = errors.New("no response from agent")

// ClientConfig holds configuration for one agent
type ClientConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
	Breaker  CircuitBreakerConfig
}

// DefaultConfig returns the default client configuration for an agent
func DefaultConfig(endpoint, apiKey string) *ClientConfig {
	return &ClientConfig{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Model:    DefaultAgentModel,
		Timeout:  60 * time.Second,
		Breaker:  DefaultCircuitBreakerConfig(),
	}
}

// AgentClient wraps the OpenAI API client behind a circuit breaker
type AgentClient struct {
	client  *openai.Client
	model   string
	breaker *CircuitBreaker
}

// NewAgentClient creates a client for the agent at cfg.Endpoint
func NewAgentClient(cfg *ClientConfig) (*AgentClient, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("agent endpoint is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("agent access key is required")
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = strings.TrimRight(cfg.Endpoint, "/") + "/api/v1"
	if cfg.Timeout > 0 {
		oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	model := cfg.Model
	if model == "" {
		model = DefaultAgentModel
	}

	return &AgentClient{
		client:  openai.NewClientWithConfig(oc),
		model:   model,
		breaker: NewCircuitBreakerWithConfig(cfg.Breaker),
	}, nil
}

// Breaker exposes the client's circuit breaker for health reporting
func (c *AgentClient) Breaker() *CircuitBreaker {
	return c.breaker
}

// Complete asks the agent a single question and returns its answer
func (c *AgentClient) Complete(ctx context.Context, question string) (string, error) {
	result, err := c.breaker.Execute(ctx, func() (interface{}, error) {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: question,
				},
			},
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, ErrNoChoices
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", fmt.Errorf("agent completion: %w", err)
	}
	return result.(string), nil
}
