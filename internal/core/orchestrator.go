// ABOUTME: Scope orchestrator deciding, per turn, whether to ask for a scope or answer
// ABOUTME: Unresolved turns are answered locally with a select tool call
package core

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/harper/radar-oficial/internal/logging"
	"github.com/harper/radar-oficial/internal/models"
	"github.com/harper/radar-oficial/internal/scope"
)

// ScopeReader exposes the active scope without blocking on storage
type ScopeReader interface {
	Get() scope.Scope
}

// Answerer sends a history to the answering service; implemented by answer.Client
type Answerer interface {
	Ask(ctx context.Context, history []models.Message, param *scope.Param) (string, error)
}

// Orchestrator is the per-turn state machine, parameterized by one scope kind
type Orchestrator struct {
	kind     scope.Kind
	scopes   ScopeReader
	answerer Answerer
	logger   *log.Logger
}

// NewOrchestrator creates an orchestrator for kind
func NewOrchestrator(kind scope.Kind, scopes ScopeReader, answerer Answerer) *Orchestrator {
	return &Orchestrator{
		kind:     kind,
		scopes:   scopes,
		answerer: answerer,
		logger:   logging.Component("orchestrator"),
	}
}

// Kind returns the scope kind this orchestrator requests
func (o *Orchestrator) Kind() scope.Kind {
	return o.kind
}

// Route decides how the next turn will be handled
func (o *Orchestrator) Route() models.RoutingDecision {
	current := o.scopes.Get()
	if current == nil {
		return models.RoutingDecision{
			Route:    models.RouteSelectionRequest,
			ToolName: o.kind.SelectToolName(),
		}
	}
	return models.RoutingDecision{
		Route:      models.RouteAnswering,
		ScopeParam: current.Param().String(),
	}
}

// HandleTurn answers the newest message in history. Without a scope it returns
// a single select tool call and makes no network call. With a scope it returns
// the answering service's reply as one text block. Errors from the answering
// service, cancellation included, are returned as they are.
func (o *Orchestrator) HandleTurn(ctx context.Context, history []models.Message) ([]models.ContentBlock, error) {
	current := o.scopes.Get()
	if current == nil {
		o.logger.Debug("scope unresolved, requesting selection", "tool", o.kind.SelectToolName())
		return []models.ContentBlock{models.ToolCallBlock(o.kind.SelectToolName())}, nil
	}

	param := current.Param()
	o.logger.Debug("forwarding turn", "param", param.String(), "messages", len(history))

	reply, err := o.answerer.Ask(ctx, history, &param)
	if err != nil {
		return nil, err
	}
	return []models.ContentBlock{models.TextBlock(reply)}, nil
}
