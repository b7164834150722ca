// ABOUTME: Conversation runtime tying a thread to the orchestrator and presenter
// ABOUTME: Serializes turns; a failed or cancelled turn appends no reply
package core

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/harper/radar-oficial/internal/logging"
	"github.com/harper/radar-oficial/internal/models"
	"github.com/harper/radar-oficial/internal/scope"
	"github.com/harper/radar-oficial/internal/storage"
)

// Deps are the collaborators a conversation is assembled from
type Deps struct {
	Store     *storage.ScopeStore
	Directory scope.Directory
	Answerer  Answerer
	Thread    *models.Thread // nil creates a fresh thread
	Presenter []PresenterOption
}

// Conversation is one chat thread driven by the scope state machine
type Conversation struct {
	thread       *models.Thread
	store        *storage.ScopeStore
	orchestrator *Orchestrator
	presenter    *Presenter
	instructions *Instructions
	logger       *log.Logger

	turnMu sync.Mutex
}

// NewConversation assembles a conversation for the store's scope kind
func NewConversation(deps Deps) *Conversation {
	thread := deps.Thread
	if thread == nil {
		thread = models.NewThread()
	}
	kind := deps.Store.Kind()

	return &Conversation{
		thread:       thread,
		store:        deps.Store,
		orchestrator: NewOrchestrator(kind, deps.Store, deps.Answerer),
		presenter:    NewPresenter(kind, deps.Directory, deps.Store, thread, deps.Presenter...),
		instructions: NewInstructions(kind, deps.Store),
		logger:       logging.Component("conversation").With("thread", thread.ID()),
	}
}

func (c *Conversation) Thread() *models.Thread        { return c.thread }
func (c *Conversation) Orchestrator() *Orchestrator   { return c.orchestrator }
func (c *Conversation) Presenter() *Presenter         { return c.presenter }
func (c *Conversation) Instructions() *Instructions   { return c.instructions }
func (c *Conversation) Scope() scope.Scope            { return c.store.Get() }
func (c *Conversation) Route() models.RoutingDecision { return c.orchestrator.Route() }

// Send appends a user message and runs one turn. On success the assistant
// reply is appended and returned. On failure, cancellation included, no reply
// is appended and the error is returned unchanged.
func (c *Conversation) Send(ctx context.Context, text string) (models.Message, error) {
	c.turnMu.Lock()
	defer c.turnMu.Unlock()

	userMsg, err := models.NewUserMessage(text)
	if err != nil {
		return models.Message{}, err
	}
	c.thread.Append(userMsg)

	content, err := c.orchestrator.HandleTurn(ctx, c.thread.Messages())
	if err != nil {
		c.logger.Warn("turn failed", "err", err)
		return models.Message{}, err
	}

	reply := models.NewAssistantMessage(content)
	c.thread.Append(reply)
	return reply, nil
}

// Welcome appends a select tool call without a user turn, the path the
// welcome screen's "list diários" button takes
func (c *Conversation) Welcome() models.Message {
	c.turnMu.Lock()
	defer c.turnMu.Unlock()

	msg := models.NewAssistantMessage([]models.ContentBlock{
		models.ToolCallBlock(c.orchestrator.Kind().SelectToolName()),
	})
	c.thread.Append(msg)
	return msg
}

// Select resolves input against the presenter's options and applies the pick
func (c *Conversation) Select(input string) (models.Message, error) {
	c.turnMu.Lock()
	defer c.turnMu.Unlock()

	opt, err := c.presenter.Find(input)
	if err != nil {
		return models.Message{}, err
	}
	return c.presenter.Select(opt)
}

// AwaitingSelection reports whether the newest message asks for a scope that
// is still unresolved
func (c *Conversation) AwaitingSelection() bool {
	if c.store.Get() != nil {
		return false
	}
	last, ok := c.thread.Last()
	if !ok {
		return false
	}
	for _, call := range last.ToolCalls() {
		if call.ToolName == c.presenter.ToolName() {
			return true
		}
	}
	return false
}
