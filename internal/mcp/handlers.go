// ABOUTME: MCP tool handler implementations for the radar server
// ABOUTME: Failures are reported as tool errors, never as protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/radar-oficial/internal/core"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	conv *core.Conversation
}

// NewHandlers creates handlers over one conversation
func NewHandlers(conv *core.Conversation) *Handlers {
	return &Handlers{conv: conv}
}

type optionResult struct {
	Number int    `json:"number"`
	Value  string `json:"value"`
	Label  string `json:"label"`
}

type scopeResult struct {
	Kind        string `json:"kind"`
	Resolved    bool   `json:"resolved"`
	Value       string `json:"value,omitempty"`
	Label       string `json:"label,omitempty"`
	Param       string `json:"param,omitempty"`
	ThreadTitle string `json:"thread_title"`
}

// Ask handles the ask tool
func (h *Handlers) Ask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	reply, err := h.conv.Send(ctx, message)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to answer: %v", err)), nil
	}

	if len(reply.ToolCalls()) > 0 {
		return mcp.NewToolResultText(h.selectionPrompt()), nil
	}
	return mcp.NewToolResultText(reply.Text()), nil
}

// ListScopeOptions handles the list_scope_options tool
func (h *Handlers) ListScopeOptions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	presenter := h.conv.Presenter()
	if loaded, err := presenter.Loaded(); !loaded || err != nil {
		if err := presenter.Mount(ctx); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to load options: %v", err)), nil
		}
	}

	result := make([]optionResult, 0)
	for i, opt := range presenter.Options() {
		result = append(result, optionResult{Number: i + 1, Value: opt.Value, Label: opt.Label})
	}
	return jsonResult(map[string]interface{}{
		"kind":    h.conv.Orchestrator().Kind().Name(),
		"options": result,
	})
}

// SelectScope handles the select_scope tool
func (h *Handlers) SelectScope(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value argument is required and must be a string"), nil
	}

	if loaded, err := h.conv.Presenter().Loaded(); !loaded || err != nil {
		_ = h.conv.Presenter().Mount(ctx)
	}

	ack, err := h.conv.Select(value)
	if err != nil {
		if errors.Is(err, core.ErrUnknownOption) {
			return mcp.NewToolResultError(fmt.Sprintf("%v\n\n%s", err, h.selectionPrompt())), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to select: %v", err)), nil
	}

	instructions := h.conv.Instructions()
	text, err := instructions.Render(ack.ToolCalls()[0].ToolName)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render acknowledgment: %v", err)), nil
	}
	return mcp.NewToolResultText(text.String()), nil
}

// CurrentScope handles the current_scope tool
func (h *Handlers) CurrentScope(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := scopeResult{
		Kind:        h.conv.Orchestrator().Kind().Name(),
		ThreadTitle: h.conv.Thread().Title(),
	}
	if current := h.conv.Scope(); current != nil {
		param := current.Param()
		result.Resolved = true
		result.Value = param.Value
		result.Label = current.Label()
		result.Param = param.String()
	}
	return jsonResult(result)
}

// selectionPrompt lists the options as numbered lines
func (h *Handlers) selectionPrompt() string {
	options := h.conv.Presenter().Options()
	if len(options) == 0 {
		return "Nenhum diário disponível no momento. Tente novamente mais tarde."
	}
	var b strings.Builder
	b.WriteString("Selecione um diário com select_scope:")
	for i, opt := range options {
		fmt.Fprintf(&b, "\n%d. %s (%s)", i+1, opt.Label, opt.Value)
	}
	return b.String()
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
