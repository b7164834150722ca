// ABOUTME: MCP tool definitions and registration for the radar server
// ABOUTME: Exposes the scoped conversation to LLM agents over stdio
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/radar-oficial/internal/core"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, conv *core.Conversation) *Handlers {
	handlers := NewHandlers(conv)

	// 1. ask - one conversation turn
	server.AddTool(mcp.Tool{
		Name:        "ask",
		Description: "Ask a question about recent official gazette publications. Requires a selected diário; without one the reply lists the options to choose from.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "Question, in Portuguese, about the selected diário",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.Ask)

	// 2. list_scope_options - the selectable diários
	server.AddTool(mcp.Tool{
		Name:        "list_scope_options",
		Description: "List the diários (institutions or states) that can be selected.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListScopeOptions)

	// 3. select_scope - persist a pick
	server.AddTool(mcp.Tool{
		Name:        "select_scope",
		Description: "Select the diário later questions are answered from. Accepts the option value (slug or state code), its number in the list, or its label.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"value": map[string]interface{}{
					"type":        "string",
					"description": "Option value, number or label (e.g. \"PI\")",
				},
			},
			Required: []string{"value"},
		},
	}, handlers.SelectScope)

	// 4. current_scope - what is selected now
	server.AddTool(mcp.Tool{
		Name:        "current_scope",
		Description: "Show the selected diário and the conversation title.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.CurrentScope)

	return handlers
}
