// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to pick a diário and ask questions via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/radar-oficial/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs Radar Oficial as an MCP (Model Context Protocol) server, letting
LLM agents list diários, select one and ask questions via stdio.

Tools: ask, list_scope_options, select_scope, current_scope.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  radar mcp

  # Configure in the client's config file:
  # {
  #   "mcpServers": {
  #     "radar": {
  #       "command": "radar",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	// A failed fetch leaves the list empty; list_scope_options retries it
	_ = a.conv.Presenter().Mount(cmd.Context())

	server := mcpserver.NewMCPServer(
		"Radar Oficial",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, a.conv)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		a.logger.Info("MCP server starting on stdio", "kind", a.store.Kind().Name())
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			a.logger.Info("shutdown signal received")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
