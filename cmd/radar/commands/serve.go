// ABOUTME: Serve command starts the answering gateway
// ABOUTME: Lists institutions and states, and forwards scoped chats to state agents
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/harper/radar-oficial/internal/config"
	"github.com/harper/radar-oficial/internal/gateway"
	"github.com/harper/radar-oficial/internal/logging"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the answering gateway",
		Long: `Run the HTTP gateway the chat clients talk to.

Routes:
  GET  /institutions  publishing bodies in the catalog
  GET  /states        states with a configured agent
  POST /chat          answer a question (?state=PI or ?i=<slug>)
  GET  /healthz       liveness
  GET  /metrics       Prometheus metrics

The catalog is read from RADAR_CATALOG (YAML). Each state's agent
endpoint and access key come from the env vars the catalog names,
e.g. DO_AGENT_PIAUI_URL and DO_AGENT_PIAUI_ACCESS_KEY.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logClose, err := logging.Setup(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, JSON: cfg.IsProduction()})
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer logClose.Close()
	logger := logging.Component("serve")

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	srv, err := gateway.NewServer(gateway.Config{
		Port:           cfg.Port,
		Production:     cfg.IsProduction(),
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
		Agent: gateway.AgentSettings{
			Model:   cfg.AgentModel,
			Timeout: cfg.AgentTimeout,
		},
	}, catalog)
	if err != nil {
		return fmt.Errorf("creating gateway: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return srv.Shutdown(context.Background())
	})
	return g.Wait()
}

// loadCatalog reads the configured catalog, falling back to the built-in
// one when the default path does not exist
func loadCatalog(cfg *config.Config) (*gateway.Catalog, error) {
	catalog, err := gateway.LoadCatalog(cfg.CatalogPath)
	if err == nil {
		return catalog, nil
	}
	if errors.Is(err, os.ErrNotExist) && os.Getenv("RADAR_CATALOG") == "" {
		logging.Component("serve").Info("no catalog file, using built-in catalog", "path", cfg.CatalogPath)
		return gateway.DefaultCatalog(), nil
	}
	return nil, err
}
