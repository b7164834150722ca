// ABOUTME: Centralized configuration for the radar client, gateway and MCP server
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harper/radar-oficial/internal/charm"
	"github.com/harper/radar-oficial/internal/scope"
	"github.com/harper/radar-oficial/internal/storage"
)

// Config holds all configuration for the radar system
type Config struct {
	// Backend API shared by the directory and answering clients
	APIURL      string
	HTTPTimeout time.Duration

	// Scope settings
	ScopeKind        string
	DirectoryRetries int
	RetryDelay       time.Duration

	// Scope store settings
	Store      string
	SQLitePath string

	// Charm settings
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// Logging
	LogLevel string
	LogFile  string

	// Gateway settings
	Port           string
	Env            string
	CatalogPath    string
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
	AgentModel     string
	AgentTimeout   time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		APIURL:           strings.TrimRight(getEnv("RADAR_API_URL", "http://localhost:8080"), "/"),
		HTTPTimeout:      getEnvDuration("RADAR_HTTP_TIMEOUT", 60*time.Second),
		ScopeKind:        getEnv("RADAR_SCOPE_KIND", scope.JurisdictionKindName),
		DirectoryRetries: getEnvInt("RADAR_DIRECTORY_RETRIES", 2),
		RetryDelay:       getEnvDuration("RADAR_RETRY_DELAY", 500*time.Millisecond),
		Store:            getEnv("RADAR_STORE", storage.BackendCharm),
		SQLitePath:       os.Getenv("RADAR_SQLITE_PATH"),
		CharmHost:        getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:      getEnv("CHARM_DB", "radar"),
		AutoSync:         getEnvBool("CHARM_AUTO_SYNC", true),
		LogLevel:         getEnv("RADAR_LOG_LEVEL", "info"),
		LogFile:          os.Getenv("RADAR_LOG_FILE"),
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		CatalogPath:      getEnv("RADAR_CATALOG", "catalog.yaml"),
		AllowedOrigins:   getEnvList("RADAR_ALLOWED_ORIGINS", []string{"https://radaroficial.app"}),
		RateLimit:        getEnvFloat("RADAR_RATE_LIMIT", 5),
		RateBurst:        getEnvInt("RADAR_RATE_BURST", 10),
		AgentModel:       getEnv("RADAR_AGENT_MODEL", "n/a"),
		AgentTimeout:     getEnvDuration("RADAR_AGENT_TIMEOUT", 60*time.Second),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if _, err := scope.KindByName(c.ScopeKind); err != nil {
		return fmt.Errorf("RADAR_SCOPE_KIND: %w", err)
	}
	switch c.Store {
	case storage.BackendCharm, storage.BackendSQLite, storage.BackendMemory:
	default:
		return fmt.Errorf("RADAR_STORE must be charm, sqlite or memory, got %q", c.Store)
	}
	if c.DirectoryRetries < 0 || c.DirectoryRetries > 10 {
		return fmt.Errorf("RADAR_DIRECTORY_RETRIES must be 0-10, got %d", c.DirectoryRetries)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("RADAR_HTTP_TIMEOUT must be positive, got %v", c.HTTPTimeout)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("RADAR_LOG_LEVEL: %w", err)
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("RADAR_RATE_LIMIT must be positive, got %f", c.RateLimit)
	}
	if c.RateBurst < 1 {
		return fmt.Errorf("RADAR_RATE_BURST must be at least 1, got %d", c.RateBurst)
	}
	return nil
}

// Kind resolves the configured scope kind
func (c *Config) Kind() scope.Kind {
	kind, err := scope.KindByName(c.ScopeKind)
	if err != nil {
		return scope.JurisdictionKind{}
	}
	return kind
}

// IsProduction reports whether the gateway runs with production CORS rules
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Backend returns the scope store backend configuration
func (c *Config) Backend() storage.BackendConfig {
	return storage.BackendConfig{
		Name: c.Store,
		Charm: &charm.Config{
			Host:     c.CharmHost,
			DBName:   c.CharmDBName,
			AutoSync: c.AutoSync,
		},
		SQLitePath: c.SQLitePath,
	}
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

// getEnvList splits a comma separated value, dropping blanks
func getEnvList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
