// ABOUTME: Opens the configured durable backend for the scope store
// ABOUTME: charm (cloud-synced, default), sqlite (local file) or memory (ephemeral)
package storage

import (
	"fmt"

	"github.com/harper/radar-oficial/internal/charm"
	"github.com/harper/radar-oficial/internal/storage/sqlite"
)

// Backend names accepted by RADAR_STORE
const (
	BackendCharm  = "charm"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backend is a KV that owns resources
type Backend interface {
	KV
	Close() error
}

// BackendConfig selects and configures a backend
type BackendConfig struct {
	Name       string
	Charm      *charm.Config
	SQLitePath string
}

// OpenBackend opens the backend named in cfg
func OpenBackend(cfg BackendConfig) (Backend, error) {
	switch cfg.Name {
	case BackendCharm, "":
		client, err := charm.Open(cfg.Charm)
		if err != nil {
			return nil, fmt.Errorf("opening charm backend: %w", err)
		}
		return client, nil
	case BackendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = sqlite.DefaultDBPath()
		}
		db, err := sqlite.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite backend: %w", err)
		}
		return db, nil
	case BackendMemory:
		return memoryBackend{NewMemoryKV()}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Name)
	}
}

type memoryBackend struct {
	*MemoryKV
}

func (memoryBackend) Close() error { return nil }
