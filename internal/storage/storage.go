// ABOUTME: Scope store holding the single active scope for the process
// ABOUTME: Hydrated once from a durable KV backend, then read synchronously from memory
package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/harper/radar-oficial/internal/logging"
	"github.com/harper/radar-oficial/internal/scope"
)

// ErrNoScope is returned by Require when no scope has been resolved yet
var ErrNoScope = errors.New("no scope selected")

// KV is the durable slot the scope is persisted in. Get returns (nil, nil) for a missing key.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// ScopeStore caches the persisted scope of one kind. Reads never touch the backend.
type ScopeStore struct {
	kv       KV
	kind     scope.Kind
	current  scope.Scope
	hydrated bool
	logger   *log.Logger
	mu       sync.RWMutex
}

// NewScopeStore creates a store for kind on top of kv. Call Hydrate before use.
func NewScopeStore(kv KV, kind scope.Kind) *ScopeStore {
	return &ScopeStore{
		kv:     kv,
		kind:   kind,
		logger: logging.Component("store"),
	}
}

// WithLogger replaces the store's logger
func (s *ScopeStore) WithLogger(logger *log.Logger) *ScopeStore {
	s.logger = logger
	return s
}

// Kind returns the scope kind this store persists
func (s *ScopeStore) Kind() scope.Kind {
	return s.kind
}

// Hydrate loads the persisted scope into memory. A backend failure or an
// undecodable value leaves the store unresolved; the backend error is returned
// so callers can report it, but the store stays usable.
func (s *ScopeStore) Hydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hydrated = true
	s.current = nil

	data, err := s.kv.Get(s.kind.StorageKey())
	if err != nil {
		s.logger.Warn("scope storage unavailable, starting unresolved", "key", s.kind.StorageKey(), "err", err)
		return fmt.Errorf("hydrating scope: %w", err)
	}
	if data == nil {
		return nil
	}

	decoded, err := s.kind.Decode(data)
	if err != nil {
		s.logger.Warn("ignoring unreadable stored scope", "key", s.kind.StorageKey(), "err", err)
		return nil
	}
	s.current = decoded
	return nil
}

// Hydrated reports whether Hydrate has run
func (s *ScopeStore) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Get returns the active scope, or nil when unresolved
func (s *ScopeStore) Get() scope.Scope {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Require returns the active scope or ErrNoScope
func (s *ScopeStore) Require() (scope.Scope, error) {
	if current := s.Get(); current != nil {
		return current, nil
	}
	return nil, ErrNoScope
}

// Set persists sc and then makes it the active scope. When the write fails the
// previous scope stays active. Setting the same scope twice leaves one value.
func (s *ScopeStore) Set(sc scope.Scope) error {
	if sc == nil {
		return errors.New("cannot store a nil scope")
	}
	data, err := s.kind.Encode(sc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Set(s.kind.StorageKey(), data); err != nil {
		return fmt.Errorf("persisting scope: %w", err)
	}
	s.current = sc
	s.hydrated = true
	s.logger.Debug("scope stored", "kind", s.kind.Name(), "param", sc.Param().String())
	return nil
}
