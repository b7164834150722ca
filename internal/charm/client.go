// ABOUTME: Charm KV client backing the persisted scope
// ABOUTME: Cloud-synced via SSH key auth so a chosen scope follows the user across devices
package charm

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
)

// ScopePrefix namespaces scope keys inside the charm database
const ScopePrefix = "scope:"

// ErrClosed is returned by operations on a closed client
var ErrClosed = errors.New("charm client is closed")

// Config holds charm client configuration
type Config struct {
	Host     string
	DBName   string
	AutoSync bool
}

// DefaultConfig returns default configuration for charm client
func DefaultConfig() *Config {
	host := os.Getenv("CHARM_HOST")
	if host == "" {
		host = "cloud.charm.sh"
	}
	return &Config{
		Host:     host,
		DBName:   "radar",
		AutoSync: true,
	}
}

// Client is one open charm KV database. Safe for concurrent use.
type Client struct {
	config Config

	mu sync.Mutex
	kv *kv.KV
}

// Open opens the charm database named in cfg and, with AutoSync, pulls
// remote changes so a scope picked on another device is visible
func Open(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	// The charm libraries read the host from the environment
	if err := os.Setenv("CHARM_HOST", cfg.Host); err != nil {
		return nil, fmt.Errorf("setting CHARM_HOST: %w", err)
	}

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv %s: %w", cfg.DBName, err)
	}

	c := &Client{config: *cfg, kv: db}
	if cfg.AutoSync {
		_ = db.Sync()
	}
	return c, nil
}

// Close closes the database. Closing twice is a no-op.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv == nil {
		return nil
	}
	err := c.kv.Close()
	c.kv = nil
	return err
}

// ID returns the charm account id linked to the local SSH key
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// Host returns the charm host this client talks to
func (c *Client) Host() string {
	return c.config.Host
}

// Get reads a scope slot. A missing key returns (nil, nil).
func (c *Client) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv == nil {
		return nil, ErrClosed
	}

	data, err := c.kv.Get([]byte(ScopeKey(key)))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return data, nil
}

// Set writes a scope slot, then pushes it to the cloud when AutoSync is on
func (c *Client) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv == nil {
		return ErrClosed
	}

	if err := c.kv.Set([]byte(ScopeKey(key)), value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
	return nil
}

// ListKeys returns the stored scope keys without the namespace prefix
func (c *Client) ListKeys() ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv == nil {
		return nil, ErrClosed
	}

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	var result []string
	for _, key := range keys {
		if name, ok := strings.CutPrefix(string(key), ScopePrefix); ok {
			result = append(result, name)
		}
	}
	return result, nil
}

// Sync pushes and pulls with the charm cloud
func (c *Client) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv == nil {
		return ErrClosed
	}
	return c.kv.Sync()
}

// ScopeKey namespaces a storage key ("diarioState" -> "scope:diarioState")
func ScopeKey(key string) string {
	return ScopePrefix + key
}
