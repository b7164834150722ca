// ABOUTME: Selection presenter: lists options for the select tool and applies a pick
// ABOUTME: A pick is stored first, then the thread is renamed and acknowledged
package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harper/radar-oficial/internal/logging"
	"github.com/harper/radar-oficial/internal/models"
	"github.com/harper/radar-oficial/internal/scope"
	"github.com/harper/radar-oficial/internal/util"
)

// ErrUnknownOption is returned when a pick matches no listed option
var ErrUnknownOption = errors.New("unknown option")

// ScopeWriter persists a resolved scope; implemented by storage.ScopeStore
type ScopeWriter interface {
	Set(s scope.Scope) error
}

// ThreadRuntime is the part of the conversation thread the presenter drives
type ThreadRuntime interface {
	Rename(title string) bool
	Append(msg models.Message)
}

// Presenter renders the choices for the kind's select tool and turns a pick into a scope
type Presenter struct {
	kind       scope.Kind
	dir        scope.Directory
	store      ScopeWriter
	thread     ThreadRuntime
	retries    int
	retryDelay time.Duration
	logger     *log.Logger

	mu      sync.RWMutex
	options []scope.Option
	loaded  bool
	loadErr error
}

// PresenterOption customizes a Presenter
type PresenterOption func(*Presenter)

// WithDirectoryRetry retries a failed directory fetch with exponential backoff
func WithDirectoryRetry(retries int, baseDelay time.Duration) PresenterOption {
	return func(p *Presenter) {
		p.retries = retries
		p.retryDelay = baseDelay
	}
}

// NewPresenter creates a presenter. Options stay empty until Mount completes.
func NewPresenter(kind scope.Kind, dir scope.Directory, store ScopeWriter, thread ThreadRuntime, opts ...PresenterOption) *Presenter {
	p := &Presenter{
		kind:   kind,
		dir:    dir,
		store:  store,
		thread: thread,
		logger: logging.Component("presenter"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ToolName is the select tool this presenter renders
func (p *Presenter) ToolName() string {
	return p.kind.SelectToolName()
}

// Mount fetches the options once. A failure is logged and leaves the list
// empty; it is returned for callers that want to report it.
func (p *Presenter) Mount(ctx context.Context) error {
	var options []scope.Option
	err := util.Retry(ctx, p.retries, p.retryDelay, func(ctx context.Context) error {
		var err error
		options, err = p.kind.ListOptions(ctx, p.dir)
		if err != nil {
			p.logger.Debug("directory fetch failed", "kind", p.kind.Name(), "err", err)
		}
		return err
	})

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loaded = true
	p.loadErr = err
	if err != nil {
		p.options = nil
		p.logger.Warn("could not load options", "kind", p.kind.Name(), "err", err)
		return fmt.Errorf("loading %s options: %w", p.kind.Name(), err)
	}
	p.options = options
	p.logger.Debug("options loaded", "kind", p.kind.Name(), "count", len(options))
	return nil
}

// MountAsync runs Mount in the background; the channel closes when it finishes
func (p *Presenter) MountAsync(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = p.Mount(ctx)
	}()
	return done
}

// Options returns the loaded options; empty while the fetch is pending or after it failed
func (p *Presenter) Options() []scope.Option {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]scope.Option, len(p.options))
	copy(out, p.options)
	return out
}

// Loaded reports whether Mount finished, and its error
func (p *Presenter) Loaded() (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded, p.loadErr
}

// Find resolves user input to an option: by value (slug or code), by
// 1-based position, or by label, case-insensitively
func (p *Presenter) Find(input string) (scope.Option, error) {
	input = strings.TrimSpace(input)
	options := p.Options()

	n, numErr := strconv.Atoi(input)
	if numErr == nil && n >= 1 && n <= len(options) {
		return options[n-1], nil
	}
	// Slugs may be numeric ("2024"), so an out-of-range number is still tried as a value
	for _, opt := range options {
		if strings.EqualFold(opt.Value, input) || strings.EqualFold(opt.Label, input) {
			return opt, nil
		}
	}
	if numErr == nil {
		return scope.Option{}, fmt.Errorf("%w: %d (choose 1-%d)", ErrUnknownOption, n, len(options))
	}
	return scope.Option{}, fmt.Errorf("%w: %q", ErrUnknownOption, input)
}

// Select applies a pick: store the scope, rename the thread, then append the
// acknowledgment tool call. If the store write fails nothing else happens.
func (p *Presenter) Select(opt scope.Option) (models.Message, error) {
	if opt.Scope == nil {
		return models.Message{}, fmt.Errorf("%w: option %q has no scope", ErrUnknownOption, opt.Value)
	}
	if err := p.store.Set(opt.Scope); err != nil {
		return models.Message{}, fmt.Errorf("saving selection: %w", err)
	}

	if !p.thread.Rename(opt.Label) {
		p.logger.Debug("thread already titled, keeping title", "label", opt.Label)
	}

	ack := models.NewAssistantMessage([]models.ContentBlock{
		models.ToolCallBlock(p.kind.SelectedToolName()),
	})
	p.thread.Append(ack)

	p.logger.Info("scope selected", "kind", p.kind.Name(), "value", opt.Value, "label", opt.Label)
	return ack, nil
}
