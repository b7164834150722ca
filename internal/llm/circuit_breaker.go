// ABOUTME: Circuit breaker guarding agent calls from cascading failures
// ABOUTME: Cancellation by the caller does not count against the agent
package llm

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sony/gobreaker"

	"github.com/harper/radar-oficial/internal/logging"
)

// ErrCircuitOpen is returned when the breaker rejects a call without trying it
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig holds the configuration for the circuit breaker.
type CircuitBreakerConfig struct {
	// MaxFailures is the number of consecutive failures required to trip the circuit.
	MaxFailures uint32

	// Timeout is how long the circuit stays open before allowing a trial call.
	Timeout time.Duration

	// HalfOpenMaxRequests is the number of trial calls allowed while half-open.
	HalfOpenMaxRequests uint32
}

// DefaultCircuitBreakerConfig trips after 3 consecutive failures for 30 seconds
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxFailures:         3,
		Timeout:             30 * time.Second,
		HalfOpenMaxRequests: 1,
	}
}

// CircuitBreaker wraps gobreaker for agent calls
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	logger  *log.Logger
}

// NewCircuitBreakerWithConfig creates a circuit breaker. Zero fields take the defaults.
func NewCircuitBreakerWithConfig(config CircuitBreakerConfig) *CircuitBreaker {
	defaults := DefaultCircuitBreakerConfig()
	if config.MaxFailures == 0 {
		config.MaxFailures = defaults.MaxFailures
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.HalfOpenMaxRequests == 0 {
		config.HalfOpenMaxRequests = defaults.HalfOpenMaxRequests
	}

	cb := &CircuitBreaker{logger: logging.Component("breaker")}
	cb.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "agent",
		MaxRequests: config.HalfOpenMaxRequests,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			cb.logger.Warn("circuit state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return cb
}

// Execute runs fn through the breaker. An open circuit returns ErrCircuitOpen.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() (interface{}, error)) (interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := cb.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrCircuitOpen
	}
	return result, err
}

// State reports the breaker state: closed, half-open or open
func (cb *CircuitBreaker) State() string {
	return cb.breaker.State().String()
}
