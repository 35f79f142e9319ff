package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"github.com/thevoltagesource/myicomfort/pkg/icomfort"
)

// CircuitBreakerConfig configures the circuit breaker behavior
type CircuitBreakerConfig struct {
	// MaxConsecutiveFailures is the number of consecutive failures before opening
	MaxConsecutiveFailures uint32
	// Timeout is how long the circuit breaker stays open before trying half-open
	Timeout time.Duration
}

// DefaultCircuitBreakerConfig returns sensible defaults
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxConsecutiveFailures: 5,
		Timeout:                30 * time.Second,
	}
}

// CircuitBreakerState represents the circuit breaker state
type CircuitBreakerState int

const (
	CircuitClosed CircuitBreakerState = iota
	CircuitOpen
	CircuitHalfOpen
)

// circuitBreakerAPI wraps ThermostatAPI with circuit breaker protection,
// so a dead vendor endpoint is not hammered on every Prometheus scrape.
type circuitBreakerAPI struct {
	api      ThermostatAPI
	breaker  *gobreaker.CircuitBreaker
	timeout  time.Duration
	lastErr  error
	lastTime time.Time
}

// NewThermostatAPIWithCircuitBreaker wraps a ThermostatAPI with circuit breaker protection
func NewThermostatAPIWithCircuitBreaker(api ThermostatAPI, config CircuitBreakerConfig) ThermostatAPI {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ThermostatAPI",
		MaxRequests: 1,
		Interval:    config.Timeout,
		Timeout:     2 * config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.MaxConsecutiveFailures
		},
	})

	return &circuitBreakerAPI{
		api:     api,
		breaker: cb,
		timeout: config.Timeout,
	}
}

// PullStatus implements ThermostatAPI.PullStatus with circuit breaker protection
func (cb *circuitBreakerAPI) PullStatus(ctx context.Context) (*icomfort.Snapshot, error) {
	result, err := cb.breaker.Execute(func() (interface{}, error) {
		return cb.api.PullStatus(ctx)
	})

	if err != nil {
		cb.lastErr = err
		cb.lastTime = time.Now()
		return nil, cb.wrapError(err)
	}

	return result.(*icomfort.Snapshot), nil
}

// wrapError converts circuit breaker errors to user-friendly messages
func (cb *circuitBreakerAPI) wrapError(err error) error {
	if err == gobreaker.ErrOpenState {
		return fmt.Errorf("circuit breaker is open: cloud service is temporarily unavailable (will retry after %v)", cb.timeout)
	}
	if err == gobreaker.ErrTooManyRequests {
		return fmt.Errorf("circuit breaker is half-open: testing cloud service recovery")
	}
	return err
}

// State returns the current circuit breaker state
func (cb *circuitBreakerAPI) State() CircuitBreakerState {
	switch cb.breaker.State() {
	case gobreaker.StateOpen:
		return CircuitOpen
	case gobreaker.StateHalfOpen:
		return CircuitHalfOpen
	default:
		return CircuitClosed
	}
}

// LastError returns the last error that occurred
func (cb *circuitBreakerAPI) LastError() error {
	return cb.lastErr
}

// LastErrorTime returns when the last error occurred
func (cb *circuitBreakerAPI) LastErrorTime() time.Time {
	return cb.lastTime
}
