// Package store persists player progress and the power-up inventory.
// Disk access goes through a circuit breaker so a broken save location
// degrades to an in-memory session instead of stalling every frame that
// tries to save.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-slingshot/pkg/config"
	"github.com/opd-ai/go-slingshot/pkg/logging"
)

// ErrUnavailable is returned while the breaker is open after repeated storage failures
var ErrUnavailable = errors.New("save storage unavailable")

// Operation is one storage access
type Operation func() error

// Breaker wraps storage operations with a circuit breaker and retries
type Breaker struct {
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger

	// Retries is how many extra attempts ExecuteWithRetry makes
	Retries int
	// RetryDelay is the base delay, multiplied by the attempt number
	RetryDelay time.Duration
}

// NewBreaker creates a breaker configured from the environment's circuit breaker settings
func NewBreaker(name string, envConfig *config.EnvironmentConfig, logger *logging.Logger) *Breaker {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	maxFails := envConfig.CircuitBreakerMaxConsecutiveFails
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: envConfig.CircuitBreakerMaxRequests,
		Interval:    envConfig.CircuitBreakerInterval,
		Timeout:     envConfig.CircuitBreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFails
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background(), "circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &Breaker{
		breaker:    gobreaker.NewCircuitBreaker(settings),
		logger:     logger,
		Retries:    2,
		RetryDelay: 100 * time.Millisecond,
	}
}

// Execute runs op through the breaker. An open breaker fails fast with ErrUnavailable.
func (b *Breaker) Execute(ctx context.Context, op Operation) error {
	_, err := b.breaker.Execute(func() (interface{}, error) {
		return nil, op()
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	b.logger.LogWithContext(ctx, slog.LevelError, "storage operation failed",
		"error", err.Error(),
		"state", b.breaker.State().String(),
	)
	return err
}

// ExecuteWithRetry runs op, retrying failures with a linear backoff until the
// retries are used up, the breaker opens or ctx is done
func (b *Breaker) ExecuteWithRetry(ctx context.Context, op Operation) error {
	var err error
	for attempt := 0; attempt <= b.Retries; attempt++ {
		if err = b.Execute(ctx, op); err == nil {
			return nil
		}
		if errors.Is(err, ErrUnavailable) || attempt == b.Retries {
			break
		}

		delay := time.Duration(attempt+1) * b.RetryDelay
		b.logger.Warn(ctx, "storage operation failed, retrying",
			"attempt", attempt+1,
			"delay", delay.String(),
		)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		}
	}
	return err
}

// State returns the breaker state
func (b *Breaker) State() gobreaker.State {
	return b.breaker.State()
}

// Counts returns the breaker's success and failure counters
func (b *Breaker) Counts() gobreaker.Counts {
	return b.breaker.Counts()
}
