package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/ppiankov/geolens/internal/model"
)

// BreakerConfig configures the circuit breaker around a provider
type BreakerConfig struct {
	MaxRequests uint32        // Allowed through while half-open
	Interval    time.Duration // Closed-state counter reset period
	Timeout     time.Duration // How long the breaker stays open

	// Trip once this many requests in a row fail
	ConsecutiveFailures uint32
}

// DefaultBreakerConfig returns defaults suited to a single LLM endpoint
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:         1,
		Interval:            60 * time.Second,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// BreakerProvider stops calling a provider that keeps failing
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker wraps p in a circuit breaker
func WithBreaker(p Provider, config BreakerConfig, logger *zap.Logger) *BreakerProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.ConsecutiveFailures == 0 {
		config.ConsecutiveFailures = DefaultBreakerConfig().ConsecutiveFailures
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        p.Name(),
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= config.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("llm circuit breaker state changed",
				zap.String("provider", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
		// Rate limits and caller cancellation say nothing about service health
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			_, limited := IsRateLimit(err)
			return limited
		},
	})

	return &BreakerProvider{next: p, cb: cb}
}

func (b *BreakerProvider) Name() string { return b.next.Name() }

func (b *BreakerProvider) IsAvailable(ctx context.Context) bool {
	if b.cb.State() == gobreaker.StateOpen {
		return false
	}
	return b.next.IsAvailable(ctx)
}

// State returns the breaker state, e.g. for health checks
func (b *BreakerProvider) State() string {
	return b.cb.State().String()
}

// Complete forwards to the wrapped provider unless the breaker is open
func (b *BreakerProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Complete(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %s: %v", model.ErrServiceUnavailable, b.next.Name(), err)
		}
		return nil, err
	}
	return out.(*CompletionResponse), nil
}
