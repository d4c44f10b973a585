package lexical

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Default call policy for the lookup service
const (
	DefaultDelay      = 100 * time.Millisecond
	DefaultTimeout    = 5 * time.Second
	DefaultMaxRetries = 3
	DefaultBackoff    = 1 * time.Second
)

// LimiterConfig controls call spacing, per-attempt timeout and retries
type LimiterConfig struct {
	Delay      time.Duration
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
}

// DefaultLimiterConfig returns the standard call policy
func DefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Delay:      DefaultDelay,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		Backoff:    DefaultBackoff,
	}
}

// Limiter spaces outbound calls and retries failed ones.
// A single Limiter is shared by all goroutines calling the service.
type Limiter struct {
	limiter    *rate.Limiter
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
}

// NewLimiter creates a limiter allowing one call per cfg.Delay
func NewLimiter(cfg LimiterConfig, logger *zap.Logger) *Limiter {
	every := rate.Inf
	if cfg.Delay > 0 {
		every = rate.Every(cfg.Delay)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Limiter{
		limiter:    rate.NewLimiter(every, 1),
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff,
		logger:     logger,
	}
}

// Throttle blocks until the minimum delay since the previous call has passed
func (l *Limiter) Throttle(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Call runs fn with a per-attempt timeout. Failed attempts are retried
// after Backoff*attempt, up to MaxRetries times; the last error is returned.
func (l *Limiter) Call(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= l.maxRetries; attempt++ {
		if attempt > 0 {
			wait := l.backoff * time.Duration(attempt)
			l.logger.Debug("Retrying lookup",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", wait),
				zap.Error(lastErr),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		if err := l.Throttle(ctx); err != nil {
			return fmt.Errorf("throttle: %w", err)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, l.timeout)
		err := fn(attemptCtx)
		cancel()

		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		lastErr = err
	}

	return fmt.Errorf("%s failed after %d attempts: %w", op, l.maxRetries+1, lastErr)
}
