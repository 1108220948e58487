package openai

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RetryPolicy bounds every service call: each attempt gets Timeout, failed
// retryable attempts wait InitialDelay doubled per attempt up to MaxDelay.
type RetryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Timeout      time.Duration
}

// Delay returns the wait before retry number attempt (1-based).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt <= 0 || p.InitialDelay <= 0 {
		return 0
	}
	delay := p.InitialDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// Retry runs fn until it succeeds, fails with a non-retryable error, the
// attempts are exhausted or ctx ends. Errors are returned as *ServiceError.
func Retry[T any](ctx context.Context, policy RetryPolicy, logger *zap.Logger, service string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr *ServiceError

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := policy.Delay(attempt)
			logger.Warn("Retrying service call",
				zap.String("service", service),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr))

			select {
			case <-ctx.Done():
				return zero, ClassifyError(service, ctx.Err())
			case <-time.After(delay):
			}
		}

		result, err := runAttempt(ctx, policy.Timeout, fn)
		if err == nil {
			return result, nil
		}

		lastErr = ClassifyError(service, err)
		if !lastErr.Retryable || ctx.Err() != nil {
			break
		}
	}

	return zero, lastErr
}

func runAttempt[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return fn(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(attemptCtx)
}
