package llm

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/job-screening/internal/logging"
	"go.uber.org/zap"
)

// RetryingClient bounds each generation call with a timeout and retries a failed call.
type RetryingClient struct {
	inner      Client
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
	maxLogLen  int
}

// RetryOptions configures a RetryingClient.
type RetryOptions struct {
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
	MaxLogLen  int
}

// NewRetryingClient wraps inner. Zero options mean no timeout and no retry.
func NewRetryingClient(inner Client, opts RetryOptions, logger *zap.Logger) *RetryingClient {
	if opts.MaxLogLen <= 0 {
		opts.MaxLogLen = 300
	}
	return &RetryingClient{
		inner:      inner,
		timeout:    opts.Timeout,
		maxRetries: opts.MaxRetries,
		backoff:    opts.Backoff,
		logger:     logging.WithComponent(logger, "llm"),
		maxLogLen:  opts.MaxLogLen,
	}
}

// GenerateContent calls the wrapped client with timeout and retry.
func (c *RetryingClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.do(ctx, tier, func(ctx context.Context) (string, error) {
		return c.inner.GenerateContent(ctx, prompt, tier)
	})
}

// GenerateJSON calls the wrapped client with timeout and retry.
func (c *RetryingClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.do(ctx, tier, func(ctx context.Context) (string, error) {
		return c.inner.GenerateJSON(ctx, prompt, tier)
	})
}

// GetModel returns the wrapped client's model for tier.
func (c *RetryingClient) GetModel(tier ModelTier) string {
	return c.inner.GetModel(tier)
}

// Close closes the wrapped client.
func (c *RetryingClient) Close() error {
	return c.inner.Close()
}

func (c *RetryingClient) do(ctx context.Context, tier ModelTier, call func(context.Context) (string, error)) (string, error) {
	logger := c.logger.With(zap.String(logging.FieldModel, c.inner.GetModel(tier)))

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, c.backoff); err != nil {
				return "", errors.Join(lastErr, err)
			}
		}

		out, err := c.attempt(ctx, call)
		if err == nil {
			logger.Debug("generation succeeded",
				zap.Int("attempt", attempt+1),
				zap.String("response", logging.TruncateForLog(out, c.maxLogLen)))
			return out, nil
		}
		lastErr = err

		// The caller gave up; a retry cannot succeed.
		if ctx.Err() != nil {
			return "", err
		}
		logger.Warn("generation attempt failed", zap.Int("attempt", attempt+1), zap.Error(err))
	}
	return "", lastErr
}

func (c *RetryingClient) attempt(ctx context.Context, call func(context.Context) (string, error)) (string, error) {
	if c.timeout <= 0 {
		return call(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return call(ctx)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
