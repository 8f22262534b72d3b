package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedClient returns errs[i] (or out when nil) on the i-th call.
type scriptedClient struct {
	errs     []error
	out      string
	calls    int
	deadline bool
	block    bool
}

func (s *scriptedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return s.GenerateJSON(ctx, prompt, tier)
}

func (s *scriptedClient) GenerateJSON(ctx context.Context, _ string, _ ModelTier) (string, error) {
	s.calls++
	_, s.deadline = ctx.Deadline()
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if i := s.calls - 1; i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return s.out, nil
}

func (s *scriptedClient) GetModel(_ ModelTier) string { return "test-model" }
func (s *scriptedClient) Close() error                { return nil }

func TestRetryingClient_SucceedsFirstTry(t *testing.T) {
	inner := &scriptedClient{out: `{"ok": true}`}
	c := NewRetryingClient(inner, RetryOptions{Timeout: time.Second, MaxRetries: 1}, nil)

	out, err := c.GenerateJSON(context.Background(), "p", TierStandard)
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, out)
	assert.Equal(t, 1, inner.calls)
	assert.True(t, inner.deadline, "attempt should run under a timeout")
}

func TestRetryingClient_RetriesOnce(t *testing.T) {
	inner := &scriptedClient{errs: []error{errors.New("503")}, out: "text"}
	c := NewRetryingClient(inner, RetryOptions{MaxRetries: 1}, nil)

	out, err := c.GenerateContent(context.Background(), "p", TierLite)
	require.NoError(t, err)
	assert.Equal(t, "text", out)
	assert.Equal(t, 2, inner.calls)
}

func TestRetryingClient_GivesUpAfterOneRetry(t *testing.T) {
	inner := &scriptedClient{errs: []error{errors.New("first"), errors.New("second"), nil}}
	c := NewRetryingClient(inner, RetryOptions{MaxRetries: 1}, nil)

	_, err := c.GenerateJSON(context.Background(), "p", TierStandard)
	require.Error(t, err)
	assert.Equal(t, "second", err.Error())
	assert.Equal(t, 2, inner.calls)
}

func TestRetryingClient_TimeoutPerAttempt(t *testing.T) {
	inner := &scriptedClient{block: true}
	c := NewRetryingClient(inner, RetryOptions{Timeout: 20 * time.Millisecond, MaxRetries: 1}, nil)

	start := time.Now()
	_, err := c.GenerateJSON(context.Background(), "p", TierStandard)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 2, inner.calls)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRetryingClient_NoRetryWhenCallerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	inner := &scriptedClient{block: true}
	c := NewRetryingClient(inner, RetryOptions{MaxRetries: 3}, nil)

	_, err := c.GenerateJSON(ctx, "p", TierStandard)
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryingClient_Delegates(t *testing.T) {
	c := NewRetryingClient(&scriptedClient{}, RetryOptions{}, nil)
	assert.Equal(t, "test-model", c.GetModel(TierStandard))
	assert.NoError(t, c.Close())
}
