package circuit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errBoom = errors.New("boom")

func newTestBreaker(cfg Config) (*Breaker, *time.Time) {
	b := NewBreaker("test", cfg, zap.NewNop())
	now := time.Unix(0, 0)
	b.now = func() time.Time { return now }
	return b, &now
}

func failing(context.Context) error { return errBoom }
func ok(context.Context) error      { return nil }

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 3, Timeout: time.Second, SuccessThreshold: 1, MaxHalfOpen: 1})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, b.Execute(ctx, failing), errBoom)
	}

	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Execute(ctx, ok), ErrCircuitOpen)
	assert.Equal(t, 3, b.Stats().Failures)
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 2, Timeout: time.Second, SuccessThreshold: 1, MaxHalfOpen: 1})
	ctx := context.Background()

	_ = b.Execute(ctx, failing)
	require.NoError(t, b.Execute(ctx, ok))
	_ = b.Execute(ctx, failing)

	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenRecovers(t *testing.T) {
	b, now := newTestBreaker(Config{Threshold: 1, Timeout: time.Second, SuccessThreshold: 2, MaxHalfOpen: 1})
	ctx := context.Background()

	_ = b.Execute(ctx, failing)
	require.Equal(t, StateOpen, b.State())

	*now = now.Add(2 * time.Second)
	require.NoError(t, b.Execute(ctx, ok))
	assert.Equal(t, StateHalfOpen, b.State())

	require.NoError(t, b.Execute(ctx, ok))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, now := newTestBreaker(Config{Threshold: 1, Timeout: time.Second, SuccessThreshold: 1, MaxHalfOpen: 1})
	ctx := context.Background()

	_ = b.Execute(ctx, failing)
	*now = now.Add(2 * time.Second)

	assert.ErrorIs(t, b.Execute(ctx, failing), errBoom)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_HalfOpenLimitsProbes(t *testing.T) {
	b, now := newTestBreaker(Config{Threshold: 1, Timeout: time.Second, SuccessThreshold: 1, MaxHalfOpen: 1})

	b.Record(errBoom)
	*now = now.Add(2 * time.Second)

	require.NoError(t, b.Allow())
	assert.ErrorIs(t, b.Allow(), ErrTooManyRequests)
}

func TestBreaker_CallerCancellationNotCounted(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 1, Timeout: time.Second, SuccessThreshold: 1, MaxHalfOpen: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := b.Execute(ctx, func(ctx context.Context) error { return ctx.Err() })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_Reset(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 1, Timeout: time.Hour, SuccessThreshold: 1, MaxHalfOpen: 1})

	b.Record(errBoom)
	require.Equal(t, StateOpen, b.State())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "CLOSED", b.Stats().State)
}
