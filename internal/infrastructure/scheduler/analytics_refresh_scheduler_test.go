package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshAll(ctx context.Context) (int, error) {
	r.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("missing job timeout")
	}
	return 2, r.err
}

func TestAnalyticsRefreshScheduler_RunsOnStartAndTicks(t *testing.T) {
	refresher := &countingRefresher{}
	s := NewAnalyticsRefreshScheduler(refresher, zap.NewNop(), AnalyticsRefreshConfig{
		Enabled:    true,
		Interval:   10 * time.Millisecond,
		JobTimeout: time.Second,
		RunOnStart: true,
	})

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.Eventually(t, func() bool { return refresher.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))
	assert.False(t, s.IsRunning())

	calls := refresher.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, refresher.calls.Load())
}

func TestAnalyticsRefreshScheduler_Disabled(t *testing.T) {
	refresher := &countingRefresher{}
	s := NewAnalyticsRefreshScheduler(refresher, zap.NewNop(), AnalyticsRefreshConfig{Enabled: false})

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
	require.NoError(t, s.Stop(context.Background()))
	assert.Zero(t, refresher.calls.Load())
}

func TestAnalyticsRefreshScheduler_RunOnceLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	refresher := &countingRefresher{err: errors.New("supplier x: db down")}
	s := NewAnalyticsRefreshScheduler(refresher, zap.New(core), AnalyticsRefreshConfig{Enabled: true, JobTimeout: time.Second})

	s.RunOnce(context.Background())

	entries := logs.FilterMessage("Analytics refresh run finished with errors").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["refreshed"])
}
