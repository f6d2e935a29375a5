package poller

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int64
	err   error
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls.Add(1)
	return r.err
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestPoller_FetchesImmediatelyThenEveryInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewFakeClock()
	refresher := &countingRefresher{}
	p := New(refresher, 5*time.Second, clock, quietLogger())

	p.Start(ctx)

	// первый запрос выполняется до создания тикера
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	assert.Equal(t, int64(1), refresher.calls.Load())

	clock.Advance(5 * time.Second)
	assert.Eventually(t, func() bool { return refresher.calls.Load() == 2 }, time.Second, 5*time.Millisecond)

	clock.Advance(5 * time.Second)
	assert.Eventually(t, func() bool { return refresher.calls.Load() == 3 }, time.Second, 5*time.Millisecond)

	cancel()
	p.Wait()
}

func TestPoller_NoTickBeforeInterval(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewFakeClock()
	refresher := &countingRefresher{}
	p := New(refresher, 5*time.Second, clock, quietLogger())

	p.Start(ctx)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(4 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(1), refresher.calls.Load())

	cancel()
	p.Wait()
}

func TestPoller_ErrorsDoNotStopPolling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewFakeClock()
	refresher := &countingRefresher{err: errors.New("upstream down")}
	p := New(refresher, time.Second, clock, quietLogger())

	p.Start(ctx)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return refresher.calls.Load() == 2 }, time.Second, 5*time.Millisecond)

	cancel()
	p.Wait()
}

func TestPoller_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	clock := clockwork.NewFakeClock()
	refresher := &countingRefresher{}
	p := New(refresher, time.Second, clock, quietLogger())

	p.Start(ctx)
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	cancel()
	p.Wait()

	clock.Advance(10 * time.Second)
	assert.Equal(t, int64(1), refresher.calls.Load())
}
