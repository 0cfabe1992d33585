package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerva/pkg/errors"
)

type countingWorker struct {
	*BaseWorker
	runs        atomic.Int64
	err         error
	shouldPanic bool
}

func newCountingWorker(name string, interval time.Duration, enabled bool) *countingWorker {
	return &countingWorker{
		BaseWorker: NewBaseWorker(name, interval, enabled),
	}
}

func (w *countingWorker) Run(ctx context.Context) error {
	w.runs.Add(1)
	if w.shouldPanic {
		panic("boom")
	}
	return w.err
}

func TestScheduler_RunsWorkerImmediatelyAndOnInterval(t *testing.T) {
	s := NewScheduler()
	w := newCountingWorker("counting", 20*time.Millisecond, true)
	s.RegisterWorker(w)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	time.Sleep(70 * time.Millisecond)
	assert.GreaterOrEqual(t, w.runs.Load(), int64(2))
}

func TestScheduler_SkipsDisabledWorker(t *testing.T) {
	s := NewScheduler()
	w := newCountingWorker("disabled", 10*time.Millisecond, false)
	s.RegisterWorker(w)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int64(0), w.runs.Load())
}

func TestScheduler_StartTwiceFails(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	err := s.Start(context.Background())
	assert.ErrorIs(t, err, errors.ErrInternal)
}

func TestScheduler_StopWithoutStartFails(t *testing.T) {
	s := NewScheduler()
	assert.ErrorIs(t, s.Stop(), errors.ErrInternal)
}

func TestScheduler_StopStopsWorkers(t *testing.T) {
	s := NewScheduler()
	w := newCountingWorker("stoppable", 10*time.Millisecond, true)
	s.RegisterWorker(w)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())

	after := w.runs.Load()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, after, w.runs.Load())
}

func TestScheduler_RegisterAfterStartIgnored(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	late := newCountingWorker("late", 10*time.Millisecond, true)
	s.RegisterWorker(late)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int64(0), late.runs.Load())
}

func TestScheduler_RecoversFromPanic(t *testing.T) {
	s := NewScheduler()
	w := newCountingWorker("panicking", 15*time.Millisecond, true)
	w.shouldPanic = true
	s.RegisterWorker(w)

	require.NoError(t, s.Start(context.Background()))

	time.Sleep(50 * time.Millisecond)
	assert.GreaterOrEqual(t, w.runs.Load(), int64(2))
	require.NoError(t, s.Stop())
}

func TestScheduler_WorkerErrorDoesNotStopLoop(t *testing.T) {
	s := NewScheduler()
	w := newCountingWorker("failing", 15*time.Millisecond, true)
	w.err = errors.New("transient failure")
	s.RegisterWorker(w)

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.GreaterOrEqual(t, w.runs.Load(), int64(2))
}
