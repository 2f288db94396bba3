package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/pagewatch/internal/models"
)

type countingRunner struct {
	mu     sync.Mutex
	counts map[string]int
	block  chan struct{}
}

func newCountingRunner() *countingRunner {
	return &countingRunner{counts: make(map[string]int)}
}

func (r *countingRunner) RunCycle(_ context.Context, target models.Target) CycleResult {
	r.mu.Lock()
	r.counts[target.ID]++
	r.mu.Unlock()
	if r.block != nil {
		<-r.block
	}
	return CycleResult{TargetID: target.ID, State: CycleSucceeded}
}

func (r *countingRunner) count(targetID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[targetID]
}

func schedulerTargets() []models.Target {
	return []models.Target{
		{ID: "fast", URL: "https://example.com/fast", Selector: "main", Interval: 10 * time.Second},
		{ID: "slow", URL: "https://example.com/slow", Selector: "main", Interval: time.Minute},
	}
}

func TestColdStartMarksAllTargetsDue(t *testing.T) {
	s := NewPatrolScheduler(schedulerTargets(), newCountingRunner(), 2, zerolog.Nop())

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	s.coldStart()
	due := s.collectDue(base)
	assert.Len(t, due, 2, "every target is due immediately on startup")
}

func TestCollectDueAdvancesByInterval(t *testing.T) {
	s := NewPatrolScheduler(schedulerTargets(), newCountingRunner(), 2, zerolog.Nop())

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	s.coldStart()

	require.Len(t, s.collectDue(base), 2)
	s.markDone("fast")
	s.markDone("slow")

	// Next-due advanced from dispatch time, independent of cycle outcome.
	fastDue, ok := s.NextDue("fast")
	require.True(t, ok)
	assert.Equal(t, base.Add(10*time.Second), fastDue)

	assert.Empty(t, s.collectDue(base.Add(5*time.Second)))

	due := s.collectDue(base.Add(15 * time.Second))
	require.Len(t, due, 1, "only the fast target is due again")
	assert.Equal(t, "fast", due[0].ID)
}

func TestCollectDueSkipsInFlightTarget(t *testing.T) {
	s := NewPatrolScheduler(schedulerTargets(), newCountingRunner(), 2, zerolog.Nop())

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }
	s.coldStart()

	require.Len(t, s.collectDue(base), 2)

	// Both cycles are still running, so nothing is due even long past the
	// intervals.
	assert.Empty(t, s.collectDue(base.Add(time.Hour)))

	s.markDone("fast")
	due := s.collectDue(base.Add(time.Hour))
	require.Len(t, due, 1)
	assert.Equal(t, "fast", due[0].ID)
}

func TestRunOncePatrolsEveryTargetOnce(t *testing.T) {
	runner := newCountingRunner()
	s := NewPatrolScheduler(schedulerTargets(), runner, 2, zerolog.Nop())

	s.RunOnce(context.Background())

	assert.Equal(t, 1, runner.count("fast"))
	assert.Equal(t, 1, runner.count("slow"))
}

func TestRunStopsOnContextCancel(t *testing.T) {
	runner := newCountingRunner()
	s := NewPatrolScheduler(schedulerTargets(), runner, 2, zerolog.Nop())
	s.pollInterval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// The cold-start round runs each target once.
	assert.Eventually(t, func() bool {
		return runner.count("fast") >= 1 && runner.count("slow") >= 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	targets := []models.Target{
		{ID: "a", URL: "https://example.com/a", Selector: "main", Interval: time.Minute},
		{ID: "b", URL: "https://example.com/b", Selector: "main", Interval: time.Minute},
		{ID: "c", URL: "https://example.com/c", Selector: "main", Interval: time.Minute},
	}
	runner := newCountingRunner()
	runner.block = make(chan struct{})
	s := NewPatrolScheduler(targets, runner, 1, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		s.RunOnce(context.Background())
		close(done)
	}()

	// With a single worker only one cycle starts until it is released.
	assert.Eventually(t, func() bool {
		return runner.count("a")+runner.count("b")+runner.count("c") == 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, runner.count("a")+runner.count("b")+runner.count("c"))

	close(runner.block)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run-once did not finish")
	}
	assert.Equal(t, 3, runner.count("a")+runner.count("b")+runner.count("c"))
}
