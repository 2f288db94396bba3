package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/models"
)

// CycleRunner executes one observation cycle for a target. PatrolEngine is
// the production implementation.
type CycleRunner interface {
	RunCycle(ctx context.Context, target models.Target) CycleResult
}

// PatrolScheduler owns the per-target next-due times and drives cycles
// through a bounded worker pool. Targets have independent intervals; a slow
// or failing target never delays the others, and a single target never has
// two cycles in flight at once.
type PatrolScheduler struct {
	logger        zerolog.Logger
	targets       []models.Target
	runner        CycleRunner
	maxConcurrent int
	pollInterval  time.Duration
	now           func() time.Time

	mu       sync.Mutex
	nextDue  map[string]time.Time
	inFlight map[string]struct{}
}

const defaultPollInterval = time.Second

// NewPatrolScheduler creates a scheduler for the given target set.
func NewPatrolScheduler(targets []models.Target, runner CycleRunner, maxConcurrent int, logger zerolog.Logger) *PatrolScheduler {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &PatrolScheduler{
		logger:        logger.With().Str("component", "PatrolScheduler").Logger(),
		targets:       targets,
		runner:        runner,
		maxConcurrent: maxConcurrent,
		pollInterval:  defaultPollInterval,
		now:           time.Now,
		nextDue:       make(map[string]time.Time, len(targets)),
		inFlight:      make(map[string]struct{}),
	}
}

// Run drives the patrol loop until the context is cancelled. On startup
// every target is due immediately, so the first round establishes baselines
// before normal interval spacing applies.
func (s *PatrolScheduler) Run(ctx context.Context) {
	s.coldStart()

	jobs := make(chan models.Target)
	var wg sync.WaitGroup
	for i := 0; i < s.maxConcurrent; i++ {
		wg.Add(1)
		go s.worker(ctx, i, jobs, &wg)
	}

	s.logger.Info().
		Int("targets", len(s.targets)).
		Int("workers", s.maxConcurrent).
		Msg("Patrol scheduler started")

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.dispatch(ctx, jobs)
	for {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			s.logger.Info().Msg("Patrol scheduler stopped")
			return
		case <-ticker.C:
			s.dispatch(ctx, jobs)
		}
	}
}

// RunOnce patrols every target exactly once through the worker pool and
// returns when all cycles finished.
func (s *PatrolScheduler) RunOnce(ctx context.Context) {
	jobs := make(chan models.Target)
	var wg sync.WaitGroup
	for i := 0; i < s.maxConcurrent; i++ {
		wg.Add(1)
		go s.worker(ctx, i, jobs, &wg)
	}

	for _, target := range s.targets {
		select {
		case jobs <- target:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()
}

// NextDue reports when the target is next scheduled, if known.
func (s *PatrolScheduler) NextDue(targetID string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	due, ok := s.nextDue[targetID]
	return due, ok
}

// coldStart marks every target due immediately.
func (s *PatrolScheduler) coldStart() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, target := range s.targets {
		s.nextDue[target.ID] = now
	}
}

// dispatch hands every due target to the worker pool. A target is due when
// its next-due time has passed and it has no cycle in flight. The next-due
// time advances by the target's interval at dispatch, regardless of how the
// cycle ends, so failures retry at interval pace instead of storming.
func (s *PatrolScheduler) dispatch(ctx context.Context, jobs chan<- models.Target) {
	for _, target := range s.collectDue(s.now()) {
		select {
		case jobs <- target:
		case <-ctx.Done():
			s.markDone(target.ID)
			return
		}
	}
}

func (s *PatrolScheduler) collectDue(now time.Time) []models.Target {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []models.Target
	for _, target := range s.targets {
		if s.nextDue[target.ID].After(now) {
			continue
		}
		if _, running := s.inFlight[target.ID]; running {
			continue
		}
		s.inFlight[target.ID] = struct{}{}
		s.nextDue[target.ID] = now.Add(target.Interval)
		due = append(due, target)
	}
	return due
}

func (s *PatrolScheduler) markDone(targetID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, targetID)
}

func (s *PatrolScheduler) worker(ctx context.Context, id int, jobs <-chan models.Target, wg *sync.WaitGroup) {
	defer wg.Done()
	for target := range jobs {
		if ctx.Err() != nil {
			s.markDone(target.ID)
			continue
		}
		s.logger.Debug().Int("worker_id", id).Str("target_id", target.ID).Msg("Worker running cycle")
		s.runner.RunCycle(ctx, target)
		s.markDone(target.ID)
	}
}
