package monitor

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/aleister1102/pagewatch/internal/models"
)

// PatrolService bundles the engine and scheduler behind a single Run call.
type PatrolService struct {
	logger    zerolog.Logger
	cfg       config.PatrolConfig
	scheduler *PatrolScheduler
}

// NewPatrolService creates the service for the given target set. The engine
// must already be wired to its ports.
func NewPatrolService(cfg config.PatrolConfig, targets []models.Target, engine *PatrolEngine, logger zerolog.Logger) *PatrolService {
	serviceLogger := logger.With().Str("component", "PatrolService").Logger()
	return &PatrolService{
		logger:    serviceLogger,
		cfg:       cfg,
		scheduler: NewPatrolScheduler(targets, engine, cfg.MaxConcurrentChecks, logger),
	}
}

// Run patrols until the context is cancelled, or exactly one round when
// once-mode is configured. It returns only after all in-flight cycles have
// finished.
func (ps *PatrolService) Run(ctx context.Context) {
	if ps.cfg.Once {
		ps.logger.Info().Msg("Patrolling once")
		ps.scheduler.RunOnce(ctx)
		return
	}
	ps.scheduler.Run(ctx)
}

// Scheduler exposes the scheduler for inspection (next-due times).
func (ps *PatrolService) Scheduler() *PatrolScheduler {
	return ps.scheduler
}
