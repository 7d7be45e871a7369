package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/complaint-desk/internal/service"
)

// SweepLockKey guards the periodic sweep so only one replica runs it.
const SweepLockKey = "complaint-desk:sla-sweep"

// Locker acquires a short-lived distributed lock.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, func(context.Context), error)
}

// Sweeper runs the periodic lifecycle passes.
type Sweeper interface {
	CheckSLA(ctx context.Context) (*service.SLAResult, error)
	AssignPriorities(ctx context.Context) (*service.PriorityResult, error)
}

// Scheduler periodically escalates overdue complaints and assigns priorities.
type Scheduler struct {
	sweeper  Sweeper
	locker   Locker
	interval time.Duration
	logger   *zap.Logger
}

// NewScheduler builds a scheduler; Run is a no-op when interval is zero.
func NewScheduler(sweeper Sweeper, locker Locker, interval time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{sweeper: sweeper, locker: locker, interval: interval, logger: logger}
}

// Run ticks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("sla scheduler started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("sla scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one sweep if the lock can be taken. A successful sweep keeps the
// lock until its TTL expires so other replicas skip the rest of the interval;
// a failed sweep releases it for the next replica to retry.
func (s *Scheduler) Tick(ctx context.Context) {
	release := func(context.Context) {}
	if s.locker != nil {
		acquired, unlock, err := s.locker.TryLock(ctx, SweepLockKey, s.lockTTL())
		if err != nil {
			s.logger.Error("sla sweep lock failed", zap.Error(err))
			return
		}
		if !acquired {
			s.logger.Debug("sla sweep held by another replica")
			return
		}
		release = unlock
	}

	if err := s.sweep(ctx); err != nil {
		release(context.WithoutCancel(ctx))
	}
}

func (s *Scheduler) sweep(ctx context.Context) error {
	sla, err := s.sweeper.CheckSLA(ctx)
	if err != nil {
		s.logger.Error("sla sweep failed", zap.Error(err))
		return err
	}
	prio, err := s.sweeper.AssignPriorities(ctx)
	if err != nil {
		s.logger.Error("priority pass failed", zap.Error(err))
		return err
	}
	s.logger.Info("sla sweep finished",
		zap.Int("escalated", sla.EscalatedCount),
		zap.Int("escalation_notified", sla.Notified),
		zap.Int("prioritised", prio.UpdatedCount))
	return nil
}

// lockTTL expires slightly before the next tick so the holder can sweep again.
func (s *Scheduler) lockTTL() time.Duration {
	if s.interval <= 0 {
		return time.Minute
	}
	return s.interval - s.interval/10
}
