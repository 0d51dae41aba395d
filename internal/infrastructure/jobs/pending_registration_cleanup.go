package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"wardrobe.backend/pkg/logger"
)

// ExpiredPendingDeleter is the slice of the pending registration repository
// the cleanup job uses
type ExpiredPendingDeleter interface {
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// PendingRegistrationCleanupJob removes registrations whose code expired
type PendingRegistrationCleanupJob struct {
	repo     ExpiredPendingDeleter
	interval time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewPendingRegistrationCleanupJob(repo ExpiredPendingDeleter, interval time.Duration) *PendingRegistrationCleanupJob {
	return &PendingRegistrationCleanupJob{
		repo:     repo,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

func (j *PendingRegistrationCleanupJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting pending registration cleanup job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Pending registration cleanup job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Pending registration cleanup job stopped")
			return
		case <-ticker.C:
			j.deleteExpired(ctx)
		}
	}
}

func (j *PendingRegistrationCleanupJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *PendingRegistrationCleanupJob) deleteExpired(ctx context.Context) {
	n, err := j.repo.DeleteExpired(ctx, j.now())
	if err != nil {
		logger.Error(ctx, "Error deleting expired registrations", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Info(ctx, "Deleted expired registrations", zap.Int64("count", n))
	}
}
