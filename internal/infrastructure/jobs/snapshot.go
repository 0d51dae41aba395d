package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"wardrobe.backend/pkg/logger"
)

// SnapshotWriter is satisfied by *backup.Writer
type SnapshotWriter interface {
	Write(ctx context.Context) error
}

// SnapshotJob writes a backup snapshot on a fixed interval
type SnapshotJob struct {
	writer   SnapshotWriter
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewSnapshotJob(writer SnapshotWriter, interval time.Duration) *SnapshotJob {
	return &SnapshotJob{
		writer:   writer,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *SnapshotJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting snapshot job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Snapshot job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Snapshot job stopped")
			return
		case <-ticker.C:
			j.writeSnapshot(ctx)
		}
	}
}

func (j *SnapshotJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *SnapshotJob) writeSnapshot(ctx context.Context) {
	if err := j.writer.Write(ctx); err != nil {
		logger.Error(ctx, "Periodic snapshot failed", zap.Error(err))
	}
}
