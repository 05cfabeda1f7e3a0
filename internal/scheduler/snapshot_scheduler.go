package scheduler

import (
	"context"
	"time"

	"github.com/retailhub/retailhub-backend/internal/app/service"
	"github.com/retailhub/retailhub-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SnapshotScheduler periodically uploads a snapshot of the retailer collection.
type SnapshotScheduler struct {
	cron            *cron.Cron
	schedule        string
	timeout         time.Duration
	snapshotService service.SnapshotService
}

func NewSnapshotScheduler(snapshotService service.SnapshotService, schedule string) *SnapshotScheduler {
	return &SnapshotScheduler{
		cron:            cron.New(),
		schedule:        schedule,
		timeout:         2 * time.Minute,
		snapshotService: snapshotService,
	}
}

// Start registers the job and starts the cron runner.
func (s *SnapshotScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		logger.Error("Failed to add cron job for retailer snapshot", err, logger.Fields{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Snapshot scheduler started", logger.Fields{
		"schedule": s.schedule,
	})
	return nil
}

// Stop waits for a running snapshot to finish.
func (s *SnapshotScheduler) Stop() {
	logger.Info("Stopping snapshot scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Snapshot scheduler stopped")
}

func (s *SnapshotScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	logger.Info("Starting scheduled retailer snapshot")
	result, err := s.snapshotService.TakeSnapshot(ctx)
	if err != nil {
		logger.Error("Scheduled retailer snapshot failed", err)
		return
	}

	logger.Info("Scheduled retailer snapshot completed", logger.Fields{
		"key":   result.Key,
		"count": result.Count,
	})
}
