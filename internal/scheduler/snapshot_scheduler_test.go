package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/retailhub/retailhub-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
)

type countingSnapshotService struct {
	calls int
	err   error
}

func (c *countingSnapshotService) TakeSnapshot(context.Context) (*service.SnapshotResult, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &service.SnapshotResult{Key: "snapshots/x.json", Count: 1}, nil
}

func TestSnapshotScheduler_InvalidSchedule(t *testing.T) {
	s := NewSnapshotScheduler(&countingSnapshotService{}, "not a cron expression")
	assert.Error(t, s.Start())
}

func TestSnapshotScheduler_StartStop(t *testing.T) {
	s := NewSnapshotScheduler(&countingSnapshotService{}, "@every 1h")
	assert.NoError(t, s.Start())
	s.Stop()
}

func TestSnapshotScheduler_Run(t *testing.T) {
	ok := &countingSnapshotService{}
	NewSnapshotScheduler(ok, "@daily").run()
	assert.Equal(t, 1, ok.calls)

	failing := &countingSnapshotService{err: errors.New("upload failed")}
	NewSnapshotScheduler(failing, "@daily").run()
	assert.Equal(t, 1, failing.calls)
}
