package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/retailhub/retailhub-backend/internal/app/model"
	"github.com/retailhub/retailhub-backend/internal/app/repository"
	"github.com/retailhub/retailhub-backend/pkg/logger"
)

// ObjectUploader stores a blob under a key.
type ObjectUploader interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
}

// SnapshotResult describes one uploaded snapshot.
type SnapshotResult struct {
	Key   string
	Count int
	Bytes int
}

type SnapshotService interface {
	TakeSnapshot(ctx context.Context) (*SnapshotResult, error)
}

type snapshotService struct {
	repo     repository.RetailerRepository
	uploader ObjectUploader
	prefix   string
	now      func() time.Time
}

func NewSnapshotService(repo repository.RetailerRepository, uploader ObjectUploader, prefix string) SnapshotService {
	return &snapshotService{
		repo:     repo,
		uploader: uploader,
		prefix:   prefix,
		now:      time.Now,
	}
}

// TakeSnapshot uploads the whole collection in the same layout as the file
// backend, so a snapshot can be restored by copying it to STORE_FILE_PATH.
func (s *snapshotService) TakeSnapshot(ctx context.Context) (*SnapshotResult, error) {
	retailers, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load retailers for snapshot: %w", err)
	}
	if retailers == nil {
		retailers = []model.Retailer{}
	}

	body, err := json.MarshalIndent(retailers, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := path.Join(s.prefix, fmt.Sprintf("retailers-%s.json", s.now().UTC().Format("20060102T150405Z")))
	if err := s.uploader.PutObject(ctx, key, body, "application/json"); err != nil {
		logger.Error("Failed to upload retailer snapshot", err, logger.Fields{
			"key": key,
		})
		return nil, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	logger.Info("Retailer snapshot uploaded", logger.Fields{
		"key":   key,
		"count": len(retailers),
		"bytes": len(body),
	})
	return &SnapshotResult{Key: key, Count: len(retailers), Bytes: len(body)}, nil
}
