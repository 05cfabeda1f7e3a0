package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/retailhub/retailhub-backend/internal/app/model"
	"github.com/retailhub/retailhub-backend/pkg/logger"
)

// fileRetailerRepository keeps the whole collection as one pretty-printed
// JSON array. Every mutation rewrites the file.
type fileRetailerRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileRetailerRepository(path string) (RetailerRepository, error) {
	if path == "" {
		return nil, fmt.Errorf("retailer file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &fileRetailerRepository{path: path}, nil
}

// LoadAll never fails: an unreadable or undecodable file yields an empty
// collection and a warning.
func (r *fileRetailerRepository) LoadAll(ctx context.Context) ([]model.Retailer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	retailers, err := r.read()
	if err != nil {
		logger.Warn("Failed to read retailer file, serving empty collection", logger.Fields{
			"path":  r.path,
			"error": err.Error(),
		})
		return []model.Retailer{}, nil
	}

	logger.Debug("Retailers loaded from file", logger.Fields{
		"path":  r.path,
		"count": len(retailers),
	})
	return retailers, nil
}

func (r *fileRetailerRepository) SaveAll(ctx context.Context, retailers []model.Retailer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.read(); errors.Is(err, ErrStoreCorrupted) {
		return err
	}
	return r.write(retailers)
}

func (r *fileRetailerRepository) Append(ctx context.Context, retailer model.Retailer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	retailers, err := r.read()
	if err != nil {
		return err
	}
	for _, existing := range retailers {
		if existing.ID == retailer.ID {
			return ErrDuplicateID
		}
	}

	return r.write(append(retailers, retailer))
}

func (r *fileRetailerRepository) Remove(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	retailers, err := r.read()
	if err != nil {
		return false, err
	}

	kept := make([]model.Retailer, 0, len(retailers))
	for _, existing := range retailers {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(retailers) {
		return false, nil
	}

	if err := r.write(kept); err != nil {
		return false, err
	}
	return true, nil
}

// read must be called with r.mu held.
func (r *fileRetailerRepository) read() ([]model.Retailer, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Retailer{}, nil
		}
		return nil, fmt.Errorf("failed to read retailer file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Retailer{}, nil
	}

	var retailers []model.Retailer
	if err := json.Unmarshal(data, &retailers); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStoreCorrupted, r.path, err)
	}
	if retailers == nil {
		retailers = []model.Retailer{}
	}
	return retailers, nil
}

// write replaces the file atomically. Must be called with r.mu held.
func (r *fileRetailerRepository) write(retailers []model.Retailer) error {
	if retailers == nil {
		retailers = []model.Retailer{}
	}

	data, err := json.MarshalIndent(retailers, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode retailers: %w", err)
	}

	if err := writeFileAtomic(r.path, data); err != nil {
		logger.Error("Failed to write retailer file", err, logger.Fields{
			"path":  r.path,
			"count": len(retailers),
		})
		return err
	}

	logger.Debug("Retailer file written", logger.Fields{
		"path":  r.path,
		"count": len(retailers),
	})
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace retailer file: %w", err)
	}
	return nil
}
