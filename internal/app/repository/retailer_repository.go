package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/retailhub/retailhub-backend/internal/app/model"
	"gorm.io/gorm"
)

var (
	// ErrStoreCorrupted is returned when persisted data cannot be decoded.
	// Mutations refuse to overwrite a store in this state.
	ErrStoreCorrupted = errors.New("retailer store is corrupted")

	// ErrDuplicateID is returned by Append when the id is already stored.
	ErrDuplicateID = errors.New("retailer id already exists")
)

// RetailerRepository persists the retailer collection.
//
// LoadAll and SaveAll operate on the whole collection. Append and Remove are
// single-record operations that every backend implements natively.
type RetailerRepository interface {
	LoadAll(ctx context.Context) ([]model.Retailer, error)
	SaveAll(ctx context.Context, retailers []model.Retailer) error
	Append(ctx context.Context, retailer model.Retailer) error
	// Remove deletes the retailer with the given id and reports whether it existed.
	Remove(ctx context.Context, id string) (bool, error)
}

// Backend selects and carries the dependencies of one repository implementation.
type Backend struct {
	Name        string // file, postgres, redis
	FilePath    string
	DB          *gorm.DB
	Redis       redis.UniversalClient
	RedisPrefix string
	Instrument  bool
}

// NewRetailerRepository builds the repository for the configured backend.
func NewRetailerRepository(b Backend) (RetailerRepository, error) {
	var (
		repo RetailerRepository
		err  error
	)

	switch b.Name {
	case "file", "":
		repo, err = NewFileRetailerRepository(b.FilePath)
	case "postgres":
		if b.DB == nil {
			return nil, fmt.Errorf("postgres backend requires a database connection")
		}
		repo = NewGormRetailerRepository(b.DB)
	case "redis":
		if b.Redis == nil {
			return nil, fmt.Errorf("redis backend requires a redis client")
		}
		repo = NewRedisRetailerRepository(b.Redis, b.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: file, postgres, redis)", b.Name)
	}
	if err != nil {
		return nil, err
	}

	if b.Instrument {
		name := b.Name
		if name == "" {
			name = "file"
		}
		repo = NewInstrumentedRetailerRepository(repo, name)
	}
	return repo, nil
}
