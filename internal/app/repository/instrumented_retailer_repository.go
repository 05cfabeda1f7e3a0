package repository

import (
	"context"

	"github.com/retailhub/retailhub-backend/internal/app/model"
	"github.com/retailhub/retailhub-backend/pkg/metrics"
)

// instrumentedRetailerRepository counts every store operation by outcome.
type instrumentedRetailerRepository struct {
	next    RetailerRepository
	backend string
}

func NewInstrumentedRetailerRepository(next RetailerRepository, backend string) RetailerRepository {
	return &instrumentedRetailerRepository{next: next, backend: backend}
}

func (r *instrumentedRetailerRepository) LoadAll(ctx context.Context) ([]model.Retailer, error) {
	retailers, err := r.next.LoadAll(ctx)
	metrics.ObserveStoreOperation(r.backend, "load_all", err)
	return retailers, err
}

func (r *instrumentedRetailerRepository) SaveAll(ctx context.Context, retailers []model.Retailer) error {
	err := r.next.SaveAll(ctx, retailers)
	metrics.ObserveStoreOperation(r.backend, "save_all", err)
	return err
}

func (r *instrumentedRetailerRepository) Append(ctx context.Context, retailer model.Retailer) error {
	err := r.next.Append(ctx, retailer)
	metrics.ObserveStoreOperation(r.backend, "append", err)
	return err
}

func (r *instrumentedRetailerRepository) Remove(ctx context.Context, id string) (bool, error) {
	removed, err := r.next.Remove(ctx, id)
	metrics.ObserveStoreOperation(r.backend, "remove", err)
	return removed, err
}
