package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailhub/retailhub-backend/internal/app/model"
	"github.com/retailhub/retailhub-backend/internal/app/repository"
	"github.com/retailhub/retailhub-backend/pkg/logger"
)

// Event types published after a successful mutation.
const (
	EventRetailerCreated = "retailer.created"
	EventRetailerDeleted = "retailer.deleted"
)

// RetailerEvent describes a change to the collection.
type RetailerEvent struct {
	Type     string          `json:"type"`
	Retailer *model.Retailer `json:"retailer,omitempty"`
	ID       string          `json:"id"`
}

// EventPublisher receives change notifications. Publishing must not block.
type EventPublisher interface {
	Publish(event RetailerEvent)
}

type RetailerService interface {
	ListRetailers(ctx context.Context, query string) ([]model.Retailer, error)
	ListCategories(ctx context.Context) ([]string, error)
	CreateRetailer(ctx context.Context, input model.RetailerInput) (*model.Retailer, error)
	DeleteRetailer(ctx context.Context, id string) error
}

type retailerService struct {
	repo      repository.RetailerRepository
	publisher EventPublisher
	now       func() time.Time
	newID     func() string
}

// RetailerServiceOption customises a RetailerService.
type RetailerServiceOption func(*retailerService)

func WithClock(now func() time.Time) RetailerServiceOption {
	return func(s *retailerService) { s.now = now }
}

func WithIDGenerator(newID func() string) RetailerServiceOption {
	return func(s *retailerService) { s.newID = newID }
}

func WithEventPublisher(publisher EventPublisher) RetailerServiceOption {
	return func(s *retailerService) { s.publisher = publisher }
}

func NewRetailerService(repo repository.RetailerRepository, opts ...RetailerServiceOption) RetailerService {
	s := &retailerService{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *retailerService) ListRetailers(ctx context.Context, query string) ([]model.Retailer, error) {
	logger.Debug("Listing retailers", logger.Fields{
		"query": query,
	})

	retailers, err := s.repo.LoadAll(ctx)
	if err != nil {
		logger.Error("Failed to load retailers", err)
		return nil, err
	}
	if retailers == nil {
		retailers = []model.Retailer{}
	}

	matched := Search(retailers, query)

	logger.Debug("Retailers fetched", logger.Fields{
		"total":   len(retailers),
		"matched": len(matched),
	})
	return matched, nil
}

func (s *retailerService) ListCategories(ctx context.Context) ([]string, error) {
	retailers, err := s.repo.LoadAll(ctx)
	if err != nil {
		logger.Error("Failed to load retailers for categories", err)
		return nil, err
	}
	return DistinctCategories(retailers), nil
}

func (s *retailerService) CreateRetailer(ctx context.Context, input model.RetailerInput) (*model.Retailer, error) {
	if err := validateRetailerInput(input); err != nil {
		logger.Warn("Retailer creation rejected", logger.Fields{
			"error": err.Error(),
		})
		return nil, err
	}

	pros, cons := SplitProsCons(input.ProsCons)
	retailer := model.Retailer{
		ID:        s.newID(),
		Name:      input.Name,
		Location:  input.Location,
		Category:  input.Category,
		Contact:   input.Contact,
		Note:      input.Note,
		Pros:      pros,
		Cons:      cons,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	logger.Info("Creating retailer", logger.Fields{
		"retailer_id": retailer.ID,
		"name":        retailer.Name,
		"category":    retailer.Category,
	})

	if err := s.repo.Append(ctx, retailer); err != nil {
		logger.Error("Failed to create retailer", err, logger.Fields{
			"retailer_id": retailer.ID,
		})
		return nil, err
	}

	s.publish(RetailerEvent{Type: EventRetailerCreated, ID: retailer.ID, Retailer: &retailer})
	return &retailer, nil
}

func (s *retailerService) DeleteRetailer(ctx context.Context, id string) error {
	if id == "" {
		verr := &ValidationError{}
		verr.add("id", "Retailer ID is required")
		return verr
	}

	logger.Info("Deleting retailer", logger.Fields{
		"retailer_id": id,
	})

	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		logger.Error("Failed to delete retailer", err, logger.Fields{
			"retailer_id": id,
		})
		return err
	}
	if !removed {
		logger.Warn("Retailer not found", logger.Fields{
			"retailer_id": id,
		})
		return ErrRetailerNotFound
	}

	s.publish(RetailerEvent{Type: EventRetailerDeleted, ID: id})
	return nil
}

func (s *retailerService) publish(event RetailerEvent) {
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}

func validateRetailerInput(input model.RetailerInput) error {
	verr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		verr.add("name", "Name is required")
	}
	if strings.TrimSpace(input.Location) == "" {
		verr.add("location", "Location is required")
	}
	if strings.TrimSpace(input.Category) == "" {
		verr.add("category", "Category is required")
	}
	if verr.empty() {
		return nil
	}
	return verr
}
