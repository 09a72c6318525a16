package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"store-rating-service/internal/events"
	"store-rating-service/internal/model"
	"store-rating-service/internal/repository"
)

var (
	ErrStoreNotFound    = errors.New("store not found")
	ErrNoOwnedStore     = errors.New("no store found for this owner")
	ErrRatingOutOfRange = errors.New("rating value must be between 1 and 5")
)

// OwnerDashboard aggregates everything the store-owner landing page shows.
type OwnerDashboard struct {
	StoreName     string                      `json:"storeName"`
	AverageRating float64                     `json:"averageRating"`
	Ratings       *repository.PaginatedRaters `json:"ratings"`
}

type StoreService interface {
	ListForViewer(ctx context.Context, viewerID uuid.UUID, filter repository.StoreFilter, page, limit int, sortBy, order string) (*repository.PaginatedStoresForViewer, error)
	RateStore(ctx context.Context, userID, storeID uuid.UUID, value int) error
	GetOwnerDashboard(ctx context.Context, ownerID uuid.UUID, page, limit int, sortBy, order string) (*OwnerDashboard, error)
}

type storeService struct {
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	publisher  events.EventPublisher
}

func NewStoreService(storeRepo repository.StoreRepository, ratingRepo repository.RatingRepository, publisher events.EventPublisher) StoreService {
	return &storeService{
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		publisher:  publisher,
	}
}

func (s *storeService) ListForViewer(ctx context.Context, viewerID uuid.UUID, filter repository.StoreFilter, page, limit int, sortBy, order string) (*repository.PaginatedStoresForViewer, error) {
	return s.storeRepo.ListForViewer(ctx, viewerID, filter, page, limit, sortBy, order)
}

func (s *storeService) RateStore(ctx context.Context, userID, storeID uuid.UUID, value int) error {
	if value < 1 || value > 5 {
		return ErrRatingOutOfRange
	}

	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return err
	}
	if store == nil {
		return ErrStoreNotFound
	}

	rating := &model.Rating{
		UserID:  userID,
		StoreID: storeID,
		Value:   value,
	}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return err
	}

	go s.publisher.PublishRatingSubmitted(storeID, userID, value)

	return nil
}

func (s *storeService) GetOwnerDashboard(ctx context.Context, ownerID uuid.UUID, page, limit int, sortBy, order string) (*OwnerDashboard, error) {
	store, err := s.storeRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrNoOwnedStore
	}

	average, err := s.ratingRepo.AverageForStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	raters, err := s.ratingRepo.ListByStore(ctx, store.ID, page, limit, sortBy, order)
	if err != nil {
		return nil, err
	}

	return &OwnerDashboard{
		StoreName:     store.Name,
		AverageRating: average,
		Ratings:       raters,
	}, nil
}
