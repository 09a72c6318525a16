package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"store-rating-service/internal/events"
	"store-rating-service/internal/model"
	"store-rating-service/internal/repository"
)

type NewUserInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

type NewStoreInput struct {
	Name    string
	Email   string
	Address string
	Owner   NewUserInput
}

// DashboardStats backs the admin landing-page counters.
type DashboardStats struct {
	Users   int `json:"users"`
	Stores  int `json:"stores"`
	Ratings int `json:"ratings"`
}

type AdminService interface {
	CreateUser(ctx context.Context, input NewUserInput) (*model.User, error)
	CreateStore(ctx context.Context, input NewStoreInput) (*model.Store, error)
	ListUsers(ctx context.Context, filter repository.UserFilter, page, limit int, sortBy, order string) (*repository.PaginatedUsers, error)
	ListStores(ctx context.Context, filter repository.StoreFilter, page, limit int, sortBy, order string) (*repository.PaginatedStores, error)
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type adminService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	publisher  events.EventPublisher
}

func NewAdminService(userRepo repository.UserRepository, storeRepo repository.StoreRepository, ratingRepo repository.RatingRepository, publisher events.EventPublisher) AdminService {
	return &adminService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		publisher:  publisher,
	}
}

func (s *adminService) CreateUser(ctx context.Context, input NewUserInput) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Address:      input.Address,
		Role:         input.Role,
	}

	newID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	user.ID = newID

	go s.publisher.PublishUserRegistered(user.ID, user.Role)

	return user, nil
}

// CreateStore provisions the store together with its STORE_OWNER account in a
// single transaction; the repository rolls both back on any failure.
func (s *adminService) CreateStore(ctx context.Context, input NewStoreInput) (*model.Store, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Owner.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	owner := &model.User{
		Name:         input.Owner.Name,
		Email:        input.Owner.Email,
		PasswordHash: string(hashedPassword),
		Address:      input.Owner.Address,
		Role:         model.RoleStoreOwner,
	}

	store := &model.Store{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
	}

	storeID, ownerID, err := s.storeRepo.CreateWithOwner(ctx, store, owner)
	if err != nil {
		return nil, err
	}

	store.ID = storeID
	store.OwnerID = ownerID

	go s.publisher.PublishStoreCreated(storeID, ownerID, store.Name)

	return store, nil
}

func (s *adminService) ListUsers(ctx context.Context, filter repository.UserFilter, page, limit int, sortBy, order string) (*repository.PaginatedUsers, error) {
	return s.userRepo.List(ctx, filter, page, limit, sortBy, order)
}

func (s *adminService) ListStores(ctx context.Context, filter repository.StoreFilter, page, limit int, sortBy, order string) (*repository.PaginatedStores, error) {
	return s.storeRepo.List(ctx, filter, page, limit, sortBy, order)
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	stores, err := s.storeRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	ratings, err := s.ratingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{Users: users, Stores: stores, Ratings: ratings}, nil
}
