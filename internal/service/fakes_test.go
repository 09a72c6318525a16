package service_test

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"store-rating-service/internal/model"
	"store-rating-service/internal/repository"
)

// In-memory fakes shared by the service tests.

type fakeUserRepo struct {
	usersByEmail map[string]*model.User
	usersByID    map[uuid.UUID]*model.User
	created      []*model.User
	createErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByEmail: map[string]*model.User{},
		usersByID:    map[uuid.UUID]*model.User{},
	}
}

func (f *fakeUserRepo) add(user *model.User) {
	f.usersByEmail[user.Email] = user
	f.usersByID[user.ID] = user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	id := uuid.New()
	user.ID = id
	f.created = append(f.created, user)
	f.add(user)
	return id, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := f.usersByEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := f.usersByID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	user, ok := f.usersByID[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, filter repository.UserFilter, page, limit int, sortBy, order string) (*repository.PaginatedUsers, error) {
	return &repository.PaginatedUsers{Data: []model.UserWithRating{}}, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int, error) {
	return len(f.usersByID), nil
}

type fakeTokenRepo struct {
	tokens map[string]*model.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*model.RefreshToken{}}
}

func (f *fakeTokenRepo) Create(ctx context.Context, token *model.RefreshToken) error {
	f.tokens[token.TokenHash] = token
	return nil
}

func (f *fakeTokenRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	token, ok := f.tokens[tokenHash]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return token, nil
}

func (f *fakeTokenRepo) Delete(ctx context.Context, tokenHash string) error {
	delete(f.tokens, tokenHash)
	return nil
}

type fakeStoreRepo struct {
	storesByID    map[uuid.UUID]*model.Store
	storesByOwner map[uuid.UUID]*model.Store
	createErr     error
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{
		storesByID:    map[uuid.UUID]*model.Store{},
		storesByOwner: map[uuid.UUID]*model.Store{},
	}
}

func (f *fakeStoreRepo) add(store *model.Store) {
	f.storesByID[store.ID] = store
	f.storesByOwner[store.OwnerID] = store
}

func (f *fakeStoreRepo) CreateWithOwner(ctx context.Context, store *model.Store, owner *model.User) (uuid.UUID, uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, uuid.Nil, f.createErr
	}
	store.ID = uuid.New()
	store.OwnerID = uuid.New()
	f.add(store)
	return store.ID, store.OwnerID, nil
}

func (f *fakeStoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	return f.storesByID[id], nil
}

func (f *fakeStoreRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*model.Store, error) {
	return f.storesByOwner[ownerID], nil
}

func (f *fakeStoreRepo) ListForViewer(ctx context.Context, viewerID uuid.UUID, filter repository.StoreFilter, page, limit int, sortBy, order string) (*repository.PaginatedStoresForViewer, error) {
	return &repository.PaginatedStoresForViewer{Data: []model.StoreForViewer{}}, nil
}

func (f *fakeStoreRepo) List(ctx context.Context, filter repository.StoreFilter, page, limit int, sortBy, order string) (*repository.PaginatedStores, error) {
	return &repository.PaginatedStores{Data: []model.StoreWithRating{}}, nil
}

func (f *fakeStoreRepo) Count(ctx context.Context) (int, error) {
	return len(f.storesByID), nil
}

type ratingKey struct {
	userID  uuid.UUID
	storeID uuid.UUID
}

type fakeRatingRepo struct {
	ratings map[ratingKey]int
	average float64
	raters  []model.RaterEntry
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: map[ratingKey]int{}}
}

func (f *fakeRatingRepo) Upsert(ctx context.Context, rating *model.Rating) error {
	f.ratings[ratingKey{rating.UserID, rating.StoreID}] = rating.Value
	return nil
}

func (f *fakeRatingRepo) AverageForStore(ctx context.Context, storeID uuid.UUID) (float64, error) {
	return f.average, nil
}

func (f *fakeRatingRepo) ListByStore(ctx context.Context, storeID uuid.UUID, page, limit int, sortBy, order string) (*repository.PaginatedRaters, error) {
	return &repository.PaginatedRaters{
		Data: f.raters,
		Meta: repository.PaginationMeta{CurrentPage: page, TotalPages: 1, TotalItems: len(f.raters)},
	}, nil
}

func (f *fakeRatingRepo) Count(ctx context.Context) (int, error) {
	return len(f.ratings), nil
}

type fakePublisher struct{}

func (fakePublisher) PublishUserRegistered(userID uuid.UUID, role string) error {
	return nil
}

func (fakePublisher) PublishStoreCreated(storeID, ownerID uuid.UUID, name string) error {
	return nil
}

func (fakePublisher) PublishRatingSubmitted(storeID, userID uuid.UUID, value int) error {
	return nil
}
