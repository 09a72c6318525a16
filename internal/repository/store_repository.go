package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"store-rating-service/internal/model"
)

type StoreFilter struct {
	Name    string
	Email   string
	Address string
}

type PaginatedStoresForViewer struct {
	Data []model.StoreForViewer `json:"data"`
	Meta PaginationMeta         `json:"pagination"`
}

type PaginatedStores struct {
	Data []model.StoreWithRating `json:"data"`
	Meta PaginationMeta          `json:"pagination"`
}

type StoreRepository interface {
	CreateWithOwner(ctx context.Context, store *model.Store, owner *model.User) (uuid.UUID, uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*model.Store, error)
	ListForViewer(ctx context.Context, viewerID uuid.UUID, filter StoreFilter, page, limit int, sortBy, order string) (*PaginatedStoresForViewer, error)
	List(ctx context.Context, filter StoreFilter, page, limit int, sortBy, order string) (*PaginatedStores, error)
	Count(ctx context.Context) (int, error)
}

type postgresStoreRepository struct {
	db *sqlx.DB
}

func NewPostgresStoreRepository(db *sqlx.DB) StoreRepository {
	return &postgresStoreRepository{db: db}
}

// CreateWithOwner inserts the owner account and its store in one transaction
// so a duplicate email on either insert rolls back both.
func (r *postgresStoreRepository) CreateWithOwner(ctx context.Context, store *model.Store, owner *model.User) (uuid.UUID, uuid.UUID, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	defer tx.Rollback()

	var ownerID uuid.UUID
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO users (name, email, password_hash, address, role) VALUES ($1, $2, $3, $4, 'STORE_OWNER') RETURNING id`,
		owner.Name, owner.Email, owner.PasswordHash, owner.Address,
	).Scan(&ownerID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	var storeID uuid.UUID
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO stores (name, email, address, owner_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		store.Name, store.Email, store.Address, ownerID,
	).Scan(&storeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	return storeID, ownerID, nil
}

func (r *postgresStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Store, error) {
	var store model.Store
	query := `SELECT id, name, email, address, owner_id, created_at, updated_at FROM stores WHERE id = $1`
	err := r.db.GetContext(ctx, &store, query, id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &store, nil
}

func (r *postgresStoreRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*model.Store, error) {
	var store model.Store
	query := `SELECT id, name, email, address, owner_id, created_at, updated_at FROM stores WHERE owner_id = $1`
	err := r.db.GetContext(ctx, &store, query, ownerID)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return &store, nil
}

var storeSortColumns = map[string]string{
	"name":          "s.name",
	"email":         "s.email",
	"address":       "s.address",
	"overallRating": "overall_rating",
	"rating":        "overall_rating",
}

func (r *postgresStoreRepository) ListForViewer(ctx context.Context, viewerID uuid.UUID, filter StoreFilter, page, limit int, sortBy, order string) (*PaginatedStoresForViewer, error) {
	offset := (page - 1) * limit

	baseQuery := `
		SELECT
			s.id,
			s.name,
			COALESCE(s.email, '') AS email,
			COALESCE(s.address, '') AS address,
			COALESCE(agg.avg_value, 0) AS overall_rating,
			mine.value AS user_submitted_rating
		FROM stores s
		LEFT JOIN (
			SELECT store_id, ROUND(AVG(value)::numeric, 2)::float8 AS avg_value
			FROM ratings
			GROUP BY store_id
		) agg ON agg.store_id = s.id
		LEFT JOIN ratings mine ON mine.store_id = s.id AND mine.user_id = $1
		WHERE 1=1
	`

	args := []interface{}{viewerID}
	argId := 2
	if filter.Name != "" {
		baseQuery += fmt.Sprintf(" AND s.name ILIKE '%%' || $%d || '%%'", argId)
		args = append(args, filter.Name)
		argId++
	}
	if filter.Address != "" {
		baseQuery += fmt.Sprintf(" AND s.address ILIKE '%%' || $%d || '%%'", argId)
		args = append(args, filter.Address)
		argId++
	}

	countQuery := "SELECT COUNT(*) FROM (" + baseQuery + ") as count_query"
	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, countQuery, args...)
	if err != nil {
		return nil, err
	}

	baseQuery += " ORDER BY " + orderClause(storeSortColumns, sortBy, order, "name", "s.id")
	baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argId, argId+1)
	args = append(args, limit, offset)

	var stores []model.StoreForViewer
	err = r.db.SelectContext(ctx, &stores, baseQuery, args...)
	if err != nil {
		return nil, err
	}

	if stores == nil {
		stores = []model.StoreForViewer{}
	}

	return &PaginatedStoresForViewer{
		Data: stores,
		Meta: buildMeta(page, limit, totalItems),
	}, nil
}

func (r *postgresStoreRepository) List(ctx context.Context, filter StoreFilter, page, limit int, sortBy, order string) (*PaginatedStores, error) {
	offset := (page - 1) * limit

	baseQuery := `
		SELECT
			s.id,
			s.name,
			COALESCE(s.email, '') AS email,
			COALESCE(s.address, '') AS address,
			s.owner_id,
			s.created_at,
			COALESCE(agg.avg_value, 0) AS rating
		FROM stores s
		LEFT JOIN (
			SELECT store_id, ROUND(AVG(value)::numeric, 2)::float8 AS avg_value
			FROM ratings
			GROUP BY store_id
		) agg ON agg.store_id = s.id
		WHERE 1=1
	`

	args := []interface{}{}
	argId := 1
	if filter.Name != "" {
		baseQuery += fmt.Sprintf(" AND s.name ILIKE '%%' || $%d || '%%'", argId)
		args = append(args, filter.Name)
		argId++
	}
	if filter.Email != "" {
		baseQuery += fmt.Sprintf(" AND s.email ILIKE '%%' || $%d || '%%'", argId)
		args = append(args, filter.Email)
		argId++
	}
	if filter.Address != "" {
		baseQuery += fmt.Sprintf(" AND s.address ILIKE '%%' || $%d || '%%'", argId)
		args = append(args, filter.Address)
		argId++
	}

	countQuery := "SELECT COUNT(*) FROM (" + baseQuery + ") as count_query"
	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, countQuery, args...)
	if err != nil {
		return nil, err
	}

	adminSort := map[string]string{
		"name":    "s.name",
		"email":   "s.email",
		"address": "s.address",
		"rating":  "rating",
	}
	baseQuery += " ORDER BY " + orderClause(adminSort, sortBy, order, "name", "s.id")
	baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argId, argId+1)
	args = append(args, limit, offset)

	var stores []model.StoreWithRating
	err = r.db.SelectContext(ctx, &stores, baseQuery, args...)
	if err != nil {
		return nil, err
	}

	if stores == nil {
		stores = []model.StoreWithRating{}
	}

	return &PaginatedStores{
		Data: stores,
		Meta: buildMeta(page, limit, totalItems),
	}, nil
}

func (r *postgresStoreRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM stores`)
	return count, err
}
