package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"store-rating-service/internal/model"
)

type PaginatedRaters struct {
	Data []model.RaterEntry `json:"data"`
	Meta PaginationMeta     `json:"pagination"`
}

type RatingRepository interface {
	Upsert(ctx context.Context, rating *model.Rating) error
	AverageForStore(ctx context.Context, storeID uuid.UUID) (float64, error)
	ListByStore(ctx context.Context, storeID uuid.UUID, page, limit int, sortBy, order string) (*PaginatedRaters, error)
	Count(ctx context.Context) (int, error)
}

type postgresRatingRepository struct {
	db *sqlx.DB
}

func NewPostgresRatingRepository(db *sqlx.DB) RatingRepository {
	return &postgresRatingRepository{db: db}
}

// Upsert keeps at most one rating per (user, store): a re-rating overwrites
// the previous value in place.
func (r *postgresRatingRepository) Upsert(ctx context.Context, rating *model.Rating) error {
	query := `
		INSERT INTO ratings (user_id, store_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, store_id) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, query, rating.UserID, rating.StoreID, rating.Value)
	return err
}

func (r *postgresRatingRepository) AverageForStore(ctx context.Context, storeID uuid.UUID) (float64, error) {
	var avg float64
	query := `SELECT COALESCE(ROUND(AVG(value)::numeric, 2)::float8, 0) FROM ratings WHERE store_id = $1`
	err := r.db.GetContext(ctx, &avg, query, storeID)
	if err != nil {
		return 0, err
	}
	return avg, nil
}

var raterSortColumns = map[string]string{
	"name":   "u.name",
	"email":  "u.email",
	"rating": "r.value",
}

func (r *postgresRatingRepository) ListByStore(ctx context.Context, storeID uuid.UUID, page, limit int, sortBy, order string) (*PaginatedRaters, error) {
	offset := (page - 1) * limit

	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM ratings WHERE store_id = $1`, storeID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			u.name,
			COALESCE(u.email, '') AS email,
			COALESCE(u.address, '') AS address,
			r.value AS rating,
			r.updated_at AS rated_at
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.store_id = $1
	`
	query += " ORDER BY " + orderClause(raterSortColumns, sortBy, order, "name", "r.user_id")
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", 2, 3)

	var raters []model.RaterEntry
	err = r.db.SelectContext(ctx, &raters, query, storeID, limit, offset)
	if err != nil {
		return nil, err
	}

	if raters == nil {
		raters = []model.RaterEntry{}
	}

	return &PaginatedRaters{
		Data: raters,
		Meta: buildMeta(page, limit, totalItems),
	}, nil
}

func (r *postgresRatingRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM ratings`)
	return count, err
}
