package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"store-rating-service/internal/model"
)

type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    string
}

type PaginatedUsers struct {
	Data []model.UserWithRating `json:"data"`
	Meta PaginationMeta         `json:"pagination"`
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (uuid.UUID, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	List(ctx context.Context, filter UserFilter, page, limit int, sortBy, order string) (*PaginatedUsers, error)
	Count(ctx context.Context) (int, error)
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) (uuid.UUID, error) {
	query := `INSERT INTO users (name, email, password_hash, address, role) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var newID uuid.UUID
	err := r.db.QueryRowxContext(ctx, query, user.Name, user.Email, user.PasswordHash, user.Address, user.Role).Scan(&newID)

	if err != nil {
		return uuid.Nil, err
	}

	return newID, nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	query := `SELECT id, name, email, password_hash, address, role, created_at, updated_at FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	query := `SELECT id, name, email, password_hash, address, role, created_at, updated_at FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *postgresUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, passwordHash, id)
	return err
}

// userSortColumns maps listing sort keys to SQL expressions.
var userSortColumns = map[string]string{
	"name":    "u.name",
	"email":   "u.email",
	"address": "u.address",
	"role":    "u.role",
}

func (r *postgresUserRepository) List(ctx context.Context, filter UserFilter, page, limit int, sortBy, order string) (*PaginatedUsers, error) {
	offset := (page - 1) * limit

	baseQuery := `
		SELECT
			u.id,
			u.name,
			COALESCE(u.email, '') AS email,
			COALESCE(u.address, '') AS address,
			u.role,
			u.created_at,
			CASE WHEN u.role = 'STORE_OWNER' THEN (
				SELECT ROUND(AVG(r.value)::numeric, 2)::float8
				FROM ratings r
				JOIN stores s ON s.id = r.store_id
				WHERE s.owner_id = u.id
			) END AS rating
		FROM users u
		WHERE 1=1
	`

	args := []interface{}{}
	argId := 1
	if filter.Name != "" {
		baseQuery += fmt.Sprintf(" AND u.name ILIKE '%%' || $%d || '%%'", argId)
		args = append(args, filter.Name)
		argId++
	}
	if filter.Email != "" {
		baseQuery += fmt.Sprintf(" AND u.email ILIKE '%%' || $%d || '%%'", argId)
		args = append(args, filter.Email)
		argId++
	}
	if filter.Address != "" {
		baseQuery += fmt.Sprintf(" AND u.address ILIKE '%%' || $%d || '%%'", argId)
		args = append(args, filter.Address)
		argId++
	}
	if filter.Role != "" {
		baseQuery += fmt.Sprintf(" AND u.role = $%d", argId)
		args = append(args, filter.Role)
		argId++
	}

	countQuery := "SELECT COUNT(*) FROM (" + baseQuery + ") as count_query"
	var totalItems int
	err := r.db.GetContext(ctx, &totalItems, countQuery, args...)
	if err != nil {
		return nil, err
	}

	baseQuery += " ORDER BY " + orderClause(userSortColumns, sortBy, order, "name", "u.id")
	baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argId, argId+1)
	args = append(args, limit, offset)

	var users []model.UserWithRating
	err = r.db.SelectContext(ctx, &users, baseQuery, args...)
	if err != nil {
		return nil, err
	}

	if users == nil {
		users = []model.UserWithRating{}
	}

	return &PaginatedUsers{
		Data: users,
		Meta: buildMeta(page, limit, totalItems),
	}, nil
}

func (r *postgresUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	return count, err
}
