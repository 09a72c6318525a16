package repository_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"store-rating-service/internal/model"
	repo "store-rating-service/internal/repository"
)

func TestPostgresUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	// expect query with RETURNING id
	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (name, email, password_hash, address, role) VALUES ($1, $2, $3, $4, $5) RETURNING id`)).
		WithArgs("Name", "a@b.com", "hash", "Addr", "NORMAL_USER").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))

	nid, err := r.Create(context.Background(), &model.User{Name: "Name", Email: "a@b.com", PasswordHash: "hash", Address: "Addr", Role: "NORMAL_USER"})
	require.NoError(t, err)
	require.Equal(t, id, nid)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByEmail_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role"}).AddRow(id, "Name", "a@b.com", "hash", "NORMAL_USER")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, password_hash, address, role, created_at, updated_at FROM users WHERE email = $1`)).
		WithArgs("a@b.com").WillReturnRows(rows)

	u, err := r.FindByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", u.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByID_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, password_hash, address, role, created_at, updated_at FROM users WHERE id = $1`)).
		WithArgs(sqlmock.AnyArg()).WillReturnError(sql.ErrNoRows)

	_, err = r.FindByID(context.Background(), uuid.New())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_UpdatePassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`)).
		WithArgs("newhash", id).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.UpdatePassword(context.Background(), id, "newhash"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_List_RoleFilterAndMeta(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	r := repo.NewPostgresUserRepository(sqlxDB)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM \(`).
		WithArgs("STORE_OWNER").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	ownerRating := 4.5
	rows := sqlmock.NewRows([]string{"id", "name", "email", "address", "role", "rating"}).
		AddRow(uuid.New(), "Jane", "jane@x.com", "12 Main St", "STORE_OWNER", ownerRating)
	mock.ExpectQuery(`ORDER BY u\.name ASC, u\.id ASC LIMIT \$2 OFFSET \$3`).
		WithArgs("STORE_OWNER", 10, 10).
		WillReturnRows(rows)

	result, err := r.List(context.Background(), repo.UserFilter{Role: "STORE_OWNER"}, 2, 10, "unknown-key", "asc")
	require.NoError(t, err)
	require.Len(t, result.Data, 1)
	require.NotNil(t, result.Data[0].Rating)
	require.Equal(t, 4.5, *result.Data[0].Rating)
	require.Equal(t, 2, result.Meta.CurrentPage)
	require.Equal(t, 2, result.Meta.TotalPages)
	require.Equal(t, 11, result.Meta.TotalItems)
	require.NoError(t, mock.ExpectationsWereMet())
}
