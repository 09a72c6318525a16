package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleNormalUser  = "NORMAL_USER"
	RoleStoreOwner  = "STORE_OWNER"
	RoleSystemAdmin = "SYSTEM_ADMIN"
)

type User struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Address      string    `db:"address"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// UserWithRating is an admin-listing row: for STORE_OWNER rows Rating holds
// the owned store's average rating, otherwise it is null.
type UserWithRating struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Address   string    `db:"address" json:"address"`
	Role      string    `db:"role" json:"role"`
	Rating    *float64  `db:"rating" json:"rating"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
