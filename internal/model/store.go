package model

import (
	"time"

	"github.com/google/uuid"
)

type Store struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Address   string    `db:"address"`
	OwnerID   uuid.UUID `db:"owner_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// StoreForViewer is a store row as seen by an authenticated browser: the
// aggregate rating plus the viewer's own rating when one exists.
type StoreForViewer struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	Email               string    `db:"email" json:"email"`
	Address             string    `db:"address" json:"address"`
	OverallRating       float64   `db:"overall_rating" json:"overallRating"`
	UserSubmittedRating *int      `db:"user_submitted_rating" json:"userSubmittedRating"`
}

// StoreWithRating is an admin-listing row carrying the computed average.
type StoreWithRating struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Address   string    `db:"address" json:"address"`
	OwnerID   uuid.UUID `db:"owner_id" json:"ownerId"`
	Rating    float64   `db:"rating" json:"rating"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
