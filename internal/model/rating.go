package model

import (
	"time"

	"github.com/google/uuid"
)

type Rating struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	StoreID   uuid.UUID `db:"store_id"`
	Value     int       `db:"value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// RaterEntry is one row of the owner dashboard: who rated the store and what
// they gave it.
type RaterEntry struct {
	Name    string    `db:"name" json:"name"`
	Email   string    `db:"email" json:"email"`
	Address string    `db:"address" json:"address"`
	Rating  int       `db:"rating" json:"rating"`
	RatedAt time.Time `db:"rated_at" json:"ratedAt"`
}
