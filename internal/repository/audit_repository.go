package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type AuditEvent struct {
	EventType string     `db:"event_type"`
	ActorID   *uuid.UUID `db:"actor_id"`
	SubjectID *uuid.UUID `db:"subject_id"`
	Payload   []byte     `db:"payload"`
	CreatedAt time.Time  `db:"created_at"`
}

type AuditRepository interface {
	Save(ctx context.Context, event *AuditEvent) error
}

type postgresAuditRepository struct {
	db *sqlx.DB
}

func NewPostgresAuditRepository(db *sqlx.DB) AuditRepository {
	return &postgresAuditRepository{db: db}
}

func (r *postgresAuditRepository) Save(ctx context.Context, event *AuditEvent) error {
	query := `INSERT INTO audit_events (event_type, actor_id, subject_id, payload) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, event.EventType, event.ActorID, event.SubjectID, event.Payload)
	return err
}
