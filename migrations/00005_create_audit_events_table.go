package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreateAuditEventsTable, downCreateAuditEventsTable)
}

func upCreateAuditEventsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS audit_events (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			event_type TEXT NOT NULL,
			actor_id UUID,
			subject_id UUID,
			payload JSONB,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_audit_events_event_type ON audit_events(event_type);
	`)
	return err
}

func downCreateAuditEventsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS audit_events;`)
	return err
}
