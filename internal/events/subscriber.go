package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"store-rating-service/internal/repository"
)

const (
	maxRetries    = 3
	retryDelaySec = 2
	dlqSubject    = "ratings.audit.failed"
)

// auditEnvelope is the subset of fields every published event carries that
// the audit trail cares about.
type auditEnvelope struct {
	EventType string     `json:"event_type"`
	UserID    *uuid.UUID `json:"user_id"`
	StoreID   *uuid.UUID `json:"store_id"`
}

// AuditSubscriber mirrors every domain event into the audit_events table.
type AuditSubscriber struct {
	natsConn  *nats.Conn
	auditRepo repository.AuditRepository
}

func NewAuditSubscriber(natsURL string, auditRepo repository.AuditRepository) (*AuditSubscriber, error) {
	nc, err := nats.Connect(natsURL)
	if err != nil {
		return nil, err
	}
	log.Println("Audit subscriber connected to NATS.")

	subscriber := &AuditSubscriber{
		natsConn:  nc,
		auditRepo: auditRepo,
	}

	subscriber.subscribeToDomainEvents()

	return subscriber, nil
}

func (s *AuditSubscriber) subscribeToDomainEvents() {
	_, err := s.natsConn.Subscribe("ratings.events.>", func(msg *nats.Msg) {
		var envelope auditEnvelope
		if err := json.Unmarshal(msg.Data, &envelope); err != nil {
			log.Printf("Failed to unmarshal audit event: %v", err)
			return
		}

		event := &repository.AuditEvent{
			EventType: envelope.EventType,
			ActorID:   envelope.UserID,
			SubjectID: envelope.StoreID,
			Payload:   msg.Data,
		}

		var saveErr error
		for attempt := 1; attempt <= maxRetries; attempt++ {
			saveErr = s.auditRepo.Save(context.Background(), event)
			if saveErr == nil {
				return
			}

			log.Printf("Failed saving audit event to DB (Retry %d): %v. Retrying in %d seconds...", attempt, saveErr, retryDelaySec)
			time.Sleep(time.Second * retryDelaySec)
		}

		log.Printf("FAILED COMPLETELY to save audit event after %d attempts. Event: %s. Last error: %v", maxRetries, envelope.EventType, saveErr)

		if err := s.natsConn.Publish(dlqSubject, msg.Data); err != nil {
			log.Printf("Failed to publish to DLQ '%s': %v", dlqSubject, err)
		}
	})
	if err != nil {
		log.Printf("Failed to subscribe to audit events: %v", err)
	} else {
		log.Println("Audit subscriber listening to ratings.events.>")
	}
}
