package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

type EventPublisher interface {
	PublishUserRegistered(userID uuid.UUID, role string) error
	PublishStoreCreated(storeID, ownerID uuid.UUID, name string) error
	PublishRatingSubmitted(storeID, userID uuid.UUID, value int) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (EventPublisher, error) {
	nc, err := nats.Connect(natsURL)

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

type UserRegisteredEvent struct {
	EventType    string    `json:"event_type"`
	UserID       uuid.UUID `json:"user_id"`
	Role         string    `json:"role"`
	RegisteredAt time.Time `json:"registered_at"`
}

type StoreCreatedEvent struct {
	EventType string    `json:"event_type"`
	StoreID   uuid.UUID `json:"store_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type RatingSubmittedEvent struct {
	EventType   string    `json:"event_type"`
	StoreID     uuid.UUID `json:"store_id"`
	UserID      uuid.UUID `json:"user_id"`
	Value       int       `json:"value"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func (p *NatsPublisher) publish(subject string, event interface{}) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshalling event JSON: %v", err)
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		log.Printf("Error publishing to NATS: %v", err)
		return err
	}

	log.Printf("Published event to NATS on subject '%s'", subject)
	return nil
}

func (p *NatsPublisher) PublishUserRegistered(userID uuid.UUID, role string) error {
	return p.publish("ratings.events.user.registered", UserRegisteredEvent{
		EventType:    "user.registered",
		UserID:       userID,
		Role:         role,
		RegisteredAt: time.Now(),
	})
}

func (p *NatsPublisher) PublishStoreCreated(storeID, ownerID uuid.UUID, name string) error {
	return p.publish("ratings.events.store.created", StoreCreatedEvent{
		EventType: "store.created",
		StoreID:   storeID,
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now(),
	})
}

func (p *NatsPublisher) PublishRatingSubmitted(storeID, userID uuid.UUID, value int) error {
	return p.publish("ratings.events.rating.submitted", RatingSubmittedEvent{
		EventType:   "rating.submitted",
		StoreID:     storeID,
		UserID:      userID,
		Value:       value,
		SubmittedAt: time.Now(),
	})
}
