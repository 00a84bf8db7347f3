package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEntry is a domain event staged for publication. Entries are written
// in the same database transaction as the aggregate change that produced
// them, and relayed to the message broker afterwards.
type OutboxEntry struct {
	ID            uuid.UUID
	AggregateID   uuid.UUID
	AggregateType string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// NewOutboxEntry converts a domain event into an outbox entry. When the
// event carries no pre-serialized payload the event itself is marshalled.
func NewOutboxEntry(event DomainEvent) OutboxEntry {
	payload := event.Payload()
	if len(payload) == 0 {
		payload, _ = json.Marshal(event)
	}
	return OutboxEntry{
		ID:            event.EventID(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		EventType:     event.EventType(),
		Payload:       payload,
		CreatedAt:     event.OccurredAt(),
	}
}
