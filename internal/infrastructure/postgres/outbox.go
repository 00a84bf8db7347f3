package postgres

import (
	"context"
	"fmt"

	"github.com/tallyhq/tally/pkg/events"
	pg "github.com/tallyhq/tally/pkg/postgres"
)

// stageEvents writes domain events to the outbox table inside the
// caller's transaction, so an event is published if and only if the
// state change that produced it committed.
func stageEvents(ctx context.Context, q pg.Querier, evts []events.DomainEvent) error {
	for _, evt := range evts {
		entry := events.NewOutboxEntry(evt)
		_, err := q.Exec(ctx, `
			INSERT INTO outbox (id, aggregate_id, aggregate_type, event_type, payload, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, entry.ID, entry.AggregateID, entry.AggregateType, entry.EventType, entry.Payload, entry.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert outbox event: %w", err)
		}
	}
	return nil
}
