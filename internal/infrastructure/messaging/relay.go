package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallyhq/tally/pkg/events"
	pkgkafka "github.com/tallyhq/tally/pkg/kafka"
)

const TopicLedgerEvents = "tally.ledger.events"

// Relay drains the outbox table and publishes staged domain events to
// Kafka. Events are written to the outbox inside the same transaction as
// the state change that produced them, so the relay delivers at least
// once exactly the events that committed.
type Relay struct {
	pool     *pgxpool.Pool
	producer *pkgkafka.Producer
	logger   *slog.Logger
	interval time.Duration
	batch    int
}

func NewRelay(pool *pgxpool.Pool, producer *pkgkafka.Producer, logger *slog.Logger) *Relay {
	return &Relay{
		pool:     pool,
		producer: producer,
		logger:   logger,
		interval: time.Second,
		batch:    100,
	}
}

// Run polls the outbox until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.drainOnce(ctx); err != nil {
				r.logger.Warn("outbox drain failed", "error", err)
			}
		}
	}
}

// drainOnce publishes one batch of unpublished events. FOR UPDATE SKIP
// LOCKED lets multiple relay instances share the table without
// duplicating a batch.
func (r *Relay) drainOnce(ctx context.Context) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin outbox tx: %w", err)
	}
	//nolint:errcheck
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT id, aggregate_id, aggregate_type, event_type, payload
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`, r.batch)
	if err != nil {
		return fmt.Errorf("query outbox: %w", err)
	}

	var entries []events.OutboxEntry
	for rows.Next() {
		var e events.OutboxEntry
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.AggregateType, &e.EventType, &e.Payload); err != nil {
			rows.Close()
			return fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate outbox: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(entries))
	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		messages = append(messages, pkgkafka.Message{
			Key:   []byte(e.AggregateID.String()),
			Value: e.Payload,
			Headers: map[string]string{
				"event_type":     e.EventType,
				"aggregate_type": e.AggregateType,
				"event_id":       e.ID.String(),
			},
		})
		ids = append(ids, e.ID)
	}

	if err := r.producer.Publish(ctx, TopicLedgerEvents, messages...); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE outbox SET published_at = now() WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return tx.Commit(ctx)
}
