// Package events publishes cache invalidation notifications over NATS so
// that downstream consumers (frontend rebuild hooks, edge caches) learn when
// content changed.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/inkwell-sites/inkwell/internal/config"
	"github.com/inkwell-sites/inkwell/internal/logfields"
)

// InvalidationEvent is the message published after a webhook-triggered cache
// flush.
type InvalidationEvent struct {
	EventType string    `json:"event"`
	PageID    string    `json:"page_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits invalidation events. The nil Publisher is valid and
// publishes nothing, so callers never need to branch on whether events are
// enabled.
type Publisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
	logger  *slog.Logger
}

// NewPublisher connects to NATS. Returns nil without error when events are
// disabled in the config.
func NewPublisher(cfg config.EventsConfig, logger *slog.Logger) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	conn, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	logger.Info("event publisher connected",
		slog.String("url", cfg.NATSURL),
		slog.String("subject", cfg.Subject))

	return &Publisher{
		conn:    conn,
		js:      js,
		subject: cfg.Subject,
		logger:  logger,
	}, nil
}

// PublishInvalidation emits one invalidation event. Failures are logged, not
// returned: a webhook delivery must not fail because a consumer channel is
// down.
func (p *Publisher) PublishInvalidation(ctx context.Context, event InvalidationEvent) {
	if p == nil {
		return
	}

	event.Timestamp = time.Now()
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("marshal invalidation event", logfields.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := p.js.Publish(ctx, p.subject, data); err != nil {
		p.logger.Error("publish invalidation event",
			logfields.Error(err),
			logfields.EventType(event.EventType))
		return
	}

	p.logger.Debug("invalidation event published",
		logfields.EventType(event.EventType),
		logfields.PageID(event.PageID))
}

// Close drops the NATS connection. Safe on a nil Publisher.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}
