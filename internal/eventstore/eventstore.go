// Package eventstore persists webhook deliveries so that invalidation
// activity survives restarts and can be inspected after the fact.
package eventstore

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Delivery is one recorded webhook delivery.
type Delivery struct {
	ID         int64     `json:"id"`
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	PageID     string    `json:"page_id,omitempty"`
	ReceivedAt time.Time `json:"received_at"`
	Payload    []byte    `json:"-"`
}

// Store records webhook deliveries in SQLite. Use ":memory:" for an
// in-memory store, or a file path for persistence.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS deliveries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		page_id TEXT,
		received_at INTEGER NOT NULL,
		payload BLOB
	);
	CREATE INDEX IF NOT EXISTS idx_deliveries_event_type ON deliveries(event_type);
	CREATE INDEX IF NOT EXISTS idx_deliveries_received_at ON deliveries(received_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one delivery.
func (s *Store) Append(ctx context.Context, d Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	receivedAt := d.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO deliveries (event_id, event_type, page_id, received_at, payload) VALUES (?, ?, ?, ?, ?)",
		d.EventID, d.EventType, d.PageID, receivedAt.Unix(), d.Payload,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// Recent returns the latest deliveries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, event_id, event_type, page_id, received_at FROM deliveries ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	return scanDeliveries(rows)
}

// CountByType returns delivery counts grouped by event type.
func (s *Store) CountByType(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT event_type, COUNT(*) FROM deliveries GROUP BY event_type",
	)
	if err != nil {
		return nil, fmt.Errorf("count deliveries: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var eventType string
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[eventType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return counts, nil
}

func scanDeliveries(rows *sql.Rows) ([]Delivery, error) {
	var deliveries []Delivery
	for rows.Next() {
		var d Delivery
		var receivedAtUnix int64

		if err := rows.Scan(&d.ID, &d.EventID, &d.EventType, &d.PageID, &receivedAtUnix); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		d.ReceivedAt = time.Unix(receivedAtUnix, 0)
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return deliveries, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
