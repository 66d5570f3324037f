package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Recent returns the newest events first, up to limit (all events when
// limit <= 0). Returns an empty slice, not nil, when the log is empty.
func (s *Store) Recent(ctx context.Context, limit int) ([]Event, error) {
	query := `
		SELECT id, kind, product_code, actor, detail, created_at
		FROM audit_events
		ORDER BY id DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+" LIMIT ?", limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ByKind returns all events of a kind, oldest first.
func (s *Store) ByKind(ctx context.Context, kind EventKind) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, product_code, actor, detail, created_at
		FROM audit_events
		WHERE kind = ?
		ORDER BY id ASC
	`, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ByProduct returns all events touching a product code, oldest first.
func (s *Store) ByProduct(ctx context.Context, code int) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, product_code, actor, detail, created_at
		FROM audit_events
		WHERE product_code = ?
		ORDER BY id ASC
	`, code)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	events := []Event{}
	for rows.Next() {
		var e Event
		var kind, createdAt string
		if err := rows.Scan(&e.ID, &kind, &e.ProductCode, &e.Actor, &e.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Kind = EventKind(kind)
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse audit timestamp: %w", err)
		}
		e.CreatedAt = ts
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
