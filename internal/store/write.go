package store

import (
	"context"
	"fmt"
	"time"
)

// EventKind categorizes audit events.
type EventKind string

const (
	KindProductAdded   EventKind = "product_added"
	KindProductEdited  EventKind = "product_edited"
	KindProductDeleted EventKind = "product_deleted"
	KindPromotion      EventKind = "promotion"
	KindOrderPlaced    EventKind = "order_placed"
	KindReport         EventKind = "report"
)

// Event is a single audit log entry.
type Event struct {
	ID          int64
	Kind        EventKind
	ProductCode int    // 0 when the event is not about a single product
	Actor       string // admin or customer username; empty for system events
	Detail      string
	CreatedAt   time.Time
}

// Append inserts an audit event. The ID and CreatedAt fields of e are
// ignored; the store assigns both.
func (s *Store) Append(ctx context.Context, e Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (kind, product_code, actor, detail, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		string(e.Kind),
		e.ProductCode,
		e.Actor,
		e.Detail,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}
