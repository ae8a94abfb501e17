package audit

import "context"

// EventRepository is the storage contract for the audit trail. Insert is
// append-only; Search supports the admin review endpoint.
type EventRepository interface {
	Insert(ctx context.Context, e *Event) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Event, int, error)
}
