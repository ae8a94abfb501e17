package audit

import (
	"time"

	"github.com/google/uuid"
)

// Event kinds partition the trail by concern: authentication lifecycle,
// patient data access, and rejected input.
const (
	KindAuth       = "auth"
	KindAccess     = "access"
	KindValidation = "validation"
)

// Event is one immutable audit trail entry. Events are only ever inserted;
// there is no update or delete path.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor"`
	Subject    string    `json:"subject,omitempty"`
	Outcome    string    `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
	SourceAddr string    `json:"source_addr,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
