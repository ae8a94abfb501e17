package patient

import (
	"context"

	"github.com/google/uuid"
)

// SearchableFields lists the record fields a search filter may reference.
// Restricting the set keeps arbitrary client input out of query predicates.
var SearchableFields = map[string]bool{
	"gender": true,
	"stroke": true,
}

// RecordStore is the document storage contract for stroke records. Get
// returns apperr.ErrNotFound for unknown IDs.
type RecordStore interface {
	Create(ctx context.Context, r *Record) error
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	Update(ctx context.Context, r *Record) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Record, int, error)
	Search(ctx context.Context, filter map[string]string, limit, offset int) ([]*Record, int, error)
	All(ctx context.Context) ([]*Record, error)
}
