package patient

import (
	"context"
	"math"

	"github.com/google/uuid"

	"github.com/strokeward/strokeward/internal/platform/apperr"
	"github.com/strokeward/strokeward/internal/platform/validate"
)

// AuditLogger records every access to patient data. Implementations must
// not fail the calling operation.
type AuditLogger interface {
	Access(ctx context.Context, action, actor, subject, outcome, detail string)
}

type Service struct {
	store RecordStore
	audit AuditLogger
}

func NewService(store RecordStore, audit AuditLogger) *Service {
	return &Service{store: store, audit: audit}
}

// Create validates and sanitizes the submitted fields, then stores them as
// a new record. Fields beyond the required clinical set are kept; string
// values are sanitized before storage so markup never reaches the document.
func (s *Service) Create(ctx context.Context, fields Fields, actor string) (*Record, error) {
	if res := validate.PatientData(fields); !res.OK {
		s.audit.Access(ctx, "CREATE", actor, "", "failure", res.Reason)
		return nil, apperr.NewValidation(res.Field, res.Reason)
	}

	r := &Record{Fields: validate.SanitizeAll(fields)}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, err
	}

	s.audit.Access(ctx, "CREATE", actor, r.ID.String(), "success", "")
	return r, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID, actor string) (*Record, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.Access(ctx, "READ", actor, id.String(), "success", "")
	return r, nil
}

// Update replaces the record's fields wholesale. The replacement body goes
// through the same validation and sanitization as a create; there is no
// partial patch.
func (s *Service) Update(ctx context.Context, id uuid.UUID, fields Fields, actor string) (*Record, error) {
	if res := validate.PatientData(fields); !res.OK {
		s.audit.Access(ctx, "UPDATE", actor, id.String(), "failure", res.Reason)
		return nil, apperr.NewValidation(res.Field, res.Reason)
	}

	r := &Record{ID: id, Fields: validate.SanitizeAll(fields)}
	if err := s.store.Update(ctx, r); err != nil {
		return nil, err
	}

	s.audit.Access(ctx, "UPDATE", actor, id.String(), "success", "")
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Access(ctx, "DELETE", actor, id.String(), "success", "")
	return nil
}

func (s *Service) List(ctx context.Context, limit, offset int, actor string) ([]*Record, int, error) {
	records, total, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	s.audit.Access(ctx, "LIST", actor, "", "success", "")
	return records, total, nil
}

// Search filters records by whitelisted document fields. Unknown filter
// keys are rejected rather than silently dropped so a typo does not return
// the full population. Filter values pass through the same sanitizer as
// stored values; an unsanitized predicate could never match the escaped
// form on disk.
func (s *Service) Search(ctx context.Context, filter map[string]string, limit, offset int, actor string) ([]*Record, int, error) {
	clean := make(map[string]string, len(filter))
	for field, v := range filter {
		if !SearchableFields[field] {
			return nil, 0, apperr.NewValidation(field, "Unsupported search field: "+field)
		}
		clean[field] = validate.String(v)
	}

	records, total, err := s.store.Search(ctx, clean, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	s.audit.Access(ctx, "SEARCH", actor, "", "success", searchDetail(clean))
	return records, total, nil
}

// Stats aggregates the whole record population: totals, stroke incidence,
// and a by-gender breakdown. The stroke rate is the percentage of records
// flagged positive, rounded to two decimals.
func (s *Service) Stats(ctx context.Context, actor string) (*Stats, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{ByGender: map[string]int{}}
	for _, r := range records {
		st.Total++
		if strokePositive(r.Fields["stroke"]) {
			st.Strokes++
		}
		if g, ok := r.Fields["gender"].(string); ok && g != "" {
			st.ByGender[g]++
		}
	}
	if st.Total > 0 {
		st.StrokeRate = math.Round(float64(st.Strokes)/float64(st.Total)*100*100) / 100
	}

	s.audit.Access(ctx, "STATS", actor, "", "success", "")
	return st, nil
}

func searchDetail(filter map[string]string) string {
	detail := ""
	for _, field := range []string{"gender", "stroke"} {
		if v, ok := filter[field]; ok {
			if detail != "" {
				detail += " "
			}
			detail += field + "=" + v
		}
	}
	return detail
}

// strokePositive recognizes the binary literal forms a stroke flag takes
// after JSON decoding: the string "1" or the number 1 (float64 from JSONB).
func strokePositive(v any) bool {
	if !validate.BinaryFlag(v) {
		return false
	}
	switch n := v.(type) {
	case string:
		return n == "1"
	case int:
		return n == 1
	case int64:
		return n == 1
	case float64:
		return n == 1
	}
	return false
}
