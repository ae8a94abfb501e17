package patient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/strokeward/strokeward/internal/platform/apperr"
)

// recordStorePG keeps stroke records as JSONB documents. The schemaless
// body lives in a single doc column; the common search predicates are
// served by expression indexes on doc->>'gender' and doc->>'stroke'.
type recordStorePG struct {
	pool *pgxpool.Pool
}

func NewRecordStore(pool *pgxpool.Pool) RecordStore {
	return &recordStorePG{pool: pool}
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return err
}

func (s *recordStorePG) Create(ctx context.Context, r *Record) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	doc, err := json.Marshal(r.Fields)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	err = s.pool.QueryRow(ctx,
		`INSERT INTO stroke_record (id, doc) VALUES ($1, $2) RETURNING created_at, updated_at`,
		r.ID, doc).Scan(&r.CreatedAt, &r.UpdatedAt)
	return mapError(err)
}

func (s *recordStorePG) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	var r Record
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id, doc, created_at, updated_at FROM stroke_record WHERE id = $1`, id).
		Scan(&r.ID, &doc, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	if err := json.Unmarshal(doc, &r.Fields); err != nil {
		return nil, fmt.Errorf("unmarshal record %s: %w", id, err)
	}
	return &r, nil
}

func (s *recordStorePG) Update(ctx context.Context, r *Record) error {
	doc, err := json.Marshal(r.Fields)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	err = s.pool.QueryRow(ctx,
		`UPDATE stroke_record SET doc = $2, updated_at = NOW() WHERE id = $1 RETURNING updated_at`,
		r.ID, doc).Scan(&r.UpdatedAt)
	return mapError(err)
}

func (s *recordStorePG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM stroke_record WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *recordStorePG) List(ctx context.Context, limit, offset int) ([]*Record, int, error) {
	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stroke_record`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, doc, created_at, updated_at FROM stroke_record ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (s *recordStorePG) Search(ctx context.Context, filter map[string]string, limit, offset int) ([]*Record, int, error) {
	where := []string{}
	args := []interface{}{}
	idx := 1

	for field, value := range filter {
		if !SearchableFields[field] {
			continue
		}
		// field is whitelisted; value is always a bind parameter.
		where = append(where, fmt.Sprintf("doc->>'%s' = $%d", field, idx))
		args = append(args, value)
		idx++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQ := fmt.Sprintf(`SELECT COUNT(*) FROM stroke_record %s`, whereClause)
	if err := s.pool.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(
		`SELECT id, doc, created_at, updated_at FROM stroke_record %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		whereClause, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (s *recordStorePG) All(ctx context.Context) ([]*Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, doc, created_at, updated_at FROM stroke_record ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows pgx.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		var r Record
		var doc []byte
		if err := rows.Scan(&r.ID, &doc, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(doc, &r.Fields); err != nil {
			return nil, fmt.Errorf("unmarshal record %s: %w", r.ID, err)
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
