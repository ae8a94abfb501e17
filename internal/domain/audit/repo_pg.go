package audit

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type eventRepoPG struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepoPG{pool: pool}
}

const eventCols = `id, kind, action, actor, subject, outcome, detail, source_addr, occurred_at`

func (r *eventRepoPG) Insert(ctx context.Context, e *Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_event (id, kind, action, actor, subject, outcome, detail, source_addr, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.Kind, e.Action, e.Actor, e.Subject, e.Outcome, e.Detail, e.SourceAddr, e.OccurredAt)
	return err
}

func (r *eventRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Event, int, error) {
	where := []string{}
	args := []interface{}{}
	idx := 1

	if v, ok := params["actor"]; ok {
		where = append(where, fmt.Sprintf("actor = $%d", idx))
		args = append(args, v)
		idx++
	}
	if v, ok := params["kind"]; ok {
		where = append(where, fmt.Sprintf("kind = $%d", idx))
		args = append(args, v)
		idx++
	}
	if v, ok := params["action"]; ok {
		where = append(where, fmt.Sprintf("action = $%d", idx))
		args = append(args, v)
		idx++
	}
	if v, ok := params["outcome"]; ok {
		where = append(where, fmt.Sprintf("outcome = $%d", idx))
		args = append(args, v)
		idx++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	countQ := fmt.Sprintf("SELECT COUNT(*) FROM audit_event %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf("SELECT %s FROM audit_event %s ORDER BY occurred_at DESC LIMIT $%d OFFSET $%d",
		eventCols, whereClause, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Kind, &e.Action, &e.Actor, &e.Subject,
			&e.Outcome, &e.Detail, &e.SourceAddr, &e.OccurredAt); err != nil {
			return nil, 0, err
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}
