package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/strokeward/strokeward/internal/platform/apperr"
)

type accountRepoPG struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) AccountRepository {
	return &accountRepoPG{pool: pool}
}

const accountCols = `id, handle, email, display_name, password_digest, role, active, created_at, updated_at, last_login_at`

func scanAccount(row pgx.Row) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.ID, &a.Handle, &a.Email, &a.DisplayName, &a.PasswordDigest, &a.Role,
		&a.Active, &a.CreatedAt, &a.UpdatedAt, &a.LastLoginAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

// mapError translates driver errors into the domain error taxonomy. The
// unique indexes on handle and email surface as 23505.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperr.ErrDuplicateIdentity
	}
	return err
}

func (r *accountRepoPG) Create(ctx context.Context, a *Account) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO account (id, handle, email, display_name, password_digest, role, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`,
		a.ID, a.Handle, a.Email, a.DisplayName, a.PasswordDigest, a.Role, a.Active,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	return mapError(err)
}

func (r *accountRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountCols+` FROM account WHERE id = $1`, id))
}

func (r *accountRepoPG) GetByHandle(ctx context.Context, handle string) (*Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountCols+` FROM account WHERE handle = $1`, handle))
}

func (r *accountRepoPG) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return scanAccount(r.pool.QueryRow(ctx,
		`SELECT `+accountCols+` FROM account WHERE LOWER(email) = LOWER($1)`, email))
}

func (r *accountRepoPG) Update(ctx context.Context, a *Account) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE account SET handle=$2, email=$3, display_name=$4, password_digest=$5, role=$6, active=$7, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.Handle, a.Email, a.DisplayName, a.PasswordDigest, a.Role, a.Active,
	)
	return mapError(err)
}

func (r *accountRepoPG) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE account SET last_login_at = $2, updated_at = NOW() WHERE id = $1`, id, at)
	return mapError(err)
}

func (r *accountRepoPG) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE account SET active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *accountRepoPG) SetRole(ctx context.Context, id uuid.UUID, role string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE account SET role = $2, updated_at = NOW() WHERE id = $1`, id, role)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *accountRepoPG) List(ctx context.Context, limit, offset int) ([]*Account, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM account`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+accountCols+` FROM account ORDER BY handle LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(
			&a.ID, &a.Handle, &a.Email, &a.DisplayName, &a.PasswordDigest, &a.Role,
			&a.Active, &a.CreatedAt, &a.UpdatedAt, &a.LastLoginAt,
		); err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}
