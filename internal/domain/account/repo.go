package account

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByHandle(ctx context.Context, handle string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Update(ctx context.Context, a *Account) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	SetRole(ctx context.Context, id uuid.UUID, role string) error
	List(ctx context.Context, limit, offset int) ([]*Account, int, error)
}
