package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/strokeward/strokeward/internal/domain/account"
	"github.com/strokeward/strokeward/internal/platform/apperr"
)

func newAccount(handle, email string) *account.Account {
	return &account.Account{
		Handle:         handle,
		Email:          email,
		PasswordDigest: "$2a$04$notarealdigestbutstoredasis1234567890123456789012345",
		Role:           account.RoleStaff,
		Active:         true,
	}
}

func TestAccountRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	truncate(t, ctx, "account")
	repo := account.NewAccountRepo(globalDB.Pool)

	a := newAccount("doctor1", "doc1@hospital.org")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == uuid.Nil {
		t.Fatal("expected assigned id")
	}
	if a.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	byID, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Handle != "doctor1" || byID.Role != account.RoleStaff || !byID.Active {
		t.Errorf("got %+v", byID)
	}

	byHandle, err := repo.GetByHandle(ctx, "doctor1")
	if err != nil {
		t.Fatalf("GetByHandle: %v", err)
	}
	if byHandle.ID != a.ID {
		t.Errorf("handle lookup returned different account")
	}
}

func TestAccountRepo_GetByEmailCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	truncate(t, ctx, "account")
	repo := account.NewAccountRepo(globalDB.Pool)

	a := newAccount("doctor1", "doc1@hospital.org")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetByEmail(ctx, "DOC1@Hospital.org")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != a.ID {
		t.Error("email lookup must be case-insensitive")
	}
}

func TestAccountRepo_DuplicateIdentity(t *testing.T) {
	ctx := context.Background()
	truncate(t, ctx, "account")
	repo := account.NewAccountRepo(globalDB.Pool)

	if err := repo.Create(ctx, newAccount("doctor1", "doc1@hospital.org")); err != nil {
		t.Fatal(err)
	}

	err := repo.Create(ctx, newAccount("doctor1", "other@hospital.org"))
	if !errors.Is(err, apperr.ErrDuplicateIdentity) {
		t.Errorf("duplicate handle: expected ErrDuplicateIdentity, got %v", err)
	}

	err = repo.Create(ctx, newAccount("doctor2", "DOC1@hospital.org"))
	if !errors.Is(err, apperr.ErrDuplicateIdentity) {
		t.Errorf("duplicate email (case folded): expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestAccountRepo_UnknownLookups(t *testing.T) {
	ctx := context.Background()
	truncate(t, ctx, "account")
	repo := account.NewAccountRepo(globalDB.Pool)

	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetByID: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByHandle(ctx, "nobody"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("GetByHandle: expected ErrNotFound, got %v", err)
	}
	if err := repo.SetActive(ctx, uuid.New(), false); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("SetActive: expected ErrNotFound, got %v", err)
	}
	if err := repo.SetRole(ctx, uuid.New(), account.RoleAdmin); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("SetRole: expected ErrNotFound, got %v", err)
	}
}

func TestAccountRepo_SetActiveAndRole(t *testing.T) {
	ctx := context.Background()
	truncate(t, ctx, "account")
	repo := account.NewAccountRepo(globalDB.Pool)

	a := newAccount("doctor1", "doc1@hospital.org")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatal(err)
	}

	if err := repo.SetActive(ctx, a.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if err := repo.SetRole(ctx, a.ID, account.RoleDoctor); err != nil {
		t.Fatalf("SetRole: %v", err)
	}

	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Active {
		t.Error("account still active")
	}
	if got.Role != account.RoleDoctor {
		t.Errorf("role = %q", got.Role)
	}
}

func TestAccountRepo_UpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	truncate(t, ctx, "account")
	repo := account.NewAccountRepo(globalDB.Pool)

	a := newAccount("doctor1", "doc1@hospital.org")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatal(err)
	}

	at := time.Now().UTC().Truncate(time.Millisecond)
	if err := repo.UpdateLastLogin(ctx, a.ID, at); err != nil {
		t.Fatalf("UpdateLastLogin: %v", err)
	}

	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.LastLoginAt == nil {
		t.Fatal("last_login_at not set")
	}
	if got.LastLoginAt.Sub(at).Abs() > time.Second {
		t.Errorf("last_login_at = %v, want ~%v", got.LastLoginAt, at)
	}
}

func TestAccountRepo_List(t *testing.T) {
	ctx := context.Background()
	truncate(t, ctx, "account")
	repo := account.NewAccountRepo(globalDB.Pool)

	for _, h := range []string{"doctor1", "doctor2", "staff1"} {
		if err := repo.Create(ctx, newAccount(h, h+"@hospital.org")); err != nil {
			t.Fatal(err)
		}
	}

	accounts, total, err := repo.List(ctx, 2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d", total)
	}
	if len(accounts) != 2 {
		t.Errorf("page size = %d", len(accounts))
	}

	rest, _, err := repo.List(ctx, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(rest) != 1 {
		t.Errorf("second page size = %d", len(rest))
	}
}
