package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/strokeward/strokeward/internal/platform/apperr"
	"github.com/strokeward/strokeward/internal/platform/auth"
	"github.com/strokeward/strokeward/internal/platform/credential"
	"github.com/strokeward/strokeward/internal/platform/session"
	"github.com/strokeward/strokeward/internal/platform/validate"
)

// AuditLogger records security-relevant account events. Implementations must
// not fail the calling operation.
type AuditLogger interface {
	Auth(ctx context.Context, action, actor, outcome, detail, sourceAddr string)
	Validation(ctx context.Context, actor, field, reason string)
}

type Service struct {
	repo   AccountRepository
	hasher *credential.Hasher
	gate   *auth.Gate
	audit  AuditLogger
}

func NewService(repo AccountRepository, hasher *credential.Hasher, gate *auth.Gate, audit AuditLogger) *Service {
	return &Service{repo: repo, hasher: hasher, gate: gate, audit: audit}
}

// Register creates a new clinical account. Handle, email, and password
// are validated, and all text fields sanitized, before anything touches
// storage; the database's unique indexes are the final arbiter for
// duplicate identities. New accounts start as doctors, the
// least-privileged clinical role.
func (s *Service) Register(ctx context.Context, handle, email, displayName, password string) (*Account, error) {
	if !validate.Handle(handle) {
		s.audit.Validation(ctx, validate.String(handle), "username", "Username must be 3-20 characters of letters, numbers, underscores, or hyphens")
		return nil, apperr.NewValidation("username", "Username must be 3-20 characters of letters, numbers, underscores, or hyphens")
	}
	if !validate.Email(email) {
		s.audit.Validation(ctx, validate.String(handle), "email", "Invalid email address")
		return nil, apperr.NewValidation("email", "Invalid email address")
	}
	if res := validate.Password(password); !res.OK {
		s.audit.Validation(ctx, validate.String(handle), res.Field, res.Reason)
		return nil, apperr.NewValidation(res.Field, res.Reason)
	}

	handle = validate.String(handle)
	email = validate.String(email)
	displayName = validate.String(displayName)

	// Pre-check for a friendlier error; a concurrent registration can still
	// slip past this, in which case Create returns ErrDuplicateIdentity from
	// the unique index.
	if _, err := s.repo.GetByHandle(ctx, handle); err == nil {
		return nil, apperr.ErrDuplicateIdentity
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperr.ErrDuplicateIdentity
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	a := &Account{
		Handle:         handle,
		Email:          email,
		DisplayName:    displayName,
		PasswordDigest: digest,
		Role:           RoleDoctor,
		Active:         true,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.audit.Auth(ctx, "REGISTER", a.Handle, "success", "account created", "")
	return a, nil
}

// Login authenticates a handle/password pair and issues a session. Every
// failure path returns the same ErrAuthenticationFailed so responses do not
// reveal whether the handle exists, the password was wrong, or the account
// is deactivated.
func (s *Service) Login(ctx context.Context, handle, password, sourceAddr string) (*session.Session, *Account, error) {
	handle = validate.String(handle)

	a, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			// Burn comparable time so unknown handles are not
			// distinguishable by response latency.
			s.hasher.DummyCompare(password)
			s.audit.Auth(ctx, "LOGIN", handle, "failure", "unknown handle", sourceAddr)
			return nil, nil, apperr.ErrAuthenticationFailed
		}
		return nil, nil, err
	}

	if !s.hasher.Verify(a.PasswordDigest, password) {
		s.audit.Auth(ctx, "LOGIN", handle, "failure", "bad password", sourceAddr)
		return nil, nil, apperr.ErrAuthenticationFailed
	}

	if !a.Active {
		s.audit.Auth(ctx, "LOGIN", handle, "failure", "account deactivated", sourceAddr)
		return nil, nil, apperr.ErrAuthenticationFailed
	}

	now := time.Now()
	if err := s.repo.UpdateLastLogin(ctx, a.ID, now); err != nil {
		return nil, nil, err
	}
	a.LastLoginAt = &now

	sess, err := s.gate.Issue(ctx, a.ID, a.Handle, a.Role)
	if err != nil {
		return nil, nil, err
	}

	s.audit.Auth(ctx, "LOGIN", handle, "success", "", sourceAddr)
	return sess, a, nil
}

// Logout revokes the session for the given token. Revoking an expired or
// unknown token succeeds; the end state is the same.
func (s *Service) Logout(ctx context.Context, token, handle string) error {
	if err := s.gate.Revoke(ctx, token); err != nil {
		return err
	}
	s.audit.Auth(ctx, "LOGOUT", handle, "success", "", "")
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Account, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// Deactivate disables an account. Existing sessions keep their role snapshot
// until they expire; new logins are refused.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID, actor string) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return err
	}
	s.audit.Auth(ctx, "DEACTIVATE", actor, "success", "account "+id.String(), "")
	return nil
}

// ChangeRole assigns a new role. The change takes effect at the target's
// next login; live sessions carry the role snapshotted when they were issued.
func (s *Service) ChangeRole(ctx context.Context, id uuid.UUID, role, actor string) error {
	if !ValidRole(role) {
		s.audit.Validation(ctx, actor, "role", "Role must be one of doctor, staff, admin")
		return apperr.NewValidation("role", "Role must be one of doctor, staff, admin")
	}
	if err := s.repo.SetRole(ctx, id, role); err != nil {
		return err
	}
	s.audit.Auth(ctx, "CHANGE_ROLE", actor, "success", "account "+id.String()+" -> "+role, "")
	return nil
}
