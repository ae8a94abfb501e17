package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const writeTimeout = 5 * time.Second

// Recorder writes audit events without ever failing the operation being
// audited. Writes are detached from the caller's context so a cancelled
// request still leaves its trace; a failed write is logged and dropped.
type Recorder struct {
	repo EventRepository
	log  zerolog.Logger
}

func NewRecorder(repo EventRepository, log zerolog.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Auth records an authentication lifecycle event (register, login, logout,
// deactivate, role change).
func (r *Recorder) Auth(ctx context.Context, action, actor, outcome, detail, sourceAddr string) {
	r.record(ctx, &Event{
		Kind:       KindAuth,
		Action:     action,
		Actor:      actor,
		Outcome:    outcome,
		Detail:     detail,
		SourceAddr: sourceAddr,
	})
}

// Access records a patient data access event.
func (r *Recorder) Access(ctx context.Context, action, actor, subject, outcome, detail string) {
	r.record(ctx, &Event{
		Kind:    KindAccess,
		Action:  action,
		Actor:   actor,
		Subject: subject,
		Outcome: outcome,
		Detail:  detail,
	})
}

// Validation records a rejected input event.
func (r *Recorder) Validation(ctx context.Context, actor, field, reason string) {
	r.record(ctx, &Event{
		Kind:    KindValidation,
		Action:  "REJECT",
		Actor:   actor,
		Outcome: "failure",
		Detail:  field + ": " + reason,
	})
}

func (r *Recorder) record(ctx context.Context, e *Event) {
	e.OccurredAt = time.Now()

	// Detach from the request context: the audit write outlives a cancelled
	// request, but never blocks it.
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, writeTimeout)
		defer cancel()
		if err := r.repo.Insert(ctx, e); err != nil {
			r.log.Error().Err(err).
				Str("kind", e.Kind).
				Str("action", e.Action).
				Str("actor", e.Actor).
				Msg("audit write dropped")
		}
	}()
}

// Search exposes the trail for admin review.
func (r *Recorder) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Event, int, error) {
	return r.repo.Search(ctx, params, limit, offset)
}
