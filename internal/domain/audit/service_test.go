package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type mockEventRepo struct {
	mu       sync.Mutex
	events   []*Event
	insertCh chan *Event
	fail     error
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{insertCh: make(chan *Event, 16)}
}

func (m *mockEventRepo) Insert(_ context.Context, e *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		m.insertCh <- e
		return m.fail
	}
	m.events = append(m.events, e)
	m.insertCh <- e
	return nil
}

func (m *mockEventRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Event, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []*Event
	for _, e := range m.events {
		if v, ok := params["actor"]; ok && e.Actor != v {
			continue
		}
		if v, ok := params["kind"]; ok && e.Kind != v {
			continue
		}
		if v, ok := params["outcome"]; ok && e.Outcome != v {
			continue
		}
		matched = append(matched, e)
	}
	total := len(matched)
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockEventRepo) waitInsert(t *testing.T) *Event {
	t.Helper()
	select {
	case e := <-m.insertCh:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for audit write")
		return nil
	}
}

func newTestRecorder() (*Recorder, *mockEventRepo) {
	repo := newMockEventRepo()
	return NewRecorder(repo, zerolog.Nop()), repo
}

func TestAuth_WritesEvent(t *testing.T) {
	rec, repo := newTestRecorder()

	rec.Auth(context.Background(), "LOGIN", "doctor1", "success", "", "10.0.0.7")

	e := repo.waitInsert(t)
	if e.Kind != KindAuth || e.Action != "LOGIN" || e.Actor != "doctor1" {
		t.Errorf("event = %+v", e)
	}
	if e.SourceAddr != "10.0.0.7" {
		t.Errorf("source addr = %q", e.SourceAddr)
	}
	if e.OccurredAt.IsZero() {
		t.Error("occurred_at not stamped")
	}
}

func TestAccess_WritesEvent(t *testing.T) {
	rec, repo := newTestRecorder()

	rec.Access(context.Background(), "READ", "staff2", "3f1c", "success", "")

	e := repo.waitInsert(t)
	if e.Kind != KindAccess || e.Action != "READ" || e.Subject != "3f1c" {
		t.Errorf("event = %+v", e)
	}
}

func TestValidation_WritesEvent(t *testing.T) {
	rec, repo := newTestRecorder()

	rec.Validation(context.Background(), "doctor1", "age", "Age must be between 0 and 120")

	e := repo.waitInsert(t)
	if e.Kind != KindValidation || e.Action != "REJECT" || e.Outcome != "failure" {
		t.Errorf("event = %+v", e)
	}
	if e.Detail != "age: Age must be between 0 and 120" {
		t.Errorf("detail = %q", e.Detail)
	}
}

func TestRecord_SurvivesCancelledContext(t *testing.T) {
	rec, repo := newTestRecorder()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec.Auth(ctx, "LOGOUT", "doctor1", "success", "", "")

	e := repo.waitInsert(t)
	if e.Action != "LOGOUT" {
		t.Errorf("event = %+v", e)
	}
}

func TestRecord_RepoFailureDoesNotPanic(t *testing.T) {
	rec, repo := newTestRecorder()
	repo.fail = errors.New("connection refused")

	rec.Auth(context.Background(), "LOGIN", "doctor1", "failure", "bad password", "")
	repo.waitInsert(t)

	// The failed write is dropped; the trail holds nothing.
	events, total, err := rec.Search(context.Background(), nil, 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || len(events) != 0 {
		t.Errorf("expected empty trail, got %d events", total)
	}
}

func TestSearch_Filters(t *testing.T) {
	rec, repo := newTestRecorder()
	ctx := context.Background()

	rec.Auth(ctx, "LOGIN", "doctor1", "success", "", "")
	repo.waitInsert(t)
	rec.Auth(ctx, "LOGIN", "doctor2", "failure", "bad password", "")
	repo.waitInsert(t)
	rec.Access(ctx, "READ", "doctor1", "3f1c", "success", "")
	repo.waitInsert(t)

	events, total, err := rec.Search(ctx, map[string]string{"actor": "doctor1", "kind": KindAuth}, 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 || len(events) != 1 {
		t.Fatalf("total = %d, len = %d, want 1", total, len(events))
	}
	if events[0].Action != "LOGIN" {
		t.Errorf("action = %q", events[0].Action)
	}
}
