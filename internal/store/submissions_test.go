package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/courselaunch/waitlist-server/internal/domain"
)

func testSubmission(id, email string) *domain.Submission {
	return &domain.Submission{
		ID:                  id,
		Name:                "Test User",
		Email:               email,
		SubscribeNewsletter: true,
		CreatedAt:           time.Now(),
	}
}

func TestCreateSubmission(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateSubmission(ctx, testSubmission("sub-1", "a@example.com")); err != nil {
		t.Fatalf("create submission: %v", err)
	}

	got, err := s.GetSubmissionByEmail(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != "sub-1" {
		t.Errorf("expected sub-1, got %s", got.ID)
	}
	if !got.SubscribeNewsletter {
		t.Error("expected subscribe_newsletter to round-trip")
	}
}

func TestCreateSubmission_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateSubmission(ctx, testSubmission("sub-1", "existing@example.com")); err != nil {
		t.Fatalf("create submission: %v", err)
	}

	err := s.CreateSubmission(ctx, testSubmission("sub-2", "existing@example.com"))
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestCreateSubmission_DuplicateEmailCaseInsensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateSubmission(ctx, testSubmission("sub-1", "User@Example.com")); err != nil {
		t.Fatalf("create submission: %v", err)
	}

	err := s.CreateSubmission(ctx, testSubmission("sub-2", "user@example.COM"))
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists for case-variant email, got %v", err)
	}
}

func TestGetSubmissionByEmail_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSubmissionByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCountSubmissions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.CountSubmissions(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0, got %d", count)
	}

	if err := s.CreateSubmission(ctx, testSubmission("sub-1", "a@example.com")); err != nil {
		t.Fatalf("create submission: %v", err)
	}
	if err := s.CreateSubmission(ctx, testSubmission("sub-2", "b@example.com")); err != nil {
		t.Fatalf("create submission: %v", err)
	}

	// Inserts invalidate the count cache, so the new rows are visible.
	count, err = s.CountSubmissions(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2, got %d", count)
	}
}

func TestCountSubmissions_CacheServesRepeatReads(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateSubmission(ctx, testSubmission("sub-1", "a@example.com")); err != nil {
		t.Fatalf("create submission: %v", err)
	}

	first, err := s.CountSubmissions(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	// Write behind the store's back; the cached value must be served until
	// the TTL lapses or an insert through the store invalidates it.
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO interest_submissions
			(id, created_at, name, email, email_lower,
			 subscribe_newsletter, subscribe_updates, subscribe_releases)
		VALUES ('sub-x', '2026-01-01T00:00:00Z', 'X', 'x@example.com', 'x@example.com', 0, 0, 0)`)
	if err != nil {
		t.Fatalf("raw insert: %v", err)
	}

	second, err := s.CountSubmissions(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if second != first {
		t.Errorf("expected cached count %d, got %d", first, second)
	}

	// Expire the cache manually and read again.
	s.countMu.Lock()
	s.countFetched = time.Now().Add(-time.Minute)
	s.countMu.Unlock()

	third, err := s.CountSubmissions(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if third != first+1 {
		t.Errorf("expected refreshed count %d, got %d", first+1, third)
	}
}

func TestRecentSubmissions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		sub := testSubmission("sub-"+email, email)
		sub.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := s.CreateSubmission(ctx, sub); err != nil {
			t.Fatalf("create submission: %v", err)
		}
	}

	subs, err := s.RecentSubmissions(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(subs))
	}
	if subs[0].Email != "c@example.com" {
		t.Errorf("expected newest first, got %s", subs[0].Email)
	}
}
