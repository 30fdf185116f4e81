package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/courselaunch/waitlist-server/internal/domain"
	"github.com/courselaunch/waitlist-server/internal/normalize"
)

// submissionColumns is the ordered list of columns selected in submission
// queries. Must match the scan order in scanSubmission.
const submissionColumns = `id, created_at, name, email,
	subscribe_newsletter, subscribe_updates, subscribe_releases`

// scanSubmission scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Submission.
func scanSubmission(scanner interface{ Scan(dest ...any) error }) (*domain.Submission, error) {
	var (
		sub        domain.Submission
		createdAt  string
		newsletter int
		updates    int
		releases   int
	)

	err := scanner.Scan(
		&sub.ID,
		&createdAt,
		&sub.Name,
		&sub.Email,
		&newsletter,
		&updates,
		&releases,
	)
	if err != nil {
		return nil, err
	}

	sub.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	sub.SubscribeNewsletter = newsletter != 0
	sub.SubscribeUpdates = updates != 0
	sub.SubscribeReleases = releases != 0

	return &sub, nil
}

// CreateSubmission inserts a new waitlist submission.
// Returns ErrAlreadyExists if the email (case-insensitive) is already
// registered.
func (s *Store) CreateSubmission(ctx context.Context, sub *domain.Submission) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO interest_submissions (
			id, created_at, name, email, email_lower,
			subscribe_newsletter, subscribe_updates, subscribe_releases
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID,
		formatTime(sub.CreatedAt),
		sub.Name,
		sub.Email,
		normalize.EmailKey(sub.Email),
		boolToInt(sub.SubscribeNewsletter),
		boolToInt(sub.SubscribeUpdates),
		boolToInt(sub.SubscribeReleases),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		return err
	}

	// A new row makes the cached count stale; drop it so the next read
	// reflects the insert.
	s.countMu.Lock()
	s.countLoaded = false
	s.countMu.Unlock()

	return nil
}

// GetSubmissionByEmail retrieves a submission by email, case-insensitive.
// Returns ErrNotFound if no matching submission exists.
func (s *Store) GetSubmissionByEmail(ctx context.Context, email string) (*domain.Submission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+submissionColumns+` FROM interest_submissions WHERE email_lower = ?`,
		normalize.EmailKey(email))

	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// CountSubmissions returns the total number of waitlist submissions.
//
// The result is served from a 30-second cache. This is the one caching
// policy for the count: inserts through this store invalidate it, and all
// readers share it.
func (s *Store) CountSubmissions(ctx context.Context) (int64, error) {
	s.countMu.Lock()
	defer s.countMu.Unlock()

	if s.countLoaded && time.Since(s.countFetched) < countCacheTTL {
		return s.cachedCount, nil
	}

	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM interest_submissions`).Scan(&count)
	if err != nil {
		return 0, err
	}

	s.cachedCount = count
	s.countLoaded = true
	s.countFetched = time.Now()

	return count, nil
}

// RecentSubmissions returns up to limit submissions, newest first.
// Used by operational tooling, not by the landing page.
func (s *Store) RecentSubmissions(ctx context.Context, limit int) ([]*domain.Submission, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+submissionColumns+` FROM interest_submissions
		 ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*domain.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
