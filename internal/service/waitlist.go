package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/courselaunch/waitlist-server/internal/analytics"
	"github.com/courselaunch/waitlist-server/internal/domain"
	"github.com/courselaunch/waitlist-server/internal/errors"
	"github.com/courselaunch/waitlist-server/internal/id"
	"github.com/courselaunch/waitlist-server/internal/normalize"
	"github.com/courselaunch/waitlist-server/internal/store"
	"github.com/courselaunch/waitlist-server/internal/validation"
)

// WaitlistService orchestrates interest submissions.
type WaitlistService struct {
	store     *store.Store
	logger    *slog.Logger
	validator *validation.Validator
	sink      analytics.Sink
}

// NewWaitlistService creates a new waitlist service. A nil sink disables
// analytics.
func NewWaitlistService(store *store.Store, logger *slog.Logger, sink analytics.Sink) *WaitlistService {
	if sink == nil {
		sink = analytics.NoopSink{}
	}
	return &WaitlistService{
		store:     store,
		logger:    logger,
		validator: validation.New(),
		sink:      sink,
	}
}

// Submit validates, normalizes, and stores an interest submission.
// A duplicate email returns an ALREADY_EXISTS error with the message shown
// to the user.
func (s *WaitlistService) Submit(ctx context.Context, sub domain.Submission) (*domain.Submission, error) {
	sub.Name = normalize.Name(sub.Name)
	sub.Email = normalize.Email(sub.Email)

	if fieldErrors := s.validator.ValidateSubmission(sub); len(fieldErrors) > 0 {
		return nil, errors.ValidationWithDetails("validation failed", fieldErrors)
	}

	subID, err := id.Generate(id.Submission)
	if err != nil {
		return nil, errors.Internal("failed to generate submission ID").WithCause(err)
	}
	sub.ID = subID
	sub.CreatedAt = time.Now().UTC()

	if err := s.store.CreateSubmission(ctx, &sub); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.AlreadyExists("This email is already registered")
		}
		s.logger.Error("Failed to store submission", "error", err)
		return nil, errors.Internal("failed to store submission").WithCause(err)
	}

	s.logger.Info("Interest submission recorded", "id", sub.ID)
	s.sink.Emit(analytics.NewEvent(analytics.EventConversion, analytics.CategoryEngagement, "waitlist", 0))

	return &sub, nil
}

// Count returns the number of signups. The store serves this from its
// short-lived cache so the polling counter does not hammer the database.
func (s *WaitlistService) Count(ctx context.Context) (int64, error) {
	return s.store.CountSubmissions(ctx)
}

// Recent returns the newest submissions, up to limit.
func (s *WaitlistService) Recent(ctx context.Context, limit int) ([]*domain.Submission, error) {
	return s.store.RecentSubmissions(ctx, limit)
}

// Ping reports whether the backing store is reachable.
func (s *WaitlistService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
