package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courselaunch/waitlist-server/internal/domain"
	"github.com/courselaunch/waitlist-server/internal/errors"
	"github.com/courselaunch/waitlist-server/internal/store"
	"github.com/courselaunch/waitlist-server/internal/validation"
)

func newTestWaitlistService(t *testing.T) *WaitlistService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewWaitlistService(st, logger, nil)
}

func TestSubmit(t *testing.T) {
	svc := newTestWaitlistService(t)

	sub, err := svc.Submit(context.Background(), domain.Submission{
		Name:                "Jane Doe",
		Email:               "jane@example.com",
		SubscribeNewsletter: true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, sub.ID)
	assert.Contains(t, sub.ID, "sub-")
	assert.False(t, sub.CreatedAt.IsZero())
	assert.Equal(t, "Jane Doe", sub.Name)

	count, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSubmitNormalizes(t *testing.T) {
	svc := newTestWaitlistService(t)

	sub, err := svc.Submit(context.Background(), domain.Submission{
		Name:  "  Jane   Doe  ",
		Email: " jane@example.com ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", sub.Name)
	assert.Equal(t, "jane@example.com", sub.Email)
}

func TestSubmitInvalid(t *testing.T) {
	svc := newTestWaitlistService(t)

	_, err := svc.Submit(context.Background(), domain.Submission{
		Name:  "J",
		Email: "not-an-email",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	var domErr *errors.Error
	require.True(t, errors.As(err, &domErr))
	details, ok := domErr.Details.(validation.FieldErrors)
	require.True(t, ok)
	assert.Equal(t, "Name must be at least 2 characters", details["name"])
	assert.Equal(t, "Please enter a valid email address", details["email"])
}

func TestSubmitDuplicateEmail(t *testing.T) {
	svc := newTestWaitlistService(t)

	_, err := svc.Submit(context.Background(), domain.Submission{Name: "Jane Doe", Email: "jane@example.com"})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), domain.Submission{Name: "Other Jane", Email: "JANE@example.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAlreadyExists))
	assert.Equal(t, "This email is already registered", err.(*errors.Error).Message)
}

func TestRecent(t *testing.T) {
	svc := newTestWaitlistService(t)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := svc.Submit(context.Background(), domain.Submission{Name: "Jane Doe", Email: email})
		require.NoError(t, err)
	}

	recent, err := svc.Recent(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestPing(t *testing.T) {
	svc := newTestWaitlistService(t)
	assert.NoError(t, svc.Ping(context.Background()))
}
