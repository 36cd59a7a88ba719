package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-advisory-api/internal/models"
	appErrors "github.com/noah-isme/uni-advisory-api/pkg/errors"
)

type mockWindowRepo struct {
	window *models.EnrollmentWindow
	sets   []models.EnrollmentWindow
}

func (m *mockWindowRepo) Get(ctx context.Context) (*models.EnrollmentWindow, error) {
	return m.window, nil
}

func (m *mockWindowRepo) Set(ctx context.Context, window models.EnrollmentWindow) error {
	m.sets = append(m.sets, window)
	m.window = &window
	return nil
}

func TestWindowSetStoresBothBounds(t *testing.T) {
	repo := &mockWindowRepo{}
	svc := NewWindowService(repo, nil, nil)

	window, err := svc.Set(context.Background(), SetWindowRequest{
		Start: "2026-09-01 08:00:00",
		End:   "2026-09-15 23:59:59",
	})
	require.NoError(t, err)
	require.Len(t, repo.sets, 1)
	assert.True(t, window.End.After(window.Start))
}

func TestWindowSetRejectsInvertedBounds(t *testing.T) {
	repo := &mockWindowRepo{}
	svc := NewWindowService(repo, nil, nil)

	_, err := svc.Set(context.Background(), SetWindowRequest{
		Start: "2026-09-15 00:00:00",
		End:   "2026-09-01 00:00:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.sets)
}

func TestWindowSetRejectsBadFormat(t *testing.T) {
	repo := &mockWindowRepo{}
	svc := NewWindowService(repo, nil, nil)

	_, err := svc.Set(context.Background(), SetWindowRequest{Start: "2026-09-01", End: "2026-09-15"})
	require.Error(t, err)
	assert.Empty(t, repo.sets)
}

func TestWindowStatusPhases(t *testing.T) {
	start, _ := time.Parse(windowTimeLayout, "2026-09-01 08:00:00")
	end, _ := time.Parse(windowTimeLayout, "2026-09-15 23:59:59")
	repo := &mockWindowRepo{window: &models.EnrollmentWindow{Start: start, End: end}}
	svc := NewWindowService(repo, nil, nil)

	svc.now = func() time.Time { return start.Add(-time.Hour) }
	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.WindowStatePending, status.State)
	assert.NotEmpty(t, status.StartsIn)

	svc.now = func() time.Time { return start.Add(time.Hour) }
	status, err = svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.WindowStateOpen, status.State)
	assert.NotEmpty(t, status.Remaining)

	svc.now = func() time.Time { return end.Add(time.Hour) }
	status, err = svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.WindowStateClosed, status.State)
	assert.NotEmpty(t, status.EndedAgo)
}

func TestWindowStatusDisabledWithoutWindow(t *testing.T) {
	svc := NewWindowService(&mockWindowRepo{}, nil, nil)

	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.WindowStateDisabled, status.State)
	assert.Nil(t, status.Window)
}

func TestWindowGuardFailsClosed(t *testing.T) {
	svc := NewWindowService(&mockWindowRepo{}, nil, nil)

	err := svc.Guard(context.Background(), time.Now())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrWindowClosed.Code, appErrors.FromError(err).Code)
}

func TestWindowGuardBounds(t *testing.T) {
	start, _ := time.Parse(windowTimeLayout, "2026-09-01 08:00:00")
	end, _ := time.Parse(windowTimeLayout, "2026-09-15 23:59:59")
	repo := &mockWindowRepo{window: &models.EnrollmentWindow{Start: start, End: end}}
	svc := NewWindowService(repo, nil, nil)

	require.NoError(t, svc.Guard(context.Background(), start))
	require.NoError(t, svc.Guard(context.Background(), end))

	err := svc.Guard(context.Background(), start.Add(-time.Second))
	require.Error(t, err)
	assert.NotNil(t, appErrors.FromError(err).Details["opens_at"])

	err = svc.Guard(context.Background(), end.Add(time.Second))
	require.Error(t, err)
	assert.NotNil(t, appErrors.FromError(err).Details["closed_at"])
}
