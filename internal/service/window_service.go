package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-advisory-api/internal/models"
	appErrors "github.com/noah-isme/uni-advisory-api/pkg/errors"
)

// windowTimeLayout is the wire format for window bounds.
const windowTimeLayout = "2006-01-02 15:04:05"

type windowRepository interface {
	Get(ctx context.Context) (*models.EnrollmentWindow, error)
	Set(ctx context.Context, window models.EnrollmentWindow) error
}

// SetWindowRequest carries both window bounds; they are always replaced
// together.
type SetWindowRequest struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// WindowService administers the enrollment window.
type WindowService struct {
	repo      windowRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewWindowService constructs a WindowService.
func NewWindowService(repo windowRepository, validate *validator.Validate, logger *zap.Logger) *WindowService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WindowService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// Set validates and stores a new window.
func (s *WindowService) Set(ctx context.Context, req SetWindowRequest) (*models.EnrollmentWindow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid window payload")
	}

	start, err := time.Parse(windowTimeLayout, req.Start)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start must use format 2006-01-02 15:04:05")
	}
	end, err := time.Parse(windowTimeLayout, req.End)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end must use format 2006-01-02 15:04:05")
	}
	if !end.After(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end must be after start")
	}

	window := models.EnrollmentWindow{Start: start, End: end}
	if err := s.repo.Set(ctx, window); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store enrollment window")
	}

	s.logger.Info("enrollment window updated",
		zap.Time("start", start),
		zap.Time("end", end))
	return &window, nil
}

// Get returns the configured window, or nil when enrollment is disabled.
func (s *WindowService) Get(ctx context.Context) (*models.EnrollmentWindow, error) {
	window, err := s.repo.Get(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment window")
	}
	return window, nil
}

// Status reports the current window phase with human-readable distances.
func (s *WindowService) Status(ctx context.Context) (*models.WindowStatus, error) {
	window, err := s.repo.Get(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment window")
	}
	if window == nil {
		return &models.WindowStatus{State: models.WindowStateDisabled}, nil
	}

	now := s.now()
	status := &models.WindowStatus{Window: window}
	switch {
	case now.Before(window.Start):
		status.State = models.WindowStatePending
		status.StartsIn = window.Start.Sub(now).Round(time.Second).String()
	case now.After(window.End):
		status.State = models.WindowStateClosed
		status.EndedAgo = now.Sub(window.End).Round(time.Second).String()
	default:
		status.State = models.WindowStateOpen
		status.Remaining = window.End.Sub(now).Round(time.Second).String()
	}
	return status, nil
}

// Guard rejects enrollment mutations outside the window. An unset window
// means enrollment is disabled, not open.
func (s *WindowService) Guard(ctx context.Context, now time.Time) error {
	window, err := s.repo.Get(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment window")
	}
	if window == nil {
		return appErrors.Clone(appErrors.ErrWindowClosed, "enrollment is not currently enabled")
	}
	if now.Before(window.Start) {
		violation := appErrors.Clone(appErrors.ErrWindowClosed, "enrollment window has not opened yet")
		violation.Details = map[string]interface{}{"opens_at": window.Start}
		return violation
	}
	if now.After(window.End) {
		violation := appErrors.Clone(appErrors.ErrWindowClosed, "enrollment window has closed")
		violation.Details = map[string]interface{}{"closed_at": window.End}
		return violation
	}
	return nil
}
