package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-advisory-api/internal/engine"
	"github.com/noah-isme/uni-advisory-api/internal/models"
	appErrors "github.com/noah-isme/uni-advisory-api/pkg/errors"
)

type enrollmentRepository interface {
	CurrentCredits(ctx context.Context, studentID int64, period string) (int, error)
	EnrollBatch(ctx context.Context, studentID int64, courseIDs []int64, period string, semesterNumber int) ([]models.Enrollment, error)
	WithdrawBatch(ctx context.Context, studentID int64, courseIDs []int64) ([]int64, error)
}

type windowGuard interface {
	Guard(ctx context.Context, now time.Time) error
}

type cacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// EnrollRequest is the add/remove payload.
type EnrollRequest struct {
	CourseIDs []int64 `json:"course_ids" validate:"required,min=1,dive,gt=0"`
}

// EnrollmentService enforces the registration policy chain: window, then
// eligibility, then the aggregate credit cap. Nothing is persisted unless
// every check passes.
type EnrollmentService struct {
	enrollments enrollmentRepository
	courses     catalogRepository
	students    studentRepository
	window      windowGuard
	cache       cacheInvalidator
	validator   *validator.Validate
	logger      *zap.Logger
	now         func() time.Time
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(enrollments enrollmentRepository, courses catalogRepository, students studentRepository, window windowGuard, cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		enrollments: enrollments,
		courses:     courses,
		students:    students,
		window:      window,
		cache:       cache,
		validator:   validate,
		logger:      logger,
		now:         time.Now,
	}
}

// Add registers the student for the requested courses.
func (s *EnrollmentService) Add(ctx context.Context, studentID int64, req EnrollRequest) ([]models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}

	now := s.now()
	if err := s.window.Guard(ctx, now); err != nil {
		return nil, err
	}

	snapshot, err := loadSnapshot(ctx, s.courses, s.students, studentID)
	if err != nil {
		return nil, err
	}

	eligibility, err := engine.Eligible(snapshot.profile, snapshot.catalog)
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	var invalid []int64
	requested := 0
	for _, id := range req.CourseIDs {
		if !eligibility.Contains(id) {
			invalid = append(invalid, id)
			continue
		}
		requested += snapshot.catalog.Courses[id].Credits
	}
	if len(invalid) > 0 {
		return nil, appErrors.Policy("one or more courses are not eligible for enrollment", map[string]interface{}{
			"invalid_course_ids": invalid,
		})
	}

	semesterNumber, period := engine.CurrentPeriod(now)
	current, err := s.enrollments.CurrentCredits(ctx, studentID, period)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sum current credits")
	}

	maxCredits := engine.MaxCredits(snapshot.student.Semester, snapshot.student.GPASnapshots())
	if current+requested > maxCredits {
		return nil, appErrors.Policy(
			fmt.Sprintf("enrolling would exceed the %d credit limit", maxCredits),
			map[string]interface{}{
				"current_credits":   current,
				"requested_credits": requested,
				"max_credits":       maxCredits,
			})
	}

	created, err := s.enrollments.EnrollBatch(ctx, studentID, req.CourseIDs, period, semesterNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist enrollments")
	}

	s.invalidateEvaluation(ctx, studentID)
	s.logger.Info("enrollments created",
		zap.Int64("student_id", studentID),
		zap.String("period", period),
		zap.Int("count", len(created)))
	return created, nil
}

// Remove withdraws the student from the given courses. The window gate
// applies to withdrawals exactly as it does to additions.
func (s *EnrollmentService) Remove(ctx context.Context, studentID int64, req EnrollRequest) ([]int64, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid withdrawal payload")
	}

	if err := s.window.Guard(ctx, s.now()); err != nil {
		return nil, err
	}

	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	withdrawn, err := s.enrollments.WithdrawBatch(ctx, studentID, req.CourseIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to withdraw enrollments")
	}

	s.invalidateEvaluation(ctx, studentID)
	s.logger.Info("enrollments withdrawn",
		zap.Int64("student_id", studentID),
		zap.Int("count", len(withdrawn)))
	return withdrawn, nil
}

func (s *EnrollmentService) invalidateEvaluation(ctx context.Context, studentID int64) {
	if s.cache == nil {
		return
	}
	pattern := fmt.Sprintf("evaluation:report:%d", studentID)
	if err := s.cache.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("failed to invalidate evaluation cache",
			zap.Int64("student_id", studentID),
			zap.Error(err))
	}
}
