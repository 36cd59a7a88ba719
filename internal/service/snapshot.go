package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/noah-isme/uni-advisory-api/internal/engine"
	"github.com/noah-isme/uni-advisory-api/internal/models"
	appErrors "github.com/noah-isme/uni-advisory-api/pkg/errors"
)

type catalogRepository interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	ListCourseDepartments(ctx context.Context) ([]models.CourseDepartment, error)
	FindDepartment(ctx context.Context, id int64) (*models.Department, error)
}

type studentRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	CourseIDsByStatus(ctx context.Context, studentID int64, status models.EnrollmentStatus) ([]int64, error)
}

// advisingSnapshot bundles the catalog and student profile every policy
// decision reads from. It is built once per request so eligibility, credit
// checks and graduation all see the same state.
type advisingSnapshot struct {
	student *models.Student
	profile *engine.Profile
	catalog *engine.Catalog
}

// loadSnapshot assembles the per-request advising snapshot.
func loadSnapshot(ctx context.Context, courses catalogRepository, students studentRepository, studentID int64) (*advisingSnapshot, error) {
	student, err := students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	passed, err := students.CourseIDsByStatus(ctx, studentID, models.EnrollmentStatusPassed)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load passed courses")
	}
	failed, err := students.CourseIDsByStatus(ctx, studentID, models.EnrollmentStatusFailed)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load failed courses")
	}

	catalogRows, err := courses.ListCourses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course catalog")
	}
	links, err := courses.ListCourseDepartments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load department links")
	}

	return &advisingSnapshot{
		student: student,
		profile: engine.BuildProfile(student, passed, failed),
		catalog: engine.BuildCatalog(catalogRows, links),
	}, nil
}
