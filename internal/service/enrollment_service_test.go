package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-advisory-api/internal/models"
	"github.com/noah-isme/uni-advisory-api/internal/repository"
	appErrors "github.com/noah-isme/uni-advisory-api/pkg/errors"
)

func f64p(v float64) *float64 { return &v }

type mockCatalogRepo struct {
	courses []models.Course
	links   []models.CourseDepartment
	dept    *models.Department
}

func (m *mockCatalogRepo) ListCourses(ctx context.Context) ([]models.Course, error) {
	return m.courses, nil
}

func (m *mockCatalogRepo) ListCourseDepartments(ctx context.Context) ([]models.CourseDepartment, error) {
	return m.links, nil
}

func (m *mockCatalogRepo) FindDepartment(ctx context.Context, id int64) (*models.Department, error) {
	if m.dept == nil {
		return nil, sql.ErrNoRows
	}
	return m.dept, nil
}

type mockStudentRepo struct {
	student     *models.Student
	passed      []int64
	failed      []int64
	failedCount int
	absences    []repository.AbsenceRow
	grades      []repository.SubjectGradeRow
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if m.student == nil || m.student.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.student, nil
}

func (m *mockStudentRepo) CourseIDsByStatus(ctx context.Context, studentID int64, status models.EnrollmentStatus) ([]int64, error) {
	if status == models.EnrollmentStatusPassed {
		return m.passed, nil
	}
	return m.failed, nil
}

func (m *mockStudentRepo) CountFailed(ctx context.Context, studentID int64) (int, error) {
	return m.failedCount, nil
}

func (m *mockStudentRepo) ListAbsences(ctx context.Context, studentID int64) ([]repository.AbsenceRow, error) {
	return m.absences, nil
}

func (m *mockStudentRepo) ListSubjectGrades(ctx context.Context, studentID int64) ([]repository.SubjectGradeRow, error) {
	return m.grades, nil
}

type mockEnrollmentRepo struct {
	currentCredits int
	enrolled       [][]int64
	withdrawn      [][]int64
}

func (m *mockEnrollmentRepo) CurrentCredits(ctx context.Context, studentID int64, period string) (int, error) {
	return m.currentCredits, nil
}

func (m *mockEnrollmentRepo) EnrollBatch(ctx context.Context, studentID int64, courseIDs []int64, period string, semesterNumber int) ([]models.Enrollment, error) {
	m.enrolled = append(m.enrolled, courseIDs)
	created := make([]models.Enrollment, 0, len(courseIDs))
	for _, id := range courseIDs {
		created = append(created, models.Enrollment{
			ID:        "enr",
			StudentID: studentID,
			CourseID:  id,
			Period:    period,
			Status:    models.EnrollmentStatusInProgress,
		})
	}
	return created, nil
}

func (m *mockEnrollmentRepo) WithdrawBatch(ctx context.Context, studentID int64, courseIDs []int64) ([]int64, error) {
	m.withdrawn = append(m.withdrawn, courseIDs)
	return courseIDs, nil
}

type mockWindowGuard struct {
	err error
}

func (m *mockWindowGuard) Guard(ctx context.Context, now time.Time) error { return m.err }

type mockInvalidator struct {
	patterns []string
}

func (m *mockInvalidator) DeleteByPattern(ctx context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	return nil
}

// fixture: department 10 offers a 6-credit mandatory course and two electives
// in semester 3.
func enrollmentFixtures(gpa3 float64) (*mockCatalogRepo, *mockStudentRepo) {
	catalog := &mockCatalogRepo{
		courses: []models.Course{
			{ID: 1, Name: "Calculus I", Code: "MATH101", Credits: 6, Status: models.CourseStatusActive, Semester: 1},
			{ID: 3, Name: "Data Structures", Code: "CS201", Credits: 6, Status: models.CourseStatusActive, Semester: 3},
			{ID: 5, Name: "Art History", Code: "ART110", Credits: 6, Status: models.CourseStatusActive, Semester: 3},
			{ID: 6, Name: "Music Theory", Code: "MUS120", Credits: 6, Status: models.CourseStatusActive, Semester: 3},
		},
		links: []models.CourseDepartment{
			{CourseID: 1, DepartmentID: 10, Mandatory: true},
			{CourseID: 3, DepartmentID: 10, Mandatory: true},
			{CourseID: 5, DepartmentID: 10, Mandatory: false},
			{CourseID: 6, DepartmentID: 10, Mandatory: false},
		},
	}
	students := &mockStudentRepo{
		student: &models.Student{
			ID:           100,
			Name:         "Ada",
			DepartmentID: 10,
			Semester:     3,
			GPA1:         f64p(2.5),
			GPA2:         f64p(2.2),
			GPA3:         f64p(gpa3),
		},
		passed: []int64{1},
	}
	return catalog, students
}

func TestEnrollmentAddAcceptedWithinReducedCap(t *testing.T) {
	catalog, students := enrollmentFixtures(1.8)
	enrollments := &mockEnrollmentRepo{currentCredits: 0}
	cache := &mockInvalidator{}
	svc := NewEnrollmentService(enrollments, catalog, students, &mockWindowGuard{}, cache, nil, nil)

	created, err := svc.Add(context.Background(), 100, EnrollRequest{CourseIDs: []int64{3}})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, []string{"evaluation:report:100"}, cache.patterns)
}

func TestEnrollmentAddRejectedOverReducedCap(t *testing.T) {
	catalog, students := enrollmentFixtures(1.8)
	enrollments := &mockEnrollmentRepo{currentCredits: 0}
	svc := NewEnrollmentService(enrollments, catalog, students, &mockWindowGuard{}, nil, nil, nil)

	// Two 6-credit courses fit the default cap but not the reduced one.
	_, err := svc.Add(context.Background(), 100, EnrollRequest{CourseIDs: []int64{3, 5}})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPolicyViolation.Code, appErr.Code)
	assert.Equal(t, 0, appErr.Details["current_credits"])
	assert.Equal(t, 12, appErr.Details["requested_credits"])
	assert.Equal(t, 10, appErr.Details["max_credits"])
	assert.Empty(t, enrollments.enrolled, "no partial enrollment on rejection")
}

func TestEnrollmentAddAllowsFullLoadWithHealthyGPA(t *testing.T) {
	catalog, students := enrollmentFixtures(3.0)
	enrollments := &mockEnrollmentRepo{currentCredits: 6}
	svc := NewEnrollmentService(enrollments, catalog, students, &mockWindowGuard{}, nil, nil, nil)

	created, err := svc.Add(context.Background(), 100, EnrollRequest{CourseIDs: []int64{3, 5}})
	require.NoError(t, err)
	assert.Len(t, created, 2)
}

func TestEnrollmentAddBlockedOutsideWindow(t *testing.T) {
	catalog, students := enrollmentFixtures(3.0)
	enrollments := &mockEnrollmentRepo{}
	guard := &mockWindowGuard{err: appErrors.Clone(appErrors.ErrWindowClosed, "enrollment window has not opened yet")}
	svc := NewEnrollmentService(enrollments, catalog, students, guard, nil, nil, nil)

	_, err := svc.Add(context.Background(), 100, EnrollRequest{CourseIDs: []int64{3}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrWindowClosed.Code, appErrors.FromError(err).Code)
	assert.Empty(t, enrollments.enrolled, "window rejection must not mutate state")
}

func TestEnrollmentAddRejectsIneligibleCourses(t *testing.T) {
	catalog, students := enrollmentFixtures(3.0)
	enrollments := &mockEnrollmentRepo{}
	svc := NewEnrollmentService(enrollments, catalog, students, &mockWindowGuard{}, nil, nil, nil)

	// Course 1 is a semester-1 offering the student already passed.
	_, err := svc.Add(context.Background(), 100, EnrollRequest{CourseIDs: []int64{1, 3}})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPolicyViolation.Code, appErr.Code)
	assert.Equal(t, []int64{1}, appErr.Details["invalid_course_ids"])
	assert.Empty(t, enrollments.enrolled)
}

func TestEnrollmentAddValidatesPayload(t *testing.T) {
	catalog, students := enrollmentFixtures(3.0)
	svc := NewEnrollmentService(&mockEnrollmentRepo{}, catalog, students, &mockWindowGuard{}, nil, nil, nil)

	_, err := svc.Add(context.Background(), 100, EnrollRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentAddThenRemoveIsNeutral(t *testing.T) {
	catalog, students := enrollmentFixtures(3.0)
	enrollments := &mockEnrollmentRepo{}
	cache := &mockInvalidator{}
	svc := NewEnrollmentService(enrollments, catalog, students, &mockWindowGuard{}, cache, nil, nil)

	_, err := svc.Add(context.Background(), 100, EnrollRequest{CourseIDs: []int64{3}})
	require.NoError(t, err)

	withdrawn, err := svc.Remove(context.Background(), 100, EnrollRequest{CourseIDs: []int64{3}})
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, withdrawn)
	assert.Equal(t, enrollments.enrolled[0], enrollments.withdrawn[0])
	assert.Len(t, cache.patterns, 2, "both mutations invalidate the evaluation cache")
}

func TestEnrollmentRemoveBlockedOutsideWindow(t *testing.T) {
	catalog, students := enrollmentFixtures(3.0)
	enrollments := &mockEnrollmentRepo{}
	guard := &mockWindowGuard{err: appErrors.Clone(appErrors.ErrWindowClosed, "enrollment window has closed")}
	svc := NewEnrollmentService(enrollments, catalog, students, guard, nil, nil, nil)

	_, err := svc.Remove(context.Background(), 100, EnrollRequest{CourseIDs: []int64{3}})
	require.Error(t, err)
	assert.Empty(t, enrollments.withdrawn)
}
