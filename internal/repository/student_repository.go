package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-advisory-api/internal/models"
)

// StudentRepository reads student records and their academic evidence.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID fetches a student row by id.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	const query = `SELECT id, name, department_id, semester, credits_completed, status,
gpa1, gpa2, gpa3, gpa4, gpa5, gpa6, gpa7, gpa8
FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// CourseIDsByStatus returns the course ids of the student's enrollments in the
// given terminal status.
func (r *StudentRepository) CourseIDsByStatus(ctx context.Context, studentID int64, status models.EnrollmentStatus) ([]int64, error) {
	const query = `SELECT course_id FROM enrollments WHERE student_id = $1 AND status = $2 ORDER BY course_id`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, studentID, status); err != nil {
		return nil, fmt.Errorf("list %s course ids: %w", status, err)
	}
	return ids, nil
}

// CountFailed returns the number of failed enrollments for the student.
func (r *StudentRepository) CountFailed(ctx context.Context, studentID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM enrollments WHERE student_id = $1 AND status = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, studentID, models.EnrollmentStatusFailed); err != nil {
		return 0, fmt.Errorf("count failed enrollments: %w", err)
	}
	return count, nil
}

// AbsenceRow aggregates one course's absences for the student.
type AbsenceRow struct {
	CourseName      string `db:"course_name"`
	Absences        int    `db:"absences"`
	LecturesPerWeek *int   `db:"lectures_per_week"`
}

// ListAbsences counts per-course absences for the student's in-progress
// courses.
func (r *StudentRepository) ListAbsences(ctx context.Context, studentID int64) ([]AbsenceRow, error) {
	const query = `SELECT c.name AS course_name, COUNT(a.id) AS absences, c.lectures_per_week
FROM attendances a
JOIN courses c ON c.id = a.course_id
WHERE a.student_id = $1 AND a.present = FALSE
GROUP BY c.id, c.name, c.lectures_per_week
ORDER BY c.name`
	var rows []AbsenceRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}
	return rows, nil
}

// SubjectGradeRow is one settled grade next to the course-wide average.
type SubjectGradeRow struct {
	CourseName   string  `db:"course_name"`
	Grade        float64 `db:"grade"`
	ClassAverage float64 `db:"class_average"`
	Credits      int     `db:"credits"`
}

// ListSubjectGrades returns the student's graded enrollments with the average
// grade every student earned in the same course.
func (r *StudentRepository) ListSubjectGrades(ctx context.Context, studentID int64) ([]SubjectGradeRow, error) {
	const query = `SELECT c.name AS course_name, e.grade, c.credits,
COALESCE((SELECT AVG(e2.grade) FROM enrollments e2 WHERE e2.course_id = e.course_id AND e2.grade IS NOT NULL), 0) AS class_average
FROM enrollments e
JOIN courses c ON c.id = e.course_id
WHERE e.student_id = $1 AND e.grade IS NOT NULL
ORDER BY c.name`
	var rows []SubjectGradeRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list subject grades: %w", err)
	}
	return rows, nil
}
