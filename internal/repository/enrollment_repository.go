package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-advisory-api/internal/models"
)

// EnrollmentRepository mutates and queries course enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListActive returns the student's in-progress enrollments that have not been
// withdrawn.
func (r *EnrollmentRepository) ListActive(ctx context.Context, studentID int64) ([]models.Enrollment, error) {
	const query = `SELECT id, student_id, course_id, period, semester_number, added_date, deleted_date, status, grade
FROM enrollments
WHERE student_id = $1 AND status = $2 AND deleted_date IS NULL
ORDER BY added_date`
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, studentID, models.EnrollmentStatusInProgress); err != nil {
		return nil, fmt.Errorf("list active enrollments: %w", err)
	}
	return enrollments, nil
}

// CurrentCredits sums the credits of the student's active enrollments in the
// named period.
func (r *EnrollmentRepository) CurrentCredits(ctx context.Context, studentID int64, period string) (int, error) {
	const query = `SELECT COALESCE(SUM(c.credits), 0)
FROM enrollments e
JOIN courses c ON c.id = e.course_id
WHERE e.student_id = $1 AND e.period = $2 AND e.status = $3 AND e.deleted_date IS NULL`
	var total int
	if err := r.db.GetContext(ctx, &total, query, studentID, period, models.EnrollmentStatusInProgress); err != nil {
		return 0, fmt.Errorf("sum current credits: %w", err)
	}
	return total, nil
}

// EnrollBatch inserts one in-progress enrollment per course inside a single
// transaction and bumps the seat counters. Courses the student already has an
// active enrollment for are skipped rather than duplicated.
func (r *EnrollmentRepository) EnrollBatch(ctx context.Context, studentID int64, courseIDs []int64, period string, semesterNumber int) ([]models.Enrollment, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin enroll tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	created := make([]models.Enrollment, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		var exists int
		err = tx.GetContext(ctx, &exists,
			`SELECT COUNT(*) FROM enrollments WHERE student_id = $1 AND course_id = $2 AND status = $3 AND deleted_date IS NULL`,
			studentID, courseID, models.EnrollmentStatusInProgress)
		if err != nil {
			return nil, fmt.Errorf("check active enrollment: %w", err)
		}
		if exists > 0 {
			continue
		}

		enrollment := models.Enrollment{
			ID:             uuid.NewString(),
			StudentID:      studentID,
			CourseID:       courseID,
			Period:         period,
			SemesterNumber: semesterNumber,
			AddedDate:      now,
			Status:         models.EnrollmentStatusInProgress,
		}
		if _, err = tx.NamedExecContext(ctx,
			`INSERT INTO enrollments (id, student_id, course_id, period, semester_number, added_date, status)
VALUES (:id, :student_id, :course_id, :period, :semester_number, :added_date, :status)`, &enrollment); err != nil {
			return nil, fmt.Errorf("insert enrollment: %w", err)
		}
		if _, err = tx.ExecContext(ctx,
			`UPDATE courses SET enrolled_count = enrolled_count + 1 WHERE id = $1`, courseID); err != nil {
			return nil, fmt.Errorf("increment enrolled count: %w", err)
		}
		created = append(created, enrollment)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit enroll tx: %w", err)
	}
	return created, nil
}

// WithdrawBatch marks the student's active enrollments for the given courses
// as withdrawn and releases the seats, all in one transaction. It returns the
// course ids actually withdrawn.
func (r *EnrollmentRepository) WithdrawBatch(ctx context.Context, studentID int64, courseIDs []int64) ([]int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin withdraw tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	var withdrawn []int64
	for _, courseID := range courseIDs {
		var res int64
		result, execErr := tx.ExecContext(ctx,
			`UPDATE enrollments SET status = $1, deleted_date = $2
WHERE student_id = $3 AND course_id = $4 AND status = $5 AND deleted_date IS NULL`,
			models.EnrollmentStatusWithdrawn, now, studentID, courseID, models.EnrollmentStatusInProgress)
		if execErr != nil {
			err = fmt.Errorf("withdraw enrollment: %w", execErr)
			return nil, err
		}
		if res, err = result.RowsAffected(); err != nil {
			return nil, fmt.Errorf("withdraw rows affected: %w", err)
		}
		if res == 0 {
			continue
		}
		if _, err = tx.ExecContext(ctx,
			`UPDATE courses SET enrolled_count = GREATEST(enrolled_count - 1, 0) WHERE id = $1`, courseID); err != nil {
			return nil, fmt.Errorf("decrement enrolled count: %w", err)
		}
		withdrawn = append(withdrawn, courseID)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit withdraw tx: %w", err)
	}
	return withdrawn, nil
}
