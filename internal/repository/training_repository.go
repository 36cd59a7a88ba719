package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-advisory-api/internal/models"
)

// TrainingRepository assembles the population samples the risk classifier
// trains on.
type TrainingRepository struct {
	db *sqlx.DB
}

// NewTrainingRepository constructs a TrainingRepository.
func NewTrainingRepository(db *sqlx.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

// PopulationRows returns one unlabeled sample per student with a GPA snapshot
// for their current semester. Students whose snapshot is still null are
// skipped; the caller derives the at-risk label afterwards.
func (r *TrainingRepository) PopulationRows(ctx context.Context) ([]models.TrainingRow, error) {
	const query = `SELECT
CASE s.semester
  WHEN 1 THEN s.gpa1 WHEN 2 THEN s.gpa2 WHEN 3 THEN s.gpa3 WHEN 4 THEN s.gpa4
  WHEN 5 THEN s.gpa5 WHEN 6 THEN s.gpa6 WHEN 7 THEN s.gpa7 ELSE s.gpa8
END AS gpa,
COALESCE((SELECT COUNT(*) FROM attendances a WHERE a.student_id = s.id AND a.present = FALSE), 0) AS absence_count,
COALESCE((SELECT COUNT(*) FROM enrollments e WHERE e.student_id = s.id AND e.status = $1), 0) AS failed_courses
FROM students s
WHERE CASE s.semester
  WHEN 1 THEN s.gpa1 WHEN 2 THEN s.gpa2 WHEN 3 THEN s.gpa3 WHEN 4 THEN s.gpa4
  WHEN 5 THEN s.gpa5 WHEN 6 THEN s.gpa6 WHEN 7 THEN s.gpa7 ELSE s.gpa8
END IS NOT NULL
ORDER BY s.id`
	var rows []models.TrainingRow
	if err := r.db.SelectContext(ctx, &rows, query, models.EnrollmentStatusFailed); err != nil {
		return nil, fmt.Errorf("list training rows: %w", err)
	}
	return rows, nil
}
