package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-advisory-api/internal/models"
)

// CourseRepository reads the course catalog.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListCourses returns the full catalog ordered by id so snapshots iterate
// deterministically.
func (r *CourseRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, name, code, description, credits, status, semester, prereq_course_id, max_seats, enrolled_count, lectures_per_week
FROM courses ORDER BY id`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListCourseDepartments returns every course/department link with its
// mandatory flag.
func (r *CourseRepository) ListCourseDepartments(ctx context.Context) ([]models.CourseDepartment, error) {
	const query = `SELECT course_id, department_id, mandatory FROM course_departments ORDER BY course_id, department_id`
	var links []models.CourseDepartment
	if err := r.db.SelectContext(ctx, &links, query); err != nil {
		return nil, fmt.Errorf("list course departments: %w", err)
	}
	return links, nil
}

// FindCourse fetches one catalog entry.
func (r *CourseRepository) FindCourse(ctx context.Context, id int64) (*models.Course, error) {
	const query = `SELECT id, name, code, description, credits, status, semester, prereq_course_id, max_seats, enrolled_count, lectures_per_week
FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// FindDepartment fetches a department with its graduation threshold.
func (r *CourseRepository) FindDepartment(ctx context.Context, id int64) (*models.Department, error) {
	const query = `SELECT id, name, required_credits FROM departments WHERE id = $1`
	var dept models.Department
	if err := r.db.GetContext(ctx, &dept, query, id); err != nil {
		return nil, err
	}
	return &dept, nil
}
