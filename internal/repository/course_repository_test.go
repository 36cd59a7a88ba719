package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-advisory-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCourseRepositoryListCourses(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "code", "description", "credits", "status", "semester", "prereq_course_id", "max_seats", "enrolled_count", "lectures_per_week"}).
		AddRow(1, "Calculus I", "MATH101", "limits and derivatives", 6, models.CourseStatusActive, 1, nil, 40, 12, 2).
		AddRow(2, "Calculus II", "MATH102", "integrals and series", 6, models.CourseStatusActive, 2, 1, 40, 8, 2)
	mock.ExpectQuery("SELECT id, name, code, .+ FROM courses ORDER BY id").WillReturnRows(rows)

	courses, err := repo.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Nil(t, courses[0].PrereqCourseID)
	require.NotNil(t, courses[1].PrereqCourseID)
	require.EqualValues(t, 1, *courses[1].PrereqCourseID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListCourseDepartments(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"course_id", "department_id", "mandatory"}).
		AddRow(1, 10, true).
		AddRow(1, 20, false)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT course_id, department_id, mandatory FROM course_departments ORDER BY course_id, department_id")).
		WillReturnRows(rows)

	links, err := repo.ListCourseDepartments(context.Background())
	require.NoError(t, err)
	require.Len(t, links, 2)
	require.True(t, links[0].Mandatory)
	require.False(t, links[1].Mandatory)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindDepartment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "required_credits"}).
		AddRow(10, "Computer Science", 140)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, required_credits FROM departments WHERE id = $1")).
		WithArgs(int64(10)).
		WillReturnRows(rows)

	dept, err := repo.FindDepartment(context.Background(), 10)
	require.NoError(t, err)
	require.NotNil(t, dept.RequiredCredits)
	require.Equal(t, 140, *dept.RequiredCredits)
	require.NoError(t, mock.ExpectationsWereMet())
}
