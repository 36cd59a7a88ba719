package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-advisory-api/internal/models"
)

func graduationFixtures() (*mockCatalogRepo, *mockStudentRepo) {
	required := 24
	catalog := &mockCatalogRepo{
		courses: []models.Course{
			{ID: 1, Name: "Core A", Code: "A", Credits: 12, Status: models.CourseStatusActive, Semester: 1},
			{ID: 2, Name: "Core B", Code: "B", Credits: 12, Status: models.CourseStatusActive, Semester: 2},
			{ID: 3, Name: "Elective C", Code: "C", Credits: 4, Status: models.CourseStatusActive, Semester: 2},
		},
		links: []models.CourseDepartment{
			{CourseID: 1, DepartmentID: 10, Mandatory: true},
			{CourseID: 2, DepartmentID: 10, Mandatory: true},
			{CourseID: 3, DepartmentID: 10, Mandatory: false},
		},
		dept: &models.Department{ID: 10, Name: "Computer Science", RequiredCredits: &required},
	}
	students := &mockStudentRepo{
		student: &models.Student{ID: 100, Name: "Ada", DepartmentID: 10, Semester: 3, GPA1: f64p(3.0)},
		passed:  []int64{1, 2},
	}
	return catalog, students
}

func TestGraduationEvaluateEligible(t *testing.T) {
	catalog, students := graduationFixtures()
	svc := NewGraduationService(catalog, students, nil)

	report, err := svc.Evaluate(context.Background(), 100)
	require.NoError(t, err)
	assert.True(t, report.Result.Eligible)
	assert.Equal(t, 24, report.Result.CompletedCredits)
	assert.Equal(t, 24, report.Result.RequiredCredits)
	assert.Equal(t, "Computer Science", report.Department)
}

func TestGraduationRenderFormats(t *testing.T) {
	catalog, students := graduationFixtures()
	svc := NewGraduationService(catalog, students, nil)

	pdf, contentType, err := svc.Render(context.Background(), 100, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	assert.NotEmpty(t, pdf)

	csvBytes, contentType, err := svc.Render(context.Background(), 100, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(csvBytes), "Completed credits")

	_, _, err = svc.Render(context.Background(), 100, "xml")
	require.Error(t, err)
}

func TestGraduationFallsBackToDefaultCredits(t *testing.T) {
	catalog, students := graduationFixtures()
	catalog.dept = nil
	svc := NewGraduationService(catalog, students, nil)

	report, err := svc.Evaluate(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultRequiredCredits, report.Result.RequiredCredits)
	assert.False(t, report.Result.Eligible)
}
