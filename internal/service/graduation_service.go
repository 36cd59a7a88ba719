package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-advisory-api/internal/engine"
	appErrors "github.com/noah-isme/uni-advisory-api/pkg/errors"
	"github.com/noah-isme/uni-advisory-api/pkg/export"
)

// Report formats for the downloadable graduation report.
const (
	ReportFormatPDF = "pdf"
	ReportFormatCSV = "csv"
)

// GraduationReport pairs the evaluation with the student identity for
// rendering and API responses.
type GraduationReport struct {
	StudentID   int64                   `json:"student_id"`
	StudentName string                  `json:"student_name"`
	Department  string                  `json:"department"`
	Result      engine.GraduationResult `json:"result"`
}

// GraduationService evaluates graduation progress and renders reports.
type GraduationService struct {
	courses  catalogRepository
	students studentRepository
	pdf      *export.PDFExporter
	csv      *export.CSVExporter
	logger   *zap.Logger
}

// NewGraduationService constructs a GraduationService.
func NewGraduationService(courses catalogRepository, students studentRepository, logger *zap.Logger) *GraduationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraduationService{
		courses:  courses,
		students: students,
		pdf:      export.NewPDFExporter(),
		csv:      export.NewCSVExporter(),
		logger:   logger,
	}
}

// Evaluate computes graduation eligibility for the student.
func (s *GraduationService) Evaluate(ctx context.Context, studentID int64) (*GraduationReport, error) {
	snapshot, err := loadSnapshot(ctx, s.courses, s.students, studentID)
	if err != nil {
		return nil, err
	}

	var requiredCredits *int
	departmentName := ""
	if dept, err := s.courses.FindDepartment(ctx, snapshot.student.DepartmentID); err == nil {
		requiredCredits = dept.RequiredCredits
		departmentName = dept.Name
	} else {
		s.logger.Warn("failed to load department, using default credit requirement",
			zap.Int64("department_id", snapshot.student.DepartmentID),
			zap.Error(err))
	}

	result := engine.EvaluateGraduation(snapshot.profile, requiredCredits, snapshot.student.CreditsCompleted, snapshot.catalog)
	return &GraduationReport{
		StudentID:   studentID,
		StudentName: snapshot.student.Name,
		Department:  departmentName,
		Result:      result,
	}, nil
}

// Render produces the downloadable report in the requested format.
func (s *GraduationService) Render(ctx context.Context, studentID int64, format string) ([]byte, string, error) {
	report, err := s.Evaluate(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{
		Summary: [][2]string{
			{"Student", report.StudentName},
			{"Department", report.Department},
			{"Completed credits", strconv.Itoa(report.Result.CompletedCredits)},
			{"Required credits", strconv.Itoa(report.Result.RequiredCredits)},
			{"Completion", fmt.Sprintf("%.2f%%", report.Result.CompletionPct)},
			{"Eligible", strconv.FormatBool(report.Result.Eligible)},
		},
		Headers: []string{"Code", "Course", "Credits", "Mandatory"},
	}
	for _, rec := range report.Result.RecommendedNext {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Code":      rec.Code,
			"Course":    rec.Name,
			"Credits":   strconv.Itoa(rec.Credits),
			"Mandatory": strconv.FormatBool(rec.Mandatory),
		})
	}

	switch format {
	case ReportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return payload, "text/csv", nil
	case ReportFormatPDF, "":
		payload, err := s.pdf.Render(dataset, "Graduation Progress Report")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be pdf or csv")
	}
}
