package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-advisory-api/internal/engine"
	"github.com/noah-isme/uni-advisory-api/internal/models"
	"github.com/noah-isme/uni-advisory-api/internal/repository"
	"github.com/noah-isme/uni-advisory-api/pkg/config"
	appErrors "github.com/noah-isme/uni-advisory-api/pkg/errors"
)

const trainingCacheKey = "evaluation:training"

type evidenceRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	CountFailed(ctx context.Context, studentID int64) (int, error)
	ListAbsences(ctx context.Context, studentID int64) ([]repository.AbsenceRow, error)
	ListSubjectGrades(ctx context.Context, studentID int64) ([]repository.SubjectGradeRow, error)
}

type trainingSource interface {
	PopulationRows(ctx context.Context) ([]models.TrainingRow, error)
}

type evaluationCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// EvaluationReport is the full academic evaluation for one student.
type EvaluationReport struct {
	StudentID       int64                       `json:"student_id"`
	GeneratedAt     time.Time                   `json:"generated_at"`
	GPA             engine.GPAAnalysis          `json:"gpa_analysis"`
	Subjects        []engine.SubjectPerformance `json:"subject_performance"`
	Absences        engine.AbsenceAnalysis      `json:"absence_analysis"`
	Risk            engine.RiskResult           `json:"risk_assessment"`
	Recommendations []string                    `json:"recommendations"`
}

// EvaluationService assembles the evaluation report: GPA trajectory, subject
// performance, attendance and the risk assessment. Reports are cached; any
// enrollment mutation invalidates the student's entry.
type EvaluationService struct {
	students evidenceRepository
	training trainingSource
	cache    evaluationCache
	metrics  *MetricsService
	cfg      config.AdvisoryConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewEvaluationService constructs an EvaluationService.
func NewEvaluationService(students evidenceRepository, training trainingSource, cache evaluationCache, metrics *MetricsService, cfg config.AdvisoryConfig, logger *zap.Logger) *EvaluationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationService{
		students: students,
		training: training,
		cache:    cache,
		metrics:  metrics,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Evaluate returns the cached report when fresh, otherwise computes and
// caches a new one.
func (s *EvaluationService) Evaluate(ctx context.Context, studentID int64) (*EvaluationReport, error) {
	key := fmt.Sprintf("evaluation:report:%d", studentID)
	if s.cache != nil {
		var cached EvaluationReport
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			s.metrics.RecordCacheOperation(true)
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("evaluation cache read failed", zap.Error(err))
		}
		s.metrics.RecordCacheOperation(false)
	}

	report, err := s.compute(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report, s.cfg.EvaluationCacheTTL); err != nil {
			s.logger.Warn("evaluation cache write failed", zap.Error(err))
		}
	}
	return report, nil
}

func (s *EvaluationService) compute(ctx context.Context, studentID int64) (*EvaluationReport, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	failed, err := s.students.CountFailed(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count failed courses")
	}

	absenceRows, err := s.students.ListAbsences(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load absences")
	}
	absences := make(map[string]int, len(absenceRows))
	lectures := make(map[string]int, len(absenceRows))
	for _, row := range absenceRows {
		absences[row.CourseName] = row.Absences
		if row.LecturesPerWeek != nil {
			lectures[row.CourseName] = *row.LecturesPerWeek
		}
	}

	gradeRows, err := s.students.ListSubjectGrades(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject grades")
	}
	grades := make([]engine.SubjectGrade, 0, len(gradeRows))
	for _, row := range gradeRows {
		grades = append(grades, engine.SubjectGrade{
			Course:       row.CourseName,
			Grade:        row.Grade,
			ClassAverage: row.ClassAverage,
			Credits:      row.Credits,
		})
	}

	now := s.now()
	snapshots := student.GPASnapshots()
	gpa := engine.ResolveGPA(snapshots, student.Semester)
	history := make([]float64, 0, models.MaxSemesters)
	for _, snapshot := range snapshots {
		if snapshot != nil {
			history = append(history, *snapshot)
		}
	}

	risk := engine.AssessRisk(engine.RiskInput{
		GPA:             gpa,
		Absences:        absences,
		LecturesPerWeek: lectures,
		FailedCourses:   failed,
		Now:             now,
	}, s.trainingRows(ctx), engine.RiskOptions{
		Seed:            s.cfg.RiskSeed,
		Trees:           s.cfg.RiskTrees,
		MaxDepth:        s.cfg.RiskMaxDepth,
		MinTrainingRows: s.cfg.MinTrainingRows,
	})
	s.metrics.RecordRiskAssessment(risk.Mode)
	if risk.Degraded {
		s.logger.Warn("risk classifier degraded to rule-based estimator",
			zap.Int64("student_id", studentID))
	}

	absenceAnalysis := engine.AnalyzeAbsences(absences, lectures, now)
	report := &EvaluationReport{
		StudentID:       studentID,
		GeneratedAt:     now.UTC(),
		GPA:             engine.AnalyzeGPA(gpa, history),
		Subjects:        engine.AnalyzeSubjects(grades),
		Absences:        absenceAnalysis,
		Risk:            risk,
		Recommendations: buildRecommendations(gpa, failed, absenceAnalysis, risk),
	}
	return report, nil
}

// trainingRows loads the classifier population, served from cache when
// possible. Failures degrade to an empty population, which forces the
// rule-based estimator.
func (s *EvaluationService) trainingRows(ctx context.Context) []models.TrainingRow {
	if s.cache != nil {
		var cached []models.TrainingRow
		if err := s.cache.Get(ctx, trainingCacheKey, &cached); err == nil {
			return cached
		}
	}

	rows, err := s.training.PopulationRows(ctx)
	if err != nil {
		s.logger.Warn("failed to load training population", zap.Error(err))
		return nil
	}
	rows = engine.LabelTrainingRows(rows)

	if s.cache != nil {
		if err := s.cache.Set(ctx, trainingCacheKey, rows, s.cfg.TrainingCacheTTL); err != nil {
			s.logger.Warn("failed to cache training population", zap.Error(err))
		}
	}
	return rows
}

func buildRecommendations(gpa float64, failed int, absences engine.AbsenceAnalysis, risk engine.RiskResult) []string {
	recs := []string{}
	if gpa < 2.0 {
		recs = append(recs, "Schedule a meeting with your academic advisor to plan GPA recovery.")
		recs = append(recs, "Consider reducing your course load this semester.")
	}
	if failed > 0 {
		recs = append(recs, "Prioritize retaking failed mandatory courses before new electives.")
	}
	if len(absences.CriticalCourses) > 0 {
		recs = append(recs, fmt.Sprintf("Attendance is critical in %d course(s); further absences may bar you from exams.", len(absences.CriticalCourses)))
	}
	if risk.Status == engine.RiskStatusAtRisk {
		recs = append(recs, "You are flagged as academically at risk; support services are available through the advising office.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Keep up the good work; no corrective action is needed.")
	}
	return recs
}
