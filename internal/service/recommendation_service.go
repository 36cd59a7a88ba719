package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-advisory-api/internal/engine"
	appErrors "github.com/noah-isme/uni-advisory-api/pkg/errors"
)

// CourseRecommendation is one registerable course with its advising context.
type CourseRecommendation struct {
	ID        int64    `json:"id"`
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Credits   int      `json:"credits"`
	SeatsLeft int      `json:"seats_left"`
	Mandatory bool     `json:"mandatory"`
	Retake    bool     `json:"retake"`
	Score     *float64 `json:"similarity_score,omitempty"`
	Reason    string   `json:"reason"`
}

// RecommendationResult is the full advising answer for one student.
type RecommendationResult struct {
	StudentID  int64                  `json:"student_id"`
	Semester   int                    `json:"semester"`
	Period     string                 `json:"period"`
	MaxCredits int                    `json:"max_credits"`
	Mandatory  []CourseRecommendation `json:"mandatory_courses"`
	Electives  []CourseRecommendation `json:"elective_courses"`
}

// RecommendationService produces eligibility-filtered, similarity-ranked
// course recommendations.
type RecommendationService struct {
	courses  catalogRepository
	students studentRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewRecommendationService constructs a RecommendationService.
func NewRecommendationService(courses catalogRepository, students studentRepository, logger *zap.Logger) *RecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationService{courses: courses, students: students, logger: logger, now: time.Now}
}

// Recommend builds the recommendation set for a student. Mandatory courses
// keep catalog order; electives are ranked by similarity to the student's
// completed courses.
func (s *RecommendationService) Recommend(ctx context.Context, studentID int64) (*RecommendationResult, error) {
	snapshot, err := loadSnapshot(ctx, s.courses, s.students, studentID)
	if err != nil {
		return nil, err
	}

	eligibility, err := engine.Eligible(snapshot.profile, snapshot.catalog)
	if err != nil {
		return nil, appErrors.FromError(err)
	}

	descriptions := make(map[int64]string, len(snapshot.catalog.Courses))
	for id, info := range snapshot.catalog.Courses {
		descriptions[id] = info.Description
	}

	completed := make([]int64, 0, len(snapshot.profile.Completed))
	for _, id := range snapshot.catalog.Order {
		if snapshot.profile.Completed[id] {
			completed = append(completed, id)
		}
	}

	ranked := engine.RankElectives(eligibility.Elective, completed, descriptions)

	completedDescs := make([]string, 0, len(completed))
	for _, id := range completed {
		if desc := descriptions[id]; desc != "" {
			completedDescs = append(completedDescs, desc)
		}
	}

	_, period := engine.CurrentPeriod(s.now())
	result := &RecommendationResult{
		StudentID:  studentID,
		Semester:   snapshot.student.Semester,
		Period:     period,
		MaxCredits: engine.MaxCredits(snapshot.student.Semester, snapshot.student.GPASnapshots()),
		Mandatory:  make([]CourseRecommendation, 0, len(eligibility.Mandatory)),
		Electives:  make([]CourseRecommendation, 0, len(ranked)),
	}

	for _, id := range eligibility.Mandatory {
		rec := s.describe(snapshot, id, true)
		result.Mandatory = append(result.Mandatory, rec)
	}
	for _, id := range ranked {
		rec := s.describe(snapshot, id, false)
		if len(completedDescs) > 0 {
			score := engine.SimilarityScore(descriptions[id], completedDescs)
			rounded := math.Round(score*1000) / 1000
			rec.Score = &rounded
		}
		result.Electives = append(result.Electives, rec)
	}

	s.logger.Debug("recommendations computed",
		zap.Int64("student_id", studentID),
		zap.Int("mandatory", len(result.Mandatory)),
		zap.Int("electives", len(result.Electives)))
	return result, nil
}

func (s *RecommendationService) describe(snapshot *advisingSnapshot, id int64, mandatory bool) CourseRecommendation {
	info := snapshot.catalog.Courses[id]
	seatsLeft := info.MaxSeats - info.EnrolledCount
	if seatsLeft < 0 {
		seatsLeft = 0
	}
	rec := CourseRecommendation{
		ID:        id,
		Code:      info.Code,
		Name:      info.Name,
		Credits:   info.Credits,
		SeatsLeft: seatsLeft,
		Mandatory: mandatory,
		Retake:    snapshot.profile.Failed[id],
	}
	switch {
	case rec.Retake:
		rec.Reason = "retake of a failed mandatory course"
	case mandatory:
		rec.Reason = "mandatory for your department this semester"
	default:
		rec.Reason = "elective similar to courses you have completed"
	}
	return rec
}
