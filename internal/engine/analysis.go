package engine

import (
	"math"
	"time"
)

// GPAAnalysis describes the trajectory of a student's GPA snapshots.
type GPAAnalysis struct {
	Current float64   `json:"current_gpa"`
	History []float64 `json:"gpa_history"`
	Trend   string    `json:"trend"`
	Status  string    `json:"status"`
}

// GPA trend and status labels.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// AnalyzeGPA classifies the resolved GPA and its trend over the last two
// snapshots.
func AnalyzeGPA(current float64, history []float64) GPAAnalysis {
	analysis := GPAAnalysis{Current: current, History: history, Trend: TrendStable}
	if len(history) >= 2 {
		last, prev := history[len(history)-1], history[len(history)-2]
		switch {
		case last > prev:
			analysis.Trend = TrendImproving
		case last < prev:
			analysis.Trend = TrendDeclining
		}
	}
	switch {
	case current >= 3.5:
		analysis.Status = "excellent"
	case current >= 3.0:
		analysis.Status = "very good"
	case current >= 2.5:
		analysis.Status = "good"
	case current >= 2.0:
		analysis.Status = "acceptable"
	default:
		analysis.Status = "at risk"
	}
	return analysis
}

// SubjectGrade is one settled course grade next to the course-wide average.
type SubjectGrade struct {
	Course       string  `json:"subject"`
	Grade        float64 `json:"grade"`
	ClassAverage float64 `json:"class_average"`
	Credits      int     `json:"credits"`
}

// SubjectPerformance is the per-course performance assessment.
type SubjectPerformance struct {
	Course       string  `json:"subject"`
	Grade        float64 `json:"grade"`
	ClassAverage float64 `json:"class_average"`
	Status       string  `json:"performance_status"`
	Difference   float64 `json:"difference_from_average"`
}

// AnalyzeSubjects grades each course on a 90-point scale against the class
// average.
func AnalyzeSubjects(grades []SubjectGrade) []SubjectPerformance {
	out := make([]SubjectPerformance, 0, len(grades))
	for _, g := range grades {
		status := "weak"
		switch {
		case g.Grade >= 81:
			status = "excellent"
		case g.Grade >= 72:
			status = "very good"
		case g.Grade >= 63:
			status = "good"
		case g.Grade >= 54:
			status = "acceptable"
		}
		out = append(out, SubjectPerformance{
			Course:       g.Course,
			Grade:        g.Grade,
			ClassAverage: g.ClassAverage,
			Status:       status,
			Difference:   math.Round((g.Grade-g.ClassAverage)*100) / 100,
		})
	}
	return out
}

// Absence thresholds.
const (
	criticalAbsencePct  = 25.0
	criticalRawAbsences = 3
	maxSemesterWeeks    = 14
)

// AbsenceAnalysis summarizes attendance across the student's courses.
type AbsenceAnalysis struct {
	TotalAbsences   int                `json:"total_absences"`
	CurrentWeek     int                `json:"current_week"`
	Percentages     map[string]float64 `json:"absence_percentages"`
	CriticalCourses []string           `json:"critical_subjects"`
	MeanRate        float64            `json:"average_absence_percentage"`
	Status          string             `json:"absence_status"`
}

// WeekOfSemester estimates the current teaching week from the calendar. The
// first term runs September through December, the second February through
// May; outside either window mid-semester is assumed. The result is clamped
// to 1..14.
func WeekOfSemester(now time.Time) int {
	month := int(now.Month())
	dayWeek := now.Day()/7 + 1
	if dayWeek > 4 {
		dayWeek = 4
	}

	var week int
	switch {
	case month >= 9 && month <= 12:
		week = (month-9)*4 + dayWeek
	case month >= 2 && month <= 5:
		week = (month-2)*4 + dayWeek
	default:
		week = 7
	}
	if week < 1 {
		week = 1
	}
	if week > maxSemesterWeeks {
		week = maxSemesterWeeks
	}
	return week
}

// AnalyzeAbsences computes per-course absence rates against the estimated
// lecture count so far. A course without lecture metadata is judged on the
// raw absence count instead.
func AnalyzeAbsences(absences map[string]int, lecturesPerWeek map[string]int, now time.Time) AbsenceAnalysis {
	analysis := AbsenceAnalysis{
		CurrentWeek: WeekOfSemester(now),
		Percentages: make(map[string]float64),
	}

	for course, count := range absences {
		analysis.TotalAbsences += count

		perWeek := lecturesPerWeek[course]
		if perWeek <= 0 {
			if count > criticalRawAbsences {
				analysis.CriticalCourses = append(analysis.CriticalCourses, course)
			}
			continue
		}

		lecturesSoFar := perWeek * analysis.CurrentWeek
		pct := 0.0
		if lecturesSoFar > 0 {
			pct = math.Round(float64(count)/float64(lecturesSoFar)*1000) / 10
		}
		analysis.Percentages[course] = pct
		if pct > criticalAbsencePct {
			analysis.CriticalCourses = append(analysis.CriticalCourses, course)
		}
	}

	if len(analysis.Percentages) > 0 {
		var sum float64
		for _, pct := range analysis.Percentages {
			sum += pct
		}
		analysis.MeanRate = sum / float64(len(analysis.Percentages))
	}

	switch {
	case analysis.MeanRate > 30:
		analysis.Status = "very high"
	case analysis.MeanRate > 20:
		analysis.Status = "high"
	case analysis.MeanRate > 10:
		analysis.Status = "moderate"
	default:
		analysis.Status = "normal"
	}
	return analysis
}
