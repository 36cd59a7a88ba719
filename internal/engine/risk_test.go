package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-advisory-api/internal/models"
)

func riskInput(gpa float64, failed int, absences map[string]int) RiskInput {
	now, _ := time.Parse("2006-01-02", "2026-10-10")
	lectures := make(map[string]int, len(absences))
	for course := range absences {
		lectures[course] = 2
	}
	return RiskInput{
		GPA:             gpa,
		Absences:        absences,
		LecturesPerWeek: lectures,
		FailedCourses:   failed,
		Now:             now,
	}
}

func trainingPopulation(n int) []models.TrainingRow {
	rows := make([]models.TrainingRow, 0, n)
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			rows = append(rows, models.TrainingRow{GPA: 3.4, AbsenceCount: 2, FailedCourses: 0})
		} else {
			rows = append(rows, models.TrainingRow{GPA: 1.4, AbsenceCount: 20, FailedCourses: 4})
		}
	}
	return LabelTrainingRows(rows)
}

func TestRuleBasedProbabilityByFactorCount(t *testing.T) {
	cases := []struct {
		name        string
		input       RiskInput
		probability float64
		status      string
	}{
		{"no factors", riskInput(3.0, 0, nil), 0.1, RiskStatusGood},
		{"low gpa only", riskInput(1.5, 0, nil), 0.4, RiskStatusGood},
		{"two factors", riskInput(1.5, 3, nil), 0.7, RiskStatusAtRisk},
		{"all factors", riskInput(1.5, 3, map[string]int{"Calculus": 8}), 0.9, RiskStatusAtRisk},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := AssessRisk(tc.input, nil, RiskOptions{})
			assert.Equal(t, RiskModeRuleBased, result.Mode)
			assert.Equal(t, tc.probability, result.Probability)
			assert.Equal(t, tc.status, result.Status)
		})
	}
}

func TestRuleBasedImportanceShiftsForSingleFactor(t *testing.T) {
	lowGPA := AssessRisk(riskInput(1.5, 0, nil), nil, RiskOptions{})
	assert.Equal(t, 0.7, lowGPA.FeatureImportance["gpa"])

	failed := AssessRisk(riskInput(3.0, 3, nil), nil, RiskOptions{})
	assert.Equal(t, 0.4, failed.FeatureImportance["failed_courses"])

	// 8 absences of 12 lectures in week 6 is a 66.7% rate.
	absent := AssessRisk(riskInput(3.0, 0, map[string]int{"Calculus": 8}), nil, RiskOptions{})
	assert.Equal(t, 0.3, absent.FeatureImportance["absence"])

	none := AssessRisk(riskInput(3.0, 0, nil), nil, RiskOptions{})
	assert.Equal(t, 0.6, none.FeatureImportance["gpa"])
	assert.Equal(t, 0.25, none.FeatureImportance["failed_courses"])
}

func TestLabelTrainingRows(t *testing.T) {
	rows := LabelTrainingRows([]models.TrainingRow{
		{GPA: 1.9, AbsenceCount: 0, FailedCourses: 0},
		{GPA: 3.0, AbsenceCount: 16, FailedCourses: 0},
		{GPA: 3.0, AbsenceCount: 0, FailedCourses: 3},
		{GPA: 2.0, AbsenceCount: 15, FailedCourses: 2},
	})

	assert.True(t, rows[0].AtRisk)
	assert.True(t, rows[1].AtRisk)
	assert.True(t, rows[2].AtRisk)
	assert.False(t, rows[3].AtRisk, "thresholds are strict")
}

func TestAssessRiskUsesClassifierWithEnoughRows(t *testing.T) {
	training := trainingPopulation(20)
	opts := RiskOptions{Seed: 42}

	result := AssessRisk(riskInput(1.4, 4, map[string]int{"Calculus": 10, "Physics": 10}), training, opts)
	require.Equal(t, RiskModeClassifier, result.Mode)
	assert.Equal(t, RiskStatusAtRisk, result.Status)
	assert.Greater(t, result.Probability, 0.5)

	safe := AssessRisk(riskInput(3.4, 0, map[string]int{"Calculus": 1}), training, opts)
	require.Equal(t, RiskModeClassifier, safe.Mode)
	assert.Equal(t, RiskStatusGood, safe.Status)

	var importanceSum float64
	for _, v := range result.FeatureImportance {
		importanceSum += v
	}
	assert.InDelta(t, 1.0, importanceSum, 0.0001)
}

func TestAssessRiskDeterministicForFixedSeed(t *testing.T) {
	training := trainingPopulation(30)
	input := riskInput(2.2, 1, map[string]int{"Calculus": 3})

	first := AssessRisk(input, training, RiskOptions{Seed: 42})
	second := AssessRisk(input, training, RiskOptions{Seed: 42})

	assert.Equal(t, first, second)
}

func TestAssessRiskFallsBackBelowMinimumRows(t *testing.T) {
	training := trainingPopulation(9)

	result := AssessRisk(riskInput(1.5, 0, nil), training, RiskOptions{})
	assert.Equal(t, RiskModeRuleBased, result.Mode)
	assert.False(t, result.Degraded, "too few rows is not a degradation")
}

func TestAssessRiskDegradesOnSingleClassPopulation(t *testing.T) {
	rows := make([]models.TrainingRow, 12)
	for i := range rows {
		rows[i] = models.TrainingRow{GPA: 3.5, AbsenceCount: 0, FailedCourses: 0}
	}
	training := LabelTrainingRows(rows)

	result := AssessRisk(riskInput(1.5, 0, nil), training, RiskOptions{})
	assert.Equal(t, RiskModeRuleBased, result.Mode)
	assert.True(t, result.Degraded)
	assert.Equal(t, 0.4, result.Probability)
}

func TestTrainForestRejectsDegenerateData(t *testing.T) {
	_, err := trainForest(nil, nil, forestConfig{trees: 10, maxDepth: 3, seed: 1})
	assert.Error(t, err)

	features := [][]float64{{1, 0, 0}, {2, 0, 0}}
	_, err = trainForest(features, []int{1, 1}, forestConfig{trees: 10, maxDepth: 3, seed: 1})
	assert.Error(t, err)
}
