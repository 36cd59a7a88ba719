package engine

import (
	"time"

	"github.com/noah-isme/uni-advisory-api/internal/models"
)

// Risk status labels. Status is "at risk" exactly when the probability
// exceeds 0.5, in both estimator modes.
const (
	RiskStatusAtRisk = "at risk"
	RiskStatusGood   = "good standing"
)

// Estimator modes reported on the result.
const (
	RiskModeRuleBased  = "rule_based"
	RiskModeClassifier = "classifier"
)

// Risk factor thresholds shared by both modes and by training-label
// derivation.
const (
	riskGPAThreshold         = 2.0
	riskFailedThreshold      = 2
	riskMeanAbsencePct       = 20.0
	riskAbsenceCountThreshold = 15
)

// RiskOptions configures the classifier path. The seed is explicit so test
// suites can assert determinism.
type RiskOptions struct {
	Seed            int64
	Trees           int
	MaxDepth        int
	MinTrainingRows int
}

func (o RiskOptions) withDefaults() RiskOptions {
	if o.Trees <= 0 {
		o.Trees = 100
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = 5
	}
	if o.MinTrainingRows <= 0 {
		o.MinTrainingRows = 10
	}
	return o
}

// RiskInput is the per-student evidence the assessment runs on. GPA must
// already be resolved (current snapshot with fallback to the latest prior
// one).
type RiskInput struct {
	GPA             float64
	Absences        map[string]int
	LecturesPerWeek map[string]int
	FailedCourses   int
	Now             time.Time
}

// RiskFactors records which rule-based factors fired.
type RiskFactors struct {
	LowGPA        bool `json:"low_gpa"`
	HighAbsence   bool `json:"high_absence"`
	FailedCourses bool `json:"failed_courses"`
}

// RiskResult is the outcome of one assessment. Degraded marks a classifier
// failure that fell back to the rule-based estimator; it never surfaces as an
// error.
type RiskResult struct {
	Status            string             `json:"status"`
	Probability       float64            `json:"probability"`
	Factors           RiskFactors        `json:"factors"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
	Mode              string             `json:"mode"`
	Degraded          bool               `json:"-"`
}

// LabelTrainingRows derives the at-risk label for each population sample
// using the same thresholds as the rule-based estimator.
func LabelTrainingRows(rows []models.TrainingRow) []models.TrainingRow {
	for i := range rows {
		rows[i].AtRisk = rows[i].GPA < riskGPAThreshold ||
			rows[i].FailedCourses > riskFailedThreshold ||
			rows[i].AbsenceCount > riskAbsenceCountThreshold
	}
	return rows
}

// AssessRisk blends rule-based heuristics with a trained classifier. The
// classifier is used only when the population supplies enough labeled rows;
// any training or prediction failure falls back to the rule-based path with
// identical thresholds.
func AssessRisk(input RiskInput, training []models.TrainingRow, opts RiskOptions) RiskResult {
	opts = opts.withDefaults()

	if len(training) < opts.MinTrainingRows {
		return ruleBasedRisk(input)
	}

	result, err := classifierRisk(input, training, opts)
	if err != nil {
		fallback := ruleBasedRisk(input)
		fallback.Degraded = true
		return fallback
	}
	return result
}

func ruleBasedRisk(input RiskInput) RiskResult {
	absence := AnalyzeAbsences(input.Absences, input.LecturesPerWeek, input.Now)

	factors := RiskFactors{
		LowGPA:        input.GPA < riskGPAThreshold,
		HighAbsence:   absence.MeanRate > riskMeanAbsencePct,
		FailedCourses: input.FailedCourses > riskFailedThreshold,
	}

	count := 0
	for _, fired := range []bool{factors.LowGPA, factors.HighAbsence, factors.FailedCourses} {
		if fired {
			count++
		}
	}

	probability := map[int]float64{0: 0.1, 1: 0.4, 2: 0.7, 3: 0.9}[count]

	return RiskResult{
		Status:            statusFor(probability),
		Probability:       probability,
		Factors:           factors,
		FeatureImportance: fixedImportance(factors),
		Mode:              RiskModeRuleBased,
	}
}

// fixedImportance shifts emphasis toward the single firing factor; when none
// or several fire the GPA-dominant default applies.
func fixedImportance(factors RiskFactors) map[string]float64 {
	count := 0
	for _, fired := range []bool{factors.LowGPA, factors.HighAbsence, factors.FailedCourses} {
		if fired {
			count++
		}
	}
	if count == 1 {
		switch {
		case factors.LowGPA:
			return map[string]float64{"gpa": 0.7, "failed_courses": 0.2, "absence": 0.1}
		case factors.HighAbsence:
			return map[string]float64{"gpa": 0.5, "failed_courses": 0.2, "absence": 0.3}
		case factors.FailedCourses:
			return map[string]float64{"gpa": 0.5, "failed_courses": 0.4, "absence": 0.1}
		}
	}
	return map[string]float64{"gpa": 0.6, "failed_courses": 0.25, "absence": 0.15}
}

func classifierRisk(input RiskInput, training []models.TrainingRow, opts RiskOptions) (RiskResult, error) {
	features := make([][]float64, len(training))
	labels := make([]int, len(training))
	for i, row := range training {
		features[i] = []float64{row.GPA, float64(row.AbsenceCount), float64(row.FailedCourses)}
		if row.AtRisk {
			labels[i] = 1
		}
	}

	forest, err := trainForest(features, labels, forestConfig{
		trees:    opts.Trees,
		maxDepth: opts.MaxDepth,
		seed:     opts.Seed,
	})
	if err != nil {
		return RiskResult{}, err
	}

	totalAbsences := 0
	for _, count := range input.Absences {
		totalAbsences += count
	}

	probability := forest.predictProba([]float64{input.GPA, float64(totalAbsences), float64(input.FailedCourses)})

	importances := forest.featureImportances()
	return RiskResult{
		Status:      statusFor(probability),
		Probability: probability,
		Factors: RiskFactors{
			LowGPA:        input.GPA < riskGPAThreshold,
			HighAbsence:   totalAbsences > riskAbsenceCountThreshold,
			FailedCourses: input.FailedCourses > riskFailedThreshold,
		},
		FeatureImportance: map[string]float64{
			"gpa":            importances[0],
			"absence":        importances[1],
			"failed_courses": importances[2],
		},
		Mode: RiskModeClassifier,
	}, nil
}

func statusFor(probability float64) string {
	if probability > 0.5 {
		return RiskStatusAtRisk
	}
	return RiskStatusGood
}
