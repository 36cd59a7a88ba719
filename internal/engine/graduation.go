package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/noah-isme/uni-advisory-api/internal/models"
)

// maxRecommendedNext caps the remaining-course suggestions.
const maxRecommendedNext = 5

// maxMissingMandatoryNames caps the missing-course name list in the result.
const maxMissingMandatoryNames = 10

// RecommendedCourse is one remaining course suggested toward graduation.
type RecommendedCourse struct {
	ID        int64  `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Credits   int    `json:"credits"`
	Mandatory bool   `json:"mandatory"`
}

// GraduationResult summarizes progress against the department requirements.
type GraduationResult struct {
	CompletedCredits   int                 `json:"completed_credits"`
	RequiredCredits    int                 `json:"required_credits"`
	RemainingCredits   int                 `json:"remaining_credits"`
	CompletionPct      float64             `json:"completion_percentage"`
	MandatoryCompleted int                 `json:"completed_mandatory_courses"`
	MandatoryTotal     int                 `json:"total_mandatory_courses"`
	Eligible           bool                `json:"is_eligible"`
	Reasons            []string            `json:"reasons"`
	MissingMandatory   []string            `json:"incomplete_mandatory_courses,omitempty"`
	RecommendedNext    []RecommendedCourse `json:"recommended_next"`
}

// EvaluateGraduation computes graduation eligibility for a student profile.
// storedCredits is the student's cumulative counter; when absent or zero the
// credits of passed courses are summed from the catalog instead.
func EvaluateGraduation(profile *Profile, requiredCredits *int, storedCredits *int, catalog *Catalog) GraduationResult {
	result := GraduationResult{
		RequiredCredits: models.DefaultRequiredCredits,
		Reasons:         []string{},
	}
	if requiredCredits != nil && *requiredCredits > 0 {
		result.RequiredCredits = *requiredCredits
	}

	if storedCredits != nil && *storedCredits > 0 {
		result.CompletedCredits = *storedCredits
	} else {
		for id := range profile.Completed {
			result.CompletedCredits += catalog.Courses[id].Credits
		}
	}

	result.RemainingCredits = result.RequiredCredits - result.CompletedCredits
	if result.RemainingCredits < 0 {
		result.RemainingCredits = 0
	}
	if result.RequiredCredits > 0 {
		pct := float64(result.CompletedCredits) / float64(result.RequiredCredits) * 100
		result.CompletionPct = math.Round(pct*100) / 100
	}

	var missing []string
	for _, id := range catalog.Order {
		mandatory, linked := catalog.LinkedTo(id, profile.DepartmentID)
		if !linked || !mandatory {
			continue
		}
		result.MandatoryTotal++
		if profile.Completed[id] {
			result.MandatoryCompleted++
		} else {
			missing = append(missing, catalog.Courses[id].Name)
		}
	}

	result.Eligible = result.CompletedCredits >= result.RequiredCredits &&
		result.MandatoryCompleted == result.MandatoryTotal

	if result.CompletedCredits < result.RequiredCredits {
		result.Reasons = append(result.Reasons, fmt.Sprintf(
			"completed credits below %d (%d remaining)", result.RequiredCredits, result.RemainingCredits))
	}
	if result.MandatoryCompleted < result.MandatoryTotal {
		result.Reasons = append(result.Reasons, fmt.Sprintf(
			"%d mandatory courses not completed", result.MandatoryTotal-result.MandatoryCompleted))
	}
	if len(missing) > maxMissingMandatoryNames {
		missing = append(missing[:maxMissingMandatoryNames], "...")
	}
	result.MissingMandatory = missing

	result.RecommendedNext = recommendNext(profile, catalog)
	return result
}

// recommendNext picks up to five remaining department courses, mandatory ones
// first; within each group the catalog order is preserved.
func recommendNext(profile *Profile, catalog *Catalog) []RecommendedCourse {
	var remaining []RecommendedCourse
	for _, id := range catalog.Order {
		mandatory, linked := catalog.LinkedTo(id, profile.DepartmentID)
		if !linked || profile.Completed[id] {
			continue
		}
		info := catalog.Courses[id]
		remaining = append(remaining, RecommendedCourse{
			ID:        id,
			Code:      info.Code,
			Name:      info.Name,
			Credits:   info.Credits,
			Mandatory: mandatory,
		})
	}
	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].Mandatory && !remaining[j].Mandatory
	})
	if len(remaining) > maxRecommendedNext {
		remaining = remaining[:maxRecommendedNext]
	}
	return remaining
}
