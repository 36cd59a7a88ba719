package engine

import (
	"fmt"
	"time"

	"github.com/noah-isme/uni-advisory-api/internal/models"
)

// Credit caps derived from the GPA snapshot of the current semester.
const (
	creditCapDefault = 18
	creditCapReduced = 10
	lowGPAThreshold  = 2.0
)

// MaxCredits returns the maximum total credits a student may carry this
// period. A GPA below 2.0 reduces the cap to 10; an out-of-range semester or
// an unset snapshot fails open to the default of 18.
func MaxCredits(semester int, snapshots [models.MaxSemesters]*float64) int {
	if semester < 1 || semester > models.MaxSemesters {
		return creditCapDefault
	}
	gpa := snapshots[semester-1]
	if gpa == nil {
		return creditCapDefault
	}
	if *gpa < lowGPAThreshold {
		return creditCapReduced
	}
	return creditCapDefault
}

// CurrentPeriod derives the term number and named period from the calendar.
// Fall runs September through January (January still belongs to the previous
// year's Fall), Spring February through June, Summer July and August.
func CurrentPeriod(now time.Time) (int, string) {
	month := int(now.Month())
	year := now.Year()

	switch {
	case month >= 2 && month <= 6:
		return 2, fmt.Sprintf("Spring %d", year)
	case month >= 9 && month <= 12:
		return 1, fmt.Sprintf("Fall %d", year)
	case month == 1:
		return 1, fmt.Sprintf("Fall %d", year-1)
	default:
		return 3, fmt.Sprintf("Summer %d", year)
	}
}
