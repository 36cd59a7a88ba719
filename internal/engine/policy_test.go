package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/uni-advisory-api/internal/models"
)

func f64(v float64) *float64 { return &v }

func TestMaxCreditsReducedBelowThreshold(t *testing.T) {
	var snapshots [models.MaxSemesters]*float64
	snapshots[2] = f64(1.8)

	assert.Equal(t, 10, MaxCredits(3, snapshots))
}

func TestMaxCreditsDefaultAtOrAboveThreshold(t *testing.T) {
	var snapshots [models.MaxSemesters]*float64
	snapshots[2] = f64(2.0)
	assert.Equal(t, 18, MaxCredits(3, snapshots))

	snapshots[2] = f64(3.4)
	assert.Equal(t, 18, MaxCredits(3, snapshots))
}

func TestMaxCreditsFailsOpen(t *testing.T) {
	var snapshots [models.MaxSemesters]*float64

	assert.Equal(t, 18, MaxCredits(3, snapshots), "unset snapshot keeps the default cap")
	assert.Equal(t, 18, MaxCredits(0, snapshots))
	assert.Equal(t, 18, MaxCredits(9, snapshots))
}

func TestCurrentPeriod(t *testing.T) {
	cases := []struct {
		date     string
		semester int
		period   string
	}{
		{"2026-10-15", 1, "Fall 2026"},
		{"2026-12-31", 1, "Fall 2026"},
		{"2027-01-10", 1, "Fall 2026"},
		{"2026-02-01", 2, "Spring 2026"},
		{"2026-06-30", 2, "Spring 2026"},
		{"2026-07-20", 3, "Summer 2026"},
		{"2026-08-05", 3, "Summer 2026"},
	}
	for _, tc := range cases {
		now, err := time.Parse("2006-01-02", tc.date)
		assert.NoError(t, err)
		semester, period := CurrentPeriod(now)
		assert.Equal(t, tc.semester, semester, tc.date)
		assert.Equal(t, tc.period, period, tc.date)
	}
}

func TestResolveGPAFallsBackToPriorSnapshot(t *testing.T) {
	var snapshots [models.MaxSemesters]*float64
	snapshots[0] = f64(2.5)
	snapshots[1] = f64(3.1)

	assert.Equal(t, 3.1, ResolveGPA(snapshots, 2))
	assert.Equal(t, 3.1, ResolveGPA(snapshots, 4), "semesters 3..4 ungraded, latest prior wins")
	assert.Equal(t, 3.1, ResolveGPA(snapshots, 12))
	assert.Equal(t, 0.0, ResolveGPA([models.MaxSemesters]*float64{}, 3))
}
