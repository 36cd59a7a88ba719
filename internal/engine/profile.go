package engine

import "github.com/noah-isme/uni-advisory-api/internal/models"

// Profile is the normalized advising view of one student. Completed holds
// courses with a PASSED enrollment; Failed holds FAILED ones. GPA is the
// snapshot for the current semester and stays nil when that semester has not
// been graded yet.
type Profile struct {
	StudentID    int64
	DepartmentID int64
	Semester     int
	GPA          *float64
	History      []float64
	Completed    map[int64]bool
	Failed       map[int64]bool
}

// BuildProfile derives a profile from a student row and the course-id sets of
// its passed and failed enrollments.
func BuildProfile(student *models.Student, completed, failed []int64) *Profile {
	p := &Profile{
		StudentID:    student.ID,
		DepartmentID: student.DepartmentID,
		Semester:     student.Semester,
		Completed:    make(map[int64]bool, len(completed)),
		Failed:       make(map[int64]bool, len(failed)),
	}
	snapshots := student.GPASnapshots()
	if student.Semester >= 1 && student.Semester <= models.MaxSemesters {
		p.GPA = snapshots[student.Semester-1]
	}
	limit := student.Semester
	if limit > models.MaxSemesters {
		limit = models.MaxSemesters
	}
	for i := 0; i < limit; i++ {
		if snapshots[i] != nil {
			p.History = append(p.History, *snapshots[i])
		}
	}
	for _, id := range completed {
		p.Completed[id] = true
	}
	for _, id := range failed {
		p.Failed[id] = true
	}
	return p
}

// ResolveGPA returns the snapshot for the current semester, falling back to
// the most recent prior non-nil snapshot and finally to 0.0. The risk engine
// uses this resolved value; eligibility and credit caps read the raw snapshot.
func ResolveGPA(snapshots [models.MaxSemesters]*float64, semester int) float64 {
	if semester >= 1 && semester <= models.MaxSemesters && snapshots[semester-1] != nil {
		return *snapshots[semester-1]
	}
	start := semester - 1
	if start > models.MaxSemesters {
		start = models.MaxSemesters
	}
	for i := start - 1; i >= 0; i-- {
		if i < models.MaxSemesters && snapshots[i] != nil {
			return *snapshots[i]
		}
	}
	return 0.0
}
