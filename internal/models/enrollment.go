package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses. PASSED and FAILED are terminal for the policy
// engine; grading is settled elsewhere.
const (
	EnrollmentStatusInProgress EnrollmentStatus = "IN_PROGRESS"
	EnrollmentStatusPassed     EnrollmentStatus = "PASSED"
	EnrollmentStatusFailed     EnrollmentStatus = "FAILED"
	EnrollmentStatusWithdrawn  EnrollmentStatus = "WITHDRAWN"
)

// Enrollment links a student and a course for a named semester period.
// An enrollment is active while DeletedDate is nil.
type Enrollment struct {
	ID             string           `db:"id" json:"id"`
	StudentID      int64            `db:"student_id" json:"student_id"`
	CourseID       int64            `db:"course_id" json:"course_id"`
	Period         string           `db:"period" json:"period"`
	SemesterNumber int              `db:"semester_number" json:"semester_number"`
	AddedDate      time.Time        `db:"added_date" json:"added_date"`
	DeletedDate    *time.Time       `db:"deleted_date" json:"deleted_date,omitempty"`
	Status         EnrollmentStatus `db:"status" json:"status"`
	Grade          *float64         `db:"grade" json:"grade,omitempty"`
}

// EnrollmentWindow gates enrollment mutations. Both bounds are always written
// together; absence of the record means enrollment is disabled.
type EnrollmentWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether ts falls inside the window.
func (w EnrollmentWindow) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && !ts.After(w.End)
}

// WindowState describes the current phase of the enrollment window.
type WindowState string

const (
	WindowStateDisabled WindowState = "DISABLED"
	WindowStatePending  WindowState = "PENDING"
	WindowStateOpen     WindowState = "OPEN"
	WindowStateClosed   WindowState = "CLOSED"
)

// WindowStatus is the public shape of the window-status endpoint.
type WindowStatus struct {
	State     WindowState       `json:"state"`
	Window    *EnrollmentWindow `json:"window,omitempty"`
	StartsIn  string            `json:"starts_in,omitempty"`
	Remaining string            `json:"remaining,omitempty"`
	EndedAgo  string            `json:"ended_ago,omitempty"`
}
