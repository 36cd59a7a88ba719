package models

// CourseStatus marks whether a course is currently offered.
type CourseStatus string

const (
	CourseStatusActive   CourseStatus = "ACTIVE"
	CourseStatusInactive CourseStatus = "INACTIVE"
)

// Course is a catalog entry. PrereqCourseID is nil for courses without a
// prerequisite; the catalog models at most one direct prerequisite per course.
type Course struct {
	ID              int64        `db:"id" json:"id"`
	Name            string       `db:"name" json:"name"`
	Code            string       `db:"code" json:"code"`
	Description     string       `db:"description" json:"description"`
	Credits         int          `db:"credits" json:"credits"`
	Status          CourseStatus `db:"status" json:"status"`
	Semester        int          `db:"semester" json:"semester"`
	PrereqCourseID  *int64       `db:"prereq_course_id" json:"prereq_course_id,omitempty"`
	MaxSeats        int          `db:"max_seats" json:"max_seats"`
	EnrolledCount   int          `db:"enrolled_count" json:"enrolled_count"`
	LecturesPerWeek *int         `db:"lectures_per_week" json:"lectures_per_week,omitempty"`
}

// CourseDepartment links a course to a department. A course may belong to
// several departments with a different mandatory flag in each; mandatory-ness
// is always evaluated for a specific department.
type CourseDepartment struct {
	CourseID     int64 `db:"course_id" json:"course_id"`
	DepartmentID int64 `db:"department_id" json:"department_id"`
	Mandatory    bool  `db:"mandatory" json:"mandatory"`
}

// Department groups courses and carries the graduation credit threshold.
type Department struct {
	ID              int64  `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	RequiredCredits *int   `db:"required_credits" json:"required_credits,omitempty"`
}

// DefaultRequiredCredits applies when a department has no configured threshold.
const DefaultRequiredCredits = 136
