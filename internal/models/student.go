package models

// MaxSemesters bounds per-semester GPA snapshots.
const MaxSemesters = 8

// Student carries the advising view of a student. GPA holds one snapshot per
// semester; entries are nil until the semester is graded.
type Student struct {
	ID               int64        `db:"id" json:"id"`
	Name             string       `db:"name" json:"name"`
	DepartmentID     int64        `db:"department_id" json:"department_id"`
	Semester         int          `db:"semester" json:"semester"`
	CreditsCompleted *int         `db:"credits_completed" json:"credits_completed,omitempty"`
	Status           string       `db:"status" json:"status"`
	GPA1             *float64     `db:"gpa1" json:"gpa1,omitempty"`
	GPA2             *float64     `db:"gpa2" json:"gpa2,omitempty"`
	GPA3             *float64     `db:"gpa3" json:"gpa3,omitempty"`
	GPA4             *float64     `db:"gpa4" json:"gpa4,omitempty"`
	GPA5             *float64     `db:"gpa5" json:"gpa5,omitempty"`
	GPA6             *float64     `db:"gpa6" json:"gpa6,omitempty"`
	GPA7             *float64     `db:"gpa7" json:"gpa7,omitempty"`
	GPA8             *float64     `db:"gpa8" json:"gpa8,omitempty"`
}

// GPASnapshots returns the per-semester snapshots indexed 0..7.
func (s *Student) GPASnapshots() [MaxSemesters]*float64 {
	return [MaxSemesters]*float64{s.GPA1, s.GPA2, s.GPA3, s.GPA4, s.GPA5, s.GPA6, s.GPA7, s.GPA8}
}

// Attendance records presence for one class session of a course.
type Attendance struct {
	ID        int64  `db:"id" json:"id"`
	CourseID  int64  `db:"course_id" json:"course_id"`
	StudentID int64  `db:"student_id" json:"student_id"`
	Date      string `db:"date" json:"date"`
	Present   bool   `db:"present" json:"present"`
}
