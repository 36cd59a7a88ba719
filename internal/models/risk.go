package models

// TrainingRow is one labeled population sample for the risk classifier.
// The label is derived from the same thresholds the rule-based estimator uses.
type TrainingRow struct {
	GPA           float64 `db:"gpa" json:"gpa"`
	AbsenceCount  int     `db:"absence_count" json:"absence"`
	FailedCourses int     `db:"failed_courses" json:"failed_courses"`
	AtRisk        bool    `db:"at_risk" json:"at_risk"`
}
