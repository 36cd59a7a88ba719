package engine

import (
	appErrors "github.com/noah-isme/uni-advisory-api/pkg/errors"
)

// Eligibility partitions the courses a student may legally register for.
// Mandatory preserves catalog iteration order; electives are ranked separately.
type Eligibility struct {
	Mandatory []int64
	Elective  []int64
}

// Contains reports whether the course appears in either partition.
func (e Eligibility) Contains(courseID int64) bool {
	for _, id := range e.Mandatory {
		if id == courseID {
			return true
		}
	}
	for _, id := range e.Elective {
		if id == courseID {
			return true
		}
	}
	return false
}

// Eligible computes the set of courses the student is allowed to register for
// this term. Registerable courses are the union of the department's offering
// for the student's current semester and failed courses that are mandatory for
// the department (retakes ignore the nominal semester). A course with a
// prerequisite stays blocked until the prerequisite has been passed.
func Eligible(profile *Profile, catalog *Catalog) (Eligibility, error) {
	var result Eligibility
	if profile == nil || catalog.Empty() {
		return result, appErrors.Clone(appErrors.ErrValidation, "missing profile or catalog snapshot")
	}
	if profile.Semester == 0 || profile.DepartmentID == 0 {
		return result, appErrors.Clone(appErrors.ErrValidation, "missing semester or department information")
	}

	for _, id := range catalog.Order {
		info := catalog.Courses[id]
		mandatory, linked := catalog.LinkedTo(id, profile.DepartmentID)
		if !linked {
			continue
		}

		offered := info.Active && info.Semester == profile.Semester
		retake := profile.Failed[id] && mandatory
		if !offered && !retake {
			continue
		}

		if !prereqSatisfied(info.Prereq, profile.Completed) {
			continue
		}

		if mandatory {
			result.Mandatory = append(result.Mandatory, id)
		} else {
			result.Elective = append(result.Elective, id)
		}
	}
	return result, nil
}

func prereqSatisfied(prereq []int64, completed map[int64]bool) bool {
	for _, id := range prereq {
		if !completed[id] {
			return false
		}
	}
	return true
}
