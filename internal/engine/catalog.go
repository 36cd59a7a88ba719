package engine

import "github.com/noah-isme/uni-advisory-api/internal/models"

// CourseInfo is the per-course view the engine works with.
type CourseInfo struct {
	ID              int64
	Name            string
	Code            string
	Description     string
	Credits         int
	Semester        int
	Active          bool
	Prereq          []int64
	MaxSeats        int
	EnrolledCount   int
	LecturesPerWeek int
}

// Catalog is an immutable-for-the-request snapshot of course metadata,
// prerequisite links and department/mandatory mappings. Order preserves the
// catalog iteration order so that partitioned results stay deterministic.
// Callers build a fresh snapshot per logical transaction; the engine never
// caches one across mutating operations.
type Catalog struct {
	Order   []int64
	Courses map[int64]CourseInfo
	// Links maps course id -> department id -> mandatory. Keeping the full
	// per-department mapping avoids losing a department's mandatory flag when
	// a course belongs to more than one department.
	Links map[int64]map[int64]bool
}

// BuildCatalog assembles a snapshot from raw catalog rows. Courses keep the
// order they were listed in.
func BuildCatalog(courses []models.Course, links []models.CourseDepartment) *Catalog {
	c := &Catalog{
		Order:   make([]int64, 0, len(courses)),
		Courses: make(map[int64]CourseInfo, len(courses)),
		Links:   make(map[int64]map[int64]bool),
	}
	for _, course := range courses {
		info := CourseInfo{
			ID:            course.ID,
			Name:          course.Name,
			Code:          course.Code,
			Description:   course.Description,
			Credits:       course.Credits,
			Semester:      course.Semester,
			Active:        course.Status == models.CourseStatusActive,
			MaxSeats:      course.MaxSeats,
			EnrolledCount: course.EnrolledCount,
		}
		if course.PrereqCourseID != nil {
			info.Prereq = []int64{*course.PrereqCourseID}
		}
		if course.LecturesPerWeek != nil {
			info.LecturesPerWeek = *course.LecturesPerWeek
		}
		c.Order = append(c.Order, course.ID)
		c.Courses[course.ID] = info
	}
	for _, link := range links {
		depts := c.Links[link.CourseID]
		if depts == nil {
			depts = make(map[int64]bool)
			c.Links[link.CourseID] = depts
		}
		depts[link.DepartmentID] = link.Mandatory
	}
	return c
}

// Empty reports whether the snapshot carries no courses.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.Courses) == 0
}

// LinkedTo reports whether the course is offered by the department and its
// mandatory flag there.
func (c *Catalog) LinkedTo(courseID, departmentID int64) (mandatory, linked bool) {
	depts, ok := c.Links[courseID]
	if !ok {
		return false, false
	}
	mandatory, linked = depts[departmentID]
	return mandatory, linked
}

// CoursesFor returns active courses offered in the given semester for the
// department, in catalog order.
func (c *Catalog) CoursesFor(semester int, departmentID int64) []int64 {
	var out []int64
	for _, id := range c.Order {
		info := c.Courses[id]
		if !info.Active || info.Semester != semester {
			continue
		}
		if _, linked := c.LinkedTo(id, departmentID); linked {
			out = append(out, id)
		}
	}
	return out
}

// Prerequisites returns the prerequisite map; at most one entry per course
// under the modeled schema.
func (c *Catalog) Prerequisites() map[int64][]int64 {
	out := make(map[int64][]int64, len(c.Courses))
	for id, info := range c.Courses {
		out[id] = info.Prereq
	}
	return out
}
