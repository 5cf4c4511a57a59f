package authz

// SharedCohortDepartment hosts the common first-year science track shared by
// the engineering departments. Resources tagged with it are visible to
// first-year students and faculty outside the owning department.
const SharedCohortDepartment = "Applied Sciences"

// SharedCohortPool lists the departments whose first-year students attend
// the shared track. Rosters for shared courses draw from this pool.
var SharedCohortPool = []string{
	"Computer Engineering",
	"Electrical Engineering",
	"AI & Data Science",
}

// IsSharedCohort reports whether a department participates in the shared
// first-year pool. Every roster/attendance/lecture view that widens the
// department-scope check goes through this single predicate.
func IsSharedCohort(departmentName string) bool {
	return departmentName == SharedCohortDepartment
}
