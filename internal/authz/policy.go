package authz

// Decision is the outcome of an authorization check. Denial is terminal for
// the current request: callers reject the whole operation, never filter.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow grants the action.
func Allow() Decision { return Decision{Allowed: true} }

// Deny rejects the action with a reason for logs; the reason is never sent
// to the caller beyond 403 semantics.
func Deny(reason string) Decision { return Decision{Reason: reason} }

// Action is a tagged resource-action variant. Each variant carries the
// relationship facts the policy needs, read fresh from the store by the
// caller at decision time.
type Action interface {
	action() string
}

// ViewStudentRecord covers a student's attendance, grades, and profile.
type ViewStudentRecord struct {
	StudentID           int64
	StudentDepartmentID int64
}

// GradeSubmission covers viewing and grading a submission through its
// parent assignment.
type GradeSubmission struct {
	AssignmentFacultyID    int64
	AssignmentDepartmentID int64
}

// CreateCourseContent covers creating assignments and lectures for a course.
type CreateCourseContent struct {
	CourseFacultyID    int64
	CourseDepartmentID int64
}

// RecordAttendance covers bulk attendance marking for a lecture.
type RecordAttendance struct {
	LectureFacultyID    int64
	LectureDepartmentID int64
}

// ViewRoster covers course and lecture roster/attendance views. The
// department name is needed for the shared first-year cohort widening.
type ViewRoster struct {
	DepartmentID   int64
	DepartmentName string
	FacultyID      int64
}

// ViewDepartment covers department-wide student and faculty listings.
type ViewDepartment struct {
	DepartmentID int64
}

// ViewCollegeAggregates covers college-wide statistics and cross-department
// listings.
type ViewCollegeAggregates struct{}

func (ViewStudentRecord) action() string     { return "student_record.view" }
func (GradeSubmission) action() string       { return "submission.grade" }
func (CreateCourseContent) action() string   { return "course_content.create" }
func (RecordAttendance) action() string      { return "attendance.record" }
func (ViewRoster) action() string            { return "roster.view" }
func (ViewDepartment) action() string        { return "department.view" }
func (ViewCollegeAggregates) action() string { return "college.view" }

// Authorize decides whether the session may perform the action. A nil
// session is always denied without inspecting the action, so anonymous
// callers learn nothing about resource existence.
func Authorize(sess *Session, action Action) Decision {
	if sess == nil {
		return Deny("no session")
	}

	switch a := action.(type) {
	case ViewStudentRecord:
		switch sess.Role {
		case RoleStudent:
			if a.StudentID == sess.UserID {
				return Allow()
			}
			return Deny("students may only view their own records")
		case RoleHOD:
			if a.StudentDepartmentID == sess.DepartmentID {
				return Allow()
			}
			return Deny("student outside HOD department")
		case RolePrincipal:
			return Allow()
		}
		return Deny("role cannot view student records")

	case GradeSubmission:
		switch sess.Role {
		case RoleProfessor:
			if a.AssignmentFacultyID == sess.UserID {
				return Allow()
			}
			return Deny("professor does not own the parent assignment")
		case RoleHOD:
			if a.AssignmentDepartmentID == sess.DepartmentID {
				return Allow()
			}
			return Deny("assignment outside HOD department")
		case RolePrincipal:
			return Allow()
		}
		return Deny("role cannot grade submissions")

	case CreateCourseContent:
		switch sess.Role {
		case RoleProfessor:
			if a.CourseFacultyID == sess.UserID {
				return Allow()
			}
			return Deny("professor is not the assigned faculty for the course")
		case RoleHOD:
			if a.CourseDepartmentID == sess.DepartmentID {
				return Allow()
			}
			return Deny("course outside HOD department")
		}
		return Deny("role cannot create course content")

	case RecordAttendance:
		switch sess.Role {
		case RoleProfessor:
			if a.LectureFacultyID == sess.UserID {
				return Allow()
			}
			return Deny("professor does not own the lecture")
		case RoleHOD:
			if a.LectureDepartmentID == sess.DepartmentID {
				return Allow()
			}
			return Deny("lecture outside HOD department")
		}
		return Deny("role cannot record attendance")

	case ViewRoster:
		switch sess.Role {
		case RoleStudent:
			if a.DepartmentID == sess.DepartmentID || IsSharedCohort(a.DepartmentName) {
				return Allow()
			}
			return Deny("roster outside student department")
		case RoleProfessor:
			if a.FacultyID == sess.UserID {
				return Allow()
			}
			return Deny("professor is not assigned to the course")
		case RoleHOD:
			if a.DepartmentID == sess.DepartmentID || IsSharedCohort(a.DepartmentName) {
				return Allow()
			}
			return Deny("roster outside HOD department")
		case RolePrincipal:
			return Allow()
		}
		return Deny("role cannot view rosters")

	case ViewDepartment:
		switch sess.Role {
		case RoleHOD:
			if a.DepartmentID == sess.DepartmentID {
				return Allow()
			}
			return Deny("department is not the HOD's own")
		case RolePrincipal:
			return Allow()
		}
		return Deny("role cannot view department data")

	case ViewCollegeAggregates:
		if sess.Role == RolePrincipal {
			return Allow()
		}
		return Deny("only the principal views college-wide data")
	}

	return Deny("unknown action")
}
