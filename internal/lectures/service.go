package lectures

import (
	"context"
	"fmt"

	"github.com/campushub/campushub/internal/authz"
	"github.com/campushub/campushub/internal/shared"
)

// Store is the persistence contract the service depends on.
type Store interface {
	ListByDepartments(ctx context.Context, departmentIDs []int64) ([]Lecture, error)
	ListByFaculty(ctx context.Context, facultyID int64) ([]Lecture, error)
	UpcomingByDepartments(ctx context.Context, departmentIDs []int64, limit int) ([]Lecture, error)
	UpcomingByFaculty(ctx context.Context, facultyID int64, limit int) ([]Lecture, error)
	Get(ctx context.Context, id int64) (*Lecture, error)
	Create(ctx context.Context, courseID, departmentID, facultyID int64, input CreateInput) (int64, error)
	CourseFacts(ctx context.Context, courseID int64) (facultyID, departmentID int64, err error)
	RosterByDepartment(ctx context.Context, departmentID int64) ([]RosterStudent, error)
	SaveAttendance(ctx context.Context, lectureID int64, marks []Mark) (int64, error)
	AttendanceByStudent(ctx context.Context, studentID int64) ([]AttendanceRecord, error)
	SharedDepartmentID(ctx context.Context, name string) (int64, error)
}

// Service applies schedule and attendance rules.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// studentDepartments is the set of departments whose lectures a student
// sees: their own plus the shared first-year track when provisioned.
func (s *Service) studentDepartments(ctx context.Context, sess *authz.Session) ([]int64, error) {
	if sess.DepartmentID == 0 {
		return nil, nil
	}
	depts := []int64{sess.DepartmentID}
	sharedID, err := s.store.SharedDepartmentID(ctx, authz.SharedCohortDepartment)
	if err != nil {
		return nil, err
	}
	if sharedID != 0 && sharedID != sess.DepartmentID {
		depts = append(depts, sharedID)
	}
	return depts, nil
}

// Schedule returns the lectures visible to the session: students see their
// department plus the shared track, faculty their own lectures.
func (s *Service) Schedule(ctx context.Context, sess *authz.Session) ([]Lecture, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	switch sess.Role {
	case authz.RoleStudent:
		depts, err := s.studentDepartments(ctx, sess)
		if err != nil {
			return nil, err
		}
		if len(depts) == 0 {
			return []Lecture{}, nil
		}
		return s.store.ListByDepartments(ctx, depts)
	case authz.RoleProfessor, authz.RoleHOD:
		return s.store.ListByFaculty(ctx, sess.UserID)
	}
	return []Lecture{}, nil
}

// Upcoming returns the next lectures for the dashboard.
func (s *Service) Upcoming(ctx context.Context, sess *authz.Session, limit int) ([]Lecture, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	if limit <= 0 {
		limit = 3
	}
	switch sess.Role {
	case authz.RoleStudent:
		depts, err := s.studentDepartments(ctx, sess)
		if err != nil {
			return nil, err
		}
		if len(depts) == 0 {
			return []Lecture{}, nil
		}
		return s.store.UpcomingByDepartments(ctx, depts, limit)
	case authz.RoleProfessor, authz.RoleHOD:
		return s.store.UpcomingByFaculty(ctx, sess.UserID, limit)
	}
	return []Lecture{}, nil
}

// Create schedules a lecture for a course. Only the course's assigned
// professor or the department's HOD may create one; the ownership facts are
// read fresh from the course record.
func (s *Service) Create(ctx context.Context, sess *authz.Session, input CreateInput) (int64, error) {
	if sess == nil {
		return 0, shared.ErrUnauthorized
	}
	if !sess.Role.Faculty() {
		return 0, fmt.Errorf("%w: role cannot create lectures", shared.ErrForbidden)
	}

	facultyID, departmentID, err := s.store.CourseFacts(ctx, input.CourseID)
	if err != nil {
		return 0, err
	}
	decision := authz.Authorize(sess, authz.CreateCourseContent{
		CourseFacultyID:    facultyID,
		CourseDepartmentID: departmentID,
	})
	if !decision.Allowed {
		return 0, fmt.Errorf("%w: %s", shared.ErrForbidden, decision.Reason)
	}

	return s.store.Create(ctx, input.CourseID, departmentID, sess.UserID, input)
}

// Detail returns a lecture with its attendance roster.
func (s *Service) Detail(ctx context.Context, sess *authz.Session, lectureID int64) (*Detail, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	lecture, err := s.store.Get(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	decision := authz.Authorize(sess, authz.ViewRoster{
		DepartmentID:   lecture.DepartmentID,
		DepartmentName: lecture.DepartmentName,
		FacultyID:      lecture.FacultyID,
	})
	if !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", shared.ErrForbidden, decision.Reason)
	}

	students, err := s.store.RosterByDepartment(ctx, lecture.DepartmentID)
	if err != nil {
		return nil, err
	}
	return &Detail{Lecture: *lecture, Students: students}, nil
}

// RecordAttendance bulk-marks attendance for a lecture. Duplicate rows are
// discarded by the store, so retaking attendance never errors.
func (s *Service) RecordAttendance(ctx context.Context, sess *authz.Session, lectureID int64, marks []Mark) (int64, error) {
	if sess == nil {
		return 0, shared.ErrUnauthorized
	}
	if !sess.Role.Faculty() {
		return 0, fmt.Errorf("%w: role cannot record attendance", shared.ErrForbidden)
	}

	lecture, err := s.store.Get(ctx, lectureID)
	if err != nil {
		return 0, err
	}
	decision := authz.Authorize(sess, authz.RecordAttendance{
		LectureFacultyID:    lecture.FacultyID,
		LectureDepartmentID: lecture.DepartmentID,
	})
	if !decision.Allowed {
		return 0, fmt.Errorf("%w: %s", shared.ErrForbidden, decision.Reason)
	}

	return s.store.SaveAttendance(ctx, lectureID, marks)
}

// OwnAttendance returns the calling student's attendance history.
func (s *Service) OwnAttendance(ctx context.Context, sess *authz.Session) ([]AttendanceRecord, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	if sess.Role != authz.RoleStudent {
		return nil, fmt.Errorf("%w: attendance view is student only", shared.ErrForbidden)
	}
	return s.store.AttendanceByStudent(ctx, sess.UserID)
}
