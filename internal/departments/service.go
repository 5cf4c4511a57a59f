package departments

import (
	"context"
	"fmt"

	"github.com/campushub/campushub/internal/authz"
	"github.com/campushub/campushub/internal/shared"
)

// Store is the persistence contract the service depends on.
type Store interface {
	Name(ctx context.Context, id int64) (string, error)
	StudentsByDepartment(ctx context.Context, departmentID int64) ([]StudentMember, error)
	FacultyByDepartment(ctx context.Context, departmentID int64) ([]FacultyMember, error)
	StudentProfile(ctx context.Context, studentID int64) (*StudentProfile, error)
	AttendanceByStudent(ctx context.Context, studentID int64) ([]AttendanceEntry, error)
	SubmissionsByStudent(ctx context.Context, studentID int64) ([]SubmissionEntry, error)
}

// Service applies department view rules.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) overview(ctx context.Context, departmentID int64) (*Overview, error) {
	name, err := s.store.Name(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	students, err := s.store.StudentsByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	faculty, err := s.store.FacultyByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []StudentMember{}
	}
	if faculty == nil {
		faculty = []FacultyMember{}
	}
	return &Overview{DepartmentName: name, Students: students, Faculty: faculty}, nil
}

// Own returns the calling HOD's department overview.
func (s *Service) Own(ctx context.Context, sess *authz.Session) (*Overview, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	if sess.Role != authz.RoleHOD {
		return nil, fmt.Errorf("%w: department view is HOD only", shared.ErrForbidden)
	}
	if sess.DepartmentID == 0 {
		return nil, shared.ErrNoDepartment
	}
	return s.overview(ctx, sess.DepartmentID)
}

// ByID returns a department overview for whoever may view it.
func (s *Service) ByID(ctx context.Context, sess *authz.Session, departmentID int64) (*Overview, error) {
	decision := authz.Authorize(sess, authz.ViewDepartment{DepartmentID: departmentID})
	if !decision.Allowed {
		if sess == nil {
			return nil, shared.ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: %s", shared.ErrForbidden, decision.Reason)
	}
	return s.overview(ctx, departmentID)
}

// StudentRecord returns a student's full academic record. A record outside
// the caller's reach is forbidden only after the student is known to exist.
func (s *Service) StudentRecord(ctx context.Context, sess *authz.Session, studentID int64) (*StudentRecord, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	switch sess.Role {
	case authz.RoleStudent, authz.RoleHOD, authz.RolePrincipal:
	default:
		return nil, fmt.Errorf("%w: role cannot view student records", shared.ErrForbidden)
	}

	profile, err := s.store.StudentProfile(ctx, studentID)
	if err != nil {
		return nil, err
	}
	decision := authz.Authorize(sess, authz.ViewStudentRecord{
		StudentID:           profile.UserID,
		StudentDepartmentID: profile.DepartmentID,
	})
	if !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", shared.ErrForbidden, decision.Reason)
	}

	attendance, err := s.store.AttendanceByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	submissions, err := s.store.SubmissionsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		attendance = []AttendanceEntry{}
	}
	if submissions == nil {
		submissions = []SubmissionEntry{}
	}
	return &StudentRecord{Student: *profile, Attendance: attendance, Submissions: submissions}, nil
}
