package courses

import (
	"context"
	"fmt"

	"github.com/campushub/campushub/internal/authz"
	"github.com/campushub/campushub/internal/shared"
)

// Store is the persistence contract the service depends on.
type Store interface {
	ListByDepartment(ctx context.Context, departmentID int64) ([]Course, error)
	ListByFaculty(ctx context.Context, facultyID int64) ([]Course, error)
	ListAll(ctx context.Context) ([]Course, error)
	Get(ctx context.Context, id int64) (*Course, error)
	RosterByDepartment(ctx context.Context, departmentID int64) ([]RosterStudent, error)
	SharedFirstYearRoster(ctx context.Context, pool []string) ([]RosterStudent, error)
}

// Service applies course visibility rules.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListForSession scopes the course listing by role: students see their
// department's courses, faculty their assigned ones, the principal all.
func (s *Service) ListForSession(ctx context.Context, sess *authz.Session) ([]Course, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	switch sess.Role {
	case authz.RoleStudent:
		if sess.DepartmentID == 0 {
			return []Course{}, nil
		}
		return s.store.ListByDepartment(ctx, sess.DepartmentID)
	case authz.RoleProfessor, authz.RoleHOD:
		return s.store.ListByFaculty(ctx, sess.UserID)
	case authz.RolePrincipal:
		return s.store.ListAll(ctx)
	}
	return []Course{}, nil
}

// Detail returns a course with its roster. The roster check happens against
// the freshly loaded course record, and shared first-year courses widen the
// roster to the pooled departments.
func (s *Service) Detail(ctx context.Context, sess *authz.Session, courseID int64) (*Detail, error) {
	if sess == nil {
		// Fail fast without touching the store so anonymous callers learn
		// nothing about which courses exist.
		return nil, shared.ErrUnauthorized
	}
	course, err := s.store.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	decision := authz.Authorize(sess, authz.ViewRoster{
		DepartmentID:   course.DepartmentID,
		DepartmentName: course.DepartmentName,
		FacultyID:      course.FacultyID,
	})
	if !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", shared.ErrForbidden, decision.Reason)
	}

	var students []RosterStudent
	if authz.IsSharedCohort(course.DepartmentName) {
		students, err = s.store.SharedFirstYearRoster(ctx, authz.SharedCohortPool)
	} else {
		students, err = s.store.RosterByDepartment(ctx, course.DepartmentID)
	}
	if err != nil {
		return nil, err
	}

	return &Detail{Course: *course, Students: students}, nil
}
