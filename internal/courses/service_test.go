package courses_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub/internal/authz"
	"github.com/campushub/campushub/internal/courses"
	"github.com/campushub/campushub/internal/shared"
	_ "github.com/campushub/campushub/testing"
)

type stubStore struct {
	courses       map[int64]courses.Course
	byDepartment  []courses.Course
	byFaculty     []courses.Course
	all           []courses.Course
	deptRoster    []courses.RosterStudent
	sharedRoster  []courses.RosterStudent
	sharedQueried bool
}

func (s *stubStore) ListByDepartment(ctx context.Context, departmentID int64) ([]courses.Course, error) {
	return s.byDepartment, nil
}

func (s *stubStore) ListByFaculty(ctx context.Context, facultyID int64) ([]courses.Course, error) {
	return s.byFaculty, nil
}

func (s *stubStore) ListAll(ctx context.Context) ([]courses.Course, error) {
	return s.all, nil
}

func (s *stubStore) Get(ctx context.Context, id int64) (*courses.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &c, nil
}

func (s *stubStore) RosterByDepartment(ctx context.Context, departmentID int64) ([]courses.RosterStudent, error) {
	return s.deptRoster, nil
}

func (s *stubStore) SharedFirstYearRoster(ctx context.Context, pool []string) ([]courses.RosterStudent, error) {
	s.sharedQueried = true
	return s.sharedRoster, nil
}

var (
	regularCourse = courses.Course{ID: 1, Code: "CE101", Name: "Data Structures", DepartmentID: 2, DepartmentName: "Computer Engineering", FacultyID: 3}
	sharedCourse  = courses.Course{ID: 2, Code: "AS101", Name: "Engineering Physics", DepartmentID: 9, DepartmentName: authz.SharedCohortDepartment, FacultyID: 5}
)

func newService(store *stubStore) *courses.Service {
	if store.courses == nil {
		store.courses = map[int64]courses.Course{regularCourse.ID: regularCourse, sharedCourse.ID: sharedCourse}
	}
	return courses.NewService(store)
}

func TestDetailRequiresSession(t *testing.T) {
	svc := newService(&stubStore{})
	_, err := svc.Detail(context.Background(), nil, regularCourse.ID)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestDetailNotFound(t *testing.T) {
	svc := newService(&stubStore{})
	sess := &authz.Session{UserID: 7, Role: authz.RoleStudent, DepartmentID: 2}
	_, err := svc.Detail(context.Background(), sess, 99)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDetailStudentOutsideDepartmentForbidden(t *testing.T) {
	svc := newService(&stubStore{})
	sess := &authz.Session{UserID: 7, Role: authz.RoleStudent, DepartmentID: 3}
	_, err := svc.Detail(context.Background(), sess, regularCourse.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestDetailSharedCourseWidensRoster(t *testing.T) {
	store := &stubStore{
		sharedRoster: []courses.RosterStudent{
			{UserID: 7, Name: "CE First Year", Year: 1, DepartmentID: 2},
			{UserID: 8, Name: "EE First Year", Year: 1, DepartmentID: 3},
		},
	}
	svc := newService(store)

	// A student from a pooled department may open the shared course even
	// though its department differs from their own.
	sess := &authz.Session{UserID: 7, Role: authz.RoleStudent, DepartmentID: 2}
	detail, err := svc.Detail(context.Background(), sess, sharedCourse.ID)
	require.NoError(t, err)
	require.NotNil(t, detail)

	assert.True(t, store.sharedQueried, "shared roster should be queried for a shared course")
	assert.Len(t, detail.Students, 2)
	assert.Equal(t, sharedCourse.Code, detail.Code)
}

func TestDetailRegularCourseUsesDepartmentRoster(t *testing.T) {
	store := &stubStore{deptRoster: []courses.RosterStudent{{UserID: 7, DepartmentID: 2}}}
	svc := newService(store)

	sess := &authz.Session{UserID: 7, Role: authz.RoleStudent, DepartmentID: 2}
	detail, err := svc.Detail(context.Background(), sess, regularCourse.ID)
	require.NoError(t, err)

	assert.False(t, store.sharedQueried, "shared roster should not be queried for a regular course")
	assert.Len(t, detail.Students, 1)
}

func TestListForSessionByRole(t *testing.T) {
	store := &stubStore{
		byDepartment: []courses.Course{regularCourse},
		byFaculty:    []courses.Course{regularCourse, sharedCourse},
		all:          []courses.Course{regularCourse, sharedCourse},
	}
	svc := newService(store)

	tests := []struct {
		name string
		sess *authz.Session
		want int
	}{
		{"student", &authz.Session{UserID: 7, Role: authz.RoleStudent, DepartmentID: 2}, 1},
		{"professor", &authz.Session{UserID: 3, Role: authz.RoleProfessor, DepartmentID: 2}, 2},
		{"principal", &authz.Session{UserID: 1, Role: authz.RolePrincipal}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListForSession(context.Background(), tt.sess)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}
