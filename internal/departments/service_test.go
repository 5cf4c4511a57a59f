package departments_test

import (
	"context"
	"errors"
	"testing"

	"github.com/campushub/campushub/internal/authz"
	"github.com/campushub/campushub/internal/departments"
	"github.com/campushub/campushub/internal/shared"
	_ "github.com/campushub/campushub/testing"
)

type stubStore struct {
	names    map[int64]string
	profiles map[int64]departments.StudentProfile
}

func (s *stubStore) Name(ctx context.Context, id int64) (string, error) {
	name, ok := s.names[id]
	if !ok {
		return "", shared.ErrNotFound
	}
	return name, nil
}

func (s *stubStore) StudentsByDepartment(ctx context.Context, departmentID int64) ([]departments.StudentMember, error) {
	return []departments.StudentMember{{UserID: 7, Name: "Test Student"}}, nil
}

func (s *stubStore) FacultyByDepartment(ctx context.Context, departmentID int64) ([]departments.FacultyMember, error) {
	return []departments.FacultyMember{{UserID: 3, Name: "Test Professor"}}, nil
}

func (s *stubStore) StudentProfile(ctx context.Context, studentID int64) (*departments.StudentProfile, error) {
	p, ok := s.profiles[studentID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (s *stubStore) AttendanceByStudent(ctx context.Context, studentID int64) ([]departments.AttendanceEntry, error) {
	return []departments.AttendanceEntry{{LectureID: 1, Present: true}}, nil
}

func (s *stubStore) SubmissionsByStudent(ctx context.Context, studentID int64) ([]departments.SubmissionEntry, error) {
	return nil, nil
}

func newStore() *stubStore {
	return &stubStore{
		names: map[int64]string{2: "Computer Engineering"},
		profiles: map[int64]departments.StudentProfile{
			7: {
				StudentMember:  departments.StudentMember{UserID: 7, Name: "Test Student"},
				DepartmentID:   2,
				DepartmentName: "Computer Engineering",
			},
		},
	}
}

func TestOwnIsHODOnly(t *testing.T) {
	svc := departments.NewService(newStore())

	hod := &authz.Session{UserID: 5, Role: authz.RoleHOD, DepartmentID: 2}
	overview, err := svc.Own(context.Background(), hod)
	if err != nil {
		t.Fatalf("own: %v", err)
	}
	if overview.DepartmentName != "Computer Engineering" {
		t.Fatalf("name = %q", overview.DepartmentName)
	}
	if len(overview.Students) != 1 || len(overview.Faculty) != 1 {
		t.Fatalf("overview = %+v", overview)
	}

	professor := &authz.Session{UserID: 3, Role: authz.RoleProfessor, DepartmentID: 2}
	if _, err := svc.Own(context.Background(), professor); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	deptless := &authz.Session{UserID: 6, Role: authz.RoleHOD}
	if _, err := svc.Own(context.Background(), deptless); !errors.Is(err, shared.ErrNoDepartment) {
		t.Fatalf("err = %v, want ErrNoDepartment", err)
	}
}

func TestByIDRules(t *testing.T) {
	svc := departments.NewService(newStore())

	principal := &authz.Session{UserID: 1, Role: authz.RolePrincipal}
	if _, err := svc.ByID(context.Background(), principal, 2); err != nil {
		t.Fatalf("principal view: %v", err)
	}

	// HOD may only view their own department through this route.
	ownHOD := &authz.Session{UserID: 5, Role: authz.RoleHOD, DepartmentID: 2}
	if _, err := svc.ByID(context.Background(), ownHOD, 2); err != nil {
		t.Fatalf("hod own view: %v", err)
	}
	foreignHOD := &authz.Session{UserID: 6, Role: authz.RoleHOD, DepartmentID: 3}
	if _, err := svc.ByID(context.Background(), foreignHOD, 2); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	if _, err := svc.ByID(context.Background(), principal, 99); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if _, err := svc.ByID(context.Background(), nil, 2); !errors.Is(err, shared.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestStudentRecordRules(t *testing.T) {
	svc := departments.NewService(newStore())

	// Same-department HOD sees the record.
	hod := &authz.Session{UserID: 5, Role: authz.RoleHOD, DepartmentID: 2}
	record, err := svc.StudentRecord(context.Background(), hod, 7)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if record.Student.UserID != 7 || len(record.Attendance) != 1 {
		t.Fatalf("record = %+v", record)
	}
	if record.Submissions == nil {
		t.Fatal("submissions should be an empty slice, not nil")
	}

	// Foreign HOD is rejected only after the student is known to exist.
	foreignHOD := &authz.Session{UserID: 6, Role: authz.RoleHOD, DepartmentID: 3}
	if _, err := svc.StudentRecord(context.Background(), foreignHOD, 7); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if _, err := svc.StudentRecord(context.Background(), foreignHOD, 99); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	// Students see their own record and nobody else's.
	self := &authz.Session{UserID: 7, Role: authz.RoleStudent, DepartmentID: 2}
	if _, err := svc.StudentRecord(context.Background(), self, 7); err != nil {
		t.Fatalf("self record: %v", err)
	}
	other := &authz.Session{UserID: 8, Role: authz.RoleStudent, DepartmentID: 2}
	if _, err := svc.StudentRecord(context.Background(), other, 7); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	// Professors are turned away before any lookup.
	professor := &authz.Session{UserID: 3, Role: authz.RoleProfessor, DepartmentID: 2}
	if _, err := svc.StudentRecord(context.Background(), professor, 7); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	principal := &authz.Session{UserID: 1, Role: authz.RolePrincipal}
	if _, err := svc.StudentRecord(context.Background(), principal, 7); err != nil {
		t.Fatalf("principal record: %v", err)
	}
}
