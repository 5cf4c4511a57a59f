package admin_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/campushub/campushub/internal/admin"
	"github.com/campushub/campushub/internal/authz"
	"github.com/campushub/campushub/internal/shared"
	_ "github.com/campushub/campushub/testing"
)

type stubStore struct {
	students     int64
	professors   int64
	departments  int64
	pastLectures int64
	present      int64
	countCalls   atomic.Int64
}

func (s *stubStore) CountStudents(ctx context.Context) (int64, error) {
	s.countCalls.Add(1)
	return s.students, nil
}

func (s *stubStore) CountProfessors(ctx context.Context) (int64, error) {
	s.countCalls.Add(1)
	return s.professors, nil
}

func (s *stubStore) CountDepartments(ctx context.Context) (int64, error) {
	s.countCalls.Add(1)
	return s.departments, nil
}

func (s *stubStore) CountPastLectures(ctx context.Context, now time.Time) (int64, error) {
	s.countCalls.Add(1)
	return s.pastLectures, nil
}

func (s *stubStore) CountPresentAttendance(ctx context.Context) (int64, error) {
	s.countCalls.Add(1)
	return s.present, nil
}

func (s *stubStore) DepartmentSummaries(ctx context.Context) ([]admin.DepartmentSummary, error) {
	return []admin.DepartmentSummary{{ID: 2, Name: "Computer Engineering", HOD: "Test HOD", StudentCount: s.students}}, nil
}

func (s *stubStore) ListStudents(ctx context.Context) ([]admin.StudentRow, error) {
	return []admin.StudentRow{{UserID: 7, Name: "Test Student"}}, nil
}

func (s *stubStore) ListFaculty(ctx context.Context) ([]admin.FacultyRow, error) {
	return []admin.FacultyRow{{UserID: 3, Name: "Test Professor", Role: "PROFESSOR"}}, nil
}

func newCache(t *testing.T) *admin.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return admin.NewCache(client, 5*time.Minute)
}

var principal = &authz.Session{UserID: 1, Role: authz.RolePrincipal}

func TestOverviewPrincipalOnly(t *testing.T) {
	store := &stubStore{students: 120, professors: 14, departments: 4, pastLectures: 50, present: 40}
	svc := admin.NewService(store, newCache(t))

	overview, err := svc.Overview(context.Background(), principal)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Stats.StudentCount != 120 || overview.Stats.FacultyCount != 14 {
		t.Fatalf("stats = %+v", overview.Stats)
	}
	if overview.Stats.OverallAttendance != 80 {
		t.Fatalf("attendance = %d, want 80", overview.Stats.OverallAttendance)
	}
	if len(overview.Departments) != 1 || overview.Departments[0].HOD != "Test HOD" {
		t.Fatalf("departments = %+v", overview.Departments)
	}

	hod := &authz.Session{UserID: 5, Role: authz.RoleHOD, DepartmentID: 2}
	if _, err := svc.Overview(context.Background(), hod); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Overview(context.Background(), nil); !errors.Is(err, shared.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestOverviewServedFromCache(t *testing.T) {
	store := &stubStore{students: 120, pastLectures: 10, present: 5}
	svc := admin.NewService(store, newCache(t))

	if _, err := svc.Overview(context.Background(), principal); err != nil {
		t.Fatalf("first overview: %v", err)
	}
	first := store.countCalls.Load()
	if first == 0 {
		t.Fatal("expected counts to run on a cold cache")
	}

	if _, err := svc.Overview(context.Background(), principal); err != nil {
		t.Fatalf("second overview: %v", err)
	}
	if store.countCalls.Load() != first {
		t.Fatal("expected the second read to come from the cache")
	}
}

func TestOverviewWithoutCache(t *testing.T) {
	store := &stubStore{pastLectures: 0, present: 0}
	svc := admin.NewService(store, nil)

	overview, err := svc.Overview(context.Background(), principal)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Stats.OverallAttendance != 0 {
		t.Fatalf("attendance = %d, want 0 with no lectures", overview.Stats.OverallAttendance)
	}
}

func TestListingsPrincipalOnly(t *testing.T) {
	svc := admin.NewService(&stubStore{}, nil)

	students, err := svc.Students(context.Background(), principal)
	if err != nil || len(students) != 1 {
		t.Fatalf("students = %v, err = %v", students, err)
	}
	faculty, err := svc.Faculty(context.Background(), principal)
	if err != nil || len(faculty) != 1 {
		t.Fatalf("faculty = %v, err = %v", faculty, err)
	}

	student := &authz.Session{UserID: 7, Role: authz.RoleStudent, DepartmentID: 2}
	if _, err := svc.Students(context.Background(), student); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if _, err := svc.Faculty(context.Background(), student); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}
