package calendar_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/campushub/campushub/internal/authz"
	"github.com/campushub/campushub/internal/calendar"
	"github.com/campushub/campushub/internal/shared"
	_ "github.com/campushub/campushub/testing"
)

type stubStore struct {
	lectures    []calendar.FeedLecture
	assignments []calendar.FeedAssignment
	events      []calendar.Event
	createdDept int64
}

func (s *stubStore) LecturesByDepartment(ctx context.Context, departmentID int64) ([]calendar.FeedLecture, error) {
	return s.lectures, nil
}

func (s *stubStore) AssignmentsByDepartment(ctx context.Context, departmentID int64) ([]calendar.FeedAssignment, error) {
	return s.assignments, nil
}

func (s *stubStore) EventsForDepartment(ctx context.Context, departmentID int64) ([]calendar.Event, error) {
	return s.events, nil
}

func (s *stubStore) CreateEvent(ctx context.Context, departmentID int64, input calendar.CreateInput) (*calendar.Event, error) {
	s.createdDept = departmentID
	return &calendar.Event{ID: 1, Title: input.Title, Date: input.Date, Type: input.Type, DepartmentID: departmentID}, nil
}

func TestFeedMergesSources(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store := &stubStore{
		lectures:    []calendar.FeedLecture{{ID: 1, CourseCode: "CS201", CourseName: "Data Structures", StartsAt: start, DurationMinutes: 90}},
		assignments: []calendar.FeedAssignment{{ID: 2, Title: "Problem Set 1", DueAt: start.Add(48 * time.Hour)}},
		events: []calendar.Event{
			{ID: 3, Title: "Founders Day", Date: start.Add(96 * time.Hour), Type: calendar.EventHoliday},
			{ID: 4, Title: "Midterms", Date: start.Add(200 * time.Hour), Type: calendar.EventExam, DepartmentID: 2},
		},
	}
	svc := calendar.NewService(store)

	sess := &authz.Session{UserID: 7, Role: authz.RoleStudent, DepartmentID: 2}
	entries, err := svc.Feed(context.Background(), sess)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}

	lecture := entries[0]
	if lecture.ID != "lecture-1" || lecture.Title != "CS201: Data Structures" {
		t.Fatalf("lecture entry = %+v", lecture)
	}
	if lecture.End == nil || !lecture.End.Equal(start.Add(90*time.Minute)) {
		t.Fatalf("lecture end = %v", lecture.End)
	}

	due := entries[1]
	if !strings.HasPrefix(due.Title, "Due: ") || !due.AllDay {
		t.Fatalf("assignment entry = %+v", due)
	}

	holiday, exam := entries[2], entries[3]
	if holiday.BackgroundColor == exam.BackgroundColor {
		t.Fatal("holidays should have a distinct color")
	}
}

func TestFeedWithoutDepartmentIsEmpty(t *testing.T) {
	svc := calendar.NewService(&stubStore{})
	principal := &authz.Session{UserID: 1, Role: authz.RolePrincipal}
	entries, err := svc.Feed(context.Background(), principal)
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries = %d, want 0", len(entries))
	}
}

func TestCreateEventRoleRules(t *testing.T) {
	store := &stubStore{}
	svc := calendar.NewService(store)
	input := calendar.CreateInput{Title: "Guest Lecture", Date: time.Now().Add(24 * time.Hour), Type: calendar.EventGeneral}

	professor := &authz.Session{UserID: 3, Role: authz.RoleProfessor, DepartmentID: 2}
	event, err := svc.CreateEvent(context.Background(), professor, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if event.DepartmentID != 2 || store.createdDept != 2 {
		t.Fatalf("event landed in department %d", store.createdDept)
	}

	student := &authz.Session{UserID: 7, Role: authz.RoleStudent, DepartmentID: 2}
	if _, err := svc.CreateEvent(context.Background(), student, input); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	deptless := &authz.Session{UserID: 4, Role: authz.RoleProfessor}
	if _, err := svc.CreateEvent(context.Background(), deptless, input); !errors.Is(err, shared.ErrNoDepartment) {
		t.Fatalf("err = %v, want ErrNoDepartment", err)
	}
}
