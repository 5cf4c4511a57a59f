package lectures_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campushub/campushub/internal/authz"
	"github.com/campushub/campushub/internal/lectures"
	"github.com/campushub/campushub/internal/shared"
	_ "github.com/campushub/campushub/testing"
)

type stubStore struct {
	lectures        map[int64]lectures.Lecture
	courseFaculty   int64
	courseDept      int64
	courseMissing   bool
	sharedDeptID    int64
	queriedDepts    []int64
	savedMarks      []lectures.Mark
	savedLectureID  int64
	createdCourseID int64
}

func (s *stubStore) ListByDepartments(ctx context.Context, departmentIDs []int64) ([]lectures.Lecture, error) {
	s.queriedDepts = departmentIDs
	return []lectures.Lecture{}, nil
}

func (s *stubStore) ListByFaculty(ctx context.Context, facultyID int64) ([]lectures.Lecture, error) {
	return []lectures.Lecture{}, nil
}

func (s *stubStore) UpcomingByDepartments(ctx context.Context, departmentIDs []int64, limit int) ([]lectures.Lecture, error) {
	s.queriedDepts = departmentIDs
	return []lectures.Lecture{}, nil
}

func (s *stubStore) UpcomingByFaculty(ctx context.Context, facultyID int64, limit int) ([]lectures.Lecture, error) {
	return []lectures.Lecture{}, nil
}

func (s *stubStore) Get(ctx context.Context, id int64) (*lectures.Lecture, error) {
	l, ok := s.lectures[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &l, nil
}

func (s *stubStore) Create(ctx context.Context, courseID, departmentID, facultyID int64, input lectures.CreateInput) (int64, error) {
	s.createdCourseID = courseID
	return 101, nil
}

func (s *stubStore) CourseFacts(ctx context.Context, courseID int64) (int64, int64, error) {
	if s.courseMissing {
		return 0, 0, shared.ErrNotFound
	}
	return s.courseFaculty, s.courseDept, nil
}

func (s *stubStore) RosterByDepartment(ctx context.Context, departmentID int64) ([]lectures.RosterStudent, error) {
	return []lectures.RosterStudent{{UserID: 7, Name: "Test Student"}}, nil
}

func (s *stubStore) SaveAttendance(ctx context.Context, lectureID int64, marks []lectures.Mark) (int64, error) {
	s.savedLectureID = lectureID
	s.savedMarks = marks
	return int64(len(marks)), nil
}

func (s *stubStore) AttendanceByStudent(ctx context.Context, studentID int64) ([]lectures.AttendanceRecord, error) {
	return []lectures.AttendanceRecord{{LectureID: 1, Present: true}}, nil
}

func (s *stubStore) SharedDepartmentID(ctx context.Context, name string) (int64, error) {
	return s.sharedDeptID, nil
}

var ownedLecture = lectures.Lecture{
	ID: 10, CourseID: 1, DepartmentID: 2, DepartmentName: "Computer Engineering",
	FacultyID: 3, Topic: "Graphs", StartsAt: time.Now(), DurationMinutes: 60,
}

func TestScheduleStudentIncludesSharedDepartment(t *testing.T) {
	store := &stubStore{sharedDeptID: 9}
	svc := lectures.NewService(store)

	sess := &authz.Session{UserID: 7, Role: authz.RoleStudent, DepartmentID: 2}
	if _, err := svc.Schedule(context.Background(), sess); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(store.queriedDepts) != 2 || store.queriedDepts[0] != 2 || store.queriedDepts[1] != 9 {
		t.Fatalf("queried departments = %v, want [2 9]", store.queriedDepts)
	}
}

func TestScheduleStudentWithoutSharedDepartment(t *testing.T) {
	store := &stubStore{sharedDeptID: 0}
	svc := lectures.NewService(store)

	sess := &authz.Session{UserID: 7, Role: authz.RoleStudent, DepartmentID: 2}
	if _, err := svc.Schedule(context.Background(), sess); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if len(store.queriedDepts) != 1 || store.queriedDepts[0] != 2 {
		t.Fatalf("queried departments = %v, want [2]", store.queriedDepts)
	}
}

func TestScheduleAnonymousDenied(t *testing.T) {
	svc := lectures.NewService(&stubStore{})
	if _, err := svc.Schedule(context.Background(), nil); !errors.Is(err, shared.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestCreateRequiresCourseOwnership(t *testing.T) {
	store := &stubStore{courseFaculty: 3, courseDept: 2}
	svc := lectures.NewService(store)
	input := lectures.CreateInput{CourseID: 1, Topic: "Trees", StartsAt: time.Now(), DurationMinutes: 60}

	// Assigned professor may create.
	owner := &authz.Session{UserID: 3, Role: authz.RoleProfessor, DepartmentID: 2}
	if _, err := svc.Create(context.Background(), owner, input); err != nil {
		t.Fatalf("owner create: %v", err)
	}

	// Another professor in the same department may not.
	other := &authz.Session{UserID: 4, Role: authz.RoleProfessor, DepartmentID: 2}
	if _, err := svc.Create(context.Background(), other, input); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	// The department's HOD may.
	hod := &authz.Session{UserID: 5, Role: authz.RoleHOD, DepartmentID: 2}
	if _, err := svc.Create(context.Background(), hod, input); err != nil {
		t.Fatalf("hod create: %v", err)
	}

	// HOD of a different department may not.
	foreignHOD := &authz.Session{UserID: 6, Role: authz.RoleHOD, DepartmentID: 3}
	if _, err := svc.Create(context.Background(), foreignHOD, input); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestCreateMissingCourseIs404(t *testing.T) {
	svc := lectures.NewService(&stubStore{courseMissing: true})
	sess := &authz.Session{UserID: 3, Role: authz.RoleProfessor, DepartmentID: 2}
	input := lectures.CreateInput{CourseID: 99, Topic: "X", StartsAt: time.Now(), DurationMinutes: 60}
	if _, err := svc.Create(context.Background(), sess, input); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRecordAttendanceOwnershipAndDelegation(t *testing.T) {
	store := &stubStore{lectures: map[int64]lectures.Lecture{ownedLecture.ID: ownedLecture}}
	svc := lectures.NewService(store)
	marks := []lectures.Mark{{StudentID: 7, Present: true}, {StudentID: 8, Present: false}}

	owner := &authz.Session{UserID: 3, Role: authz.RoleProfessor, DepartmentID: 2}
	n, err := svc.RecordAttendance(context.Background(), owner, ownedLecture.ID, marks)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if n != 2 || store.savedLectureID != ownedLecture.ID {
		t.Fatalf("saved %d marks for lecture %d", n, store.savedLectureID)
	}

	other := &authz.Session{UserID: 9, Role: authz.RoleProfessor, DepartmentID: 2}
	if _, err := svc.RecordAttendance(context.Background(), other, ownedLecture.ID, marks); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	student := &authz.Session{UserID: 7, Role: authz.RoleStudent, DepartmentID: 2}
	if _, err := svc.RecordAttendance(context.Background(), student, ownedLecture.ID, marks); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestOwnAttendanceStudentOnly(t *testing.T) {
	svc := lectures.NewService(&stubStore{})

	student := &authz.Session{UserID: 7, Role: authz.RoleStudent, DepartmentID: 2}
	records, err := svc.OwnAttendance(context.Background(), student)
	if err != nil {
		t.Fatalf("own attendance: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}

	professor := &authz.Session{UserID: 3, Role: authz.RoleProfessor, DepartmentID: 2}
	if _, err := svc.OwnAttendance(context.Background(), professor); !errors.Is(err, shared.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}
