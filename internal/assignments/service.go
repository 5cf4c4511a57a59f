package assignments

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campushub/internal/authz"
	"github.com/campushub/campushub/internal/shared"
)

// Store is the persistence contract the service depends on.
type Store interface {
	ListByDepartments(ctx context.Context, departmentIDs []int64, studentID int64) ([]Assignment, error)
	ListByFaculty(ctx context.Context, facultyID int64) ([]Assignment, error)
	DueByDepartments(ctx context.Context, departmentIDs []int64, now time.Time, limit int) ([]Assignment, error)
	DueByFaculty(ctx context.Context, facultyID int64, now time.Time, limit int) ([]Assignment, error)
	CourseFacts(ctx context.Context, courseID int64) (facultyID, departmentID int64, err error)
	Create(ctx context.Context, courseID, departmentID, facultyID int64, input CreateInput) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	SharedDepartmentID(ctx context.Context, name string) (int64, error)
}

// Reminders enqueues due-date reminder jobs. A nil Reminders disables them.
type Reminders interface {
	EnqueueDueReminder(ctx context.Context, assignmentID int64, dueAt time.Time) error
}

// Service applies assignment rules.
type Service struct {
	store     Store
	reminders Reminders
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs a Service. reminders may be nil.
func NewService(logger *slog.Logger, store Store, reminders Reminders) *Service {
	return &Service{store: store, reminders: reminders, logger: logger, now: time.Now}
}

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

// ListForSession returns the assignments visible to the session. Students
// see their department's hand-outs with their own submission attached,
// faculty see what they handed out.
func (s *Service) ListForSession(ctx context.Context, sess *authz.Session) ([]Assignment, error) {
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
			return []Assignment{}, nil
		}
		return s.store.ListByDepartments(ctx, depts, sess.UserID)
	case authz.RoleProfessor, authz.RoleHOD:
		return s.store.ListByFaculty(ctx, sess.UserID)
	}
	return []Assignment{}, nil
}

// Due returns the next assignments for the dashboard.
func (s *Service) Due(ctx context.Context, sess *authz.Session, limit int) ([]Assignment, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	if limit <= 0 {
		limit = 3
	}
	now := s.now()
	switch sess.Role {
	case authz.RoleStudent:
		depts, err := s.studentDepartments(ctx, sess)
		if err != nil {
			return nil, err
		}
		if len(depts) == 0 {
			return []Assignment{}, nil
		}
		return s.store.DueByDepartments(ctx, depts, now, limit)
	case authz.RoleProfessor, authz.RoleHOD:
		return s.store.DueByFaculty(ctx, sess.UserID, now, limit)
	}
	return []Assignment{}, nil
}

// Create hands out an assignment for a course. Only the course's assigned
// professor or the department's HOD may create one.
func (s *Service) Create(ctx context.Context, sess *authz.Session, input CreateInput) (int64, error) {
	if sess == nil {
		return 0, shared.ErrUnauthorized
	}
	if !sess.Role.Faculty() {
		return 0, fmt.Errorf("%w: role cannot create assignments", shared.ErrForbidden)
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

	id, err := s.store.Create(ctx, input.CourseID, departmentID, sess.UserID, input)
	if err != nil {
		return 0, err
	}
	if s.reminders != nil {
		if err := s.reminders.EnqueueDueReminder(ctx, id, input.DueAt); err != nil {
			// Reminders are best effort; the assignment itself is saved.
			s.logger.Warn("enqueue due reminder failed", "assignmentId", id, "error", err)
		}
	}
	return id, nil
}

// UploadTicket hands a student a destination for a submission file. The file
// key is random so resubmissions never clobber another student's upload.
func (s *Service) UploadTicket(ctx context.Context, sess *authz.Session, assignmentID int64, fileName string) (*UploadTicket, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	if sess.Role != authz.RoleStudent {
		return nil, fmt.Errorf("%w: only students submit files", shared.ErrForbidden)
	}
	ok, err := s.store.Exists(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrNotFound
	}

	key := uuid.NewString() + path.Ext(fileName)
	return &UploadTicket{
		UploadURL: fmt.Sprintf("/api/upload?key=%s", key),
		FileURL:   fmt.Sprintf("/uploads/assignments/%d/%s", assignmentID, key),
	}, nil
}
