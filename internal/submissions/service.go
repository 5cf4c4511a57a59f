package submissions

import (
	"context"
	"fmt"

	"github.com/campushub/campushub/internal/authz"
	"github.com/campushub/campushub/internal/shared"
)

// Store is the persistence contract the service depends on.
type Store interface {
	ListByStudent(ctx context.Context, studentID int64) ([]Submission, error)
	GradedByStudent(ctx context.Context, studentID int64) ([]Submission, error)
	ListByAssignment(ctx context.Context, assignmentID int64) ([]Submission, error)
	AssignmentFacts(ctx context.Context, assignmentID int64) (facultyID, departmentID int64, err error)
	Upsert(ctx context.Context, assignmentID, studentID int64, fileURL string) (*Submission, error)
	Facts(ctx context.Context, submissionID int64) (*GradingFacts, error)
	SetGrade(ctx context.Context, submissionID int64, grade int) (*Submission, error)
	SharedDepartmentID(ctx context.Context, name string) (int64, error)
}

// Service applies submission and grading rules.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListOwn returns the calling student's submissions. Other roles get an
// empty list rather than an error; their view lives under the assignment.
func (s *Service) ListOwn(ctx context.Context, sess *authz.Session) ([]Submission, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	if sess.Role != authz.RoleStudent {
		return []Submission{}, nil
	}
	return s.store.ListByStudent(ctx, sess.UserID)
}

// Grades returns the calling student's graded submissions with course
// context.
func (s *Service) Grades(ctx context.Context, sess *authz.Session) ([]Submission, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	if sess.Role != authz.RoleStudent {
		return nil, fmt.Errorf("%w: grades view is student only", shared.ErrForbidden)
	}
	return s.store.GradedByStudent(ctx, sess.UserID)
}

// Submit records a student's answer. Resubmission replaces the file. An
// assignment outside the student's reach reads as absent, not forbidden.
func (s *Service) Submit(ctx context.Context, sess *authz.Session, assignmentID int64, fileURL string) (*Submission, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	if sess.Role != authz.RoleStudent {
		return nil, fmt.Errorf("%w: only students submit", shared.ErrForbidden)
	}

	_, departmentID, err := s.store.AssignmentFacts(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	reachable := departmentID == sess.DepartmentID
	if !reachable {
		sharedID, err := s.store.SharedDepartmentID(ctx, authz.SharedCohortDepartment)
		if err != nil {
			return nil, err
		}
		reachable = sharedID != 0 && departmentID == sharedID
	}
	if !reachable {
		return nil, shared.ErrNotFound
	}

	return s.store.Upsert(ctx, assignmentID, sess.UserID, fileURL)
}

// canGrade is the role gate shared by grading and the per-assignment
// submission listing. Ownership is re-checked against fresh facts after.
func canGrade(sess *authz.Session) bool {
	return sess.Role.Faculty() || sess.Role == authz.RolePrincipal
}

// Grade stores a grade on a submission after re-reading the parent
// assignment's ownership facts.
func (s *Service) Grade(ctx context.Context, sess *authz.Session, submissionID int64, grade int) (*Submission, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	if !canGrade(sess) {
		return nil, fmt.Errorf("%w: role cannot grade submissions", shared.ErrForbidden)
	}

	facts, err := s.store.Facts(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	decision := authz.Authorize(sess, authz.GradeSubmission{
		AssignmentFacultyID:    facts.AssignmentFacultyID,
		AssignmentDepartmentID: facts.AssignmentDepartmentID,
	})
	if !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", shared.ErrForbidden, decision.Reason)
	}

	return s.store.SetGrade(ctx, submissionID, grade)
}

// ListForAssignment returns an assignment's submissions for whoever may
// grade them.
func (s *Service) ListForAssignment(ctx context.Context, sess *authz.Session, assignmentID int64) ([]Submission, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	if !canGrade(sess) {
		return nil, fmt.Errorf("%w: role cannot view submissions", shared.ErrForbidden)
	}

	facultyID, departmentID, err := s.store.AssignmentFacts(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	decision := authz.Authorize(sess, authz.GradeSubmission{
		AssignmentFacultyID:    facultyID,
		AssignmentDepartmentID: departmentID,
	})
	if !decision.Allowed {
		return nil, fmt.Errorf("%w: %s", shared.ErrForbidden, decision.Reason)
	}

	return s.store.ListByAssignment(ctx, assignmentID)
}
