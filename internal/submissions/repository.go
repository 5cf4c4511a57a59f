package submissions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/campushub/internal/shared"
)

// Repository provides PostgreSQL backed persistence for submissions.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByStudent returns a student's submissions, newest first, with the
// parent assignment's title and due date.
func (r *Repository) ListByStudent(ctx context.Context, studentID int64) ([]Submission, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.assignment_id, s.student_id, s.file_url, s.submitted_at, s.grade,
		       a.title, a.due_at
		FROM submissions s
		JOIN assignments a ON a.id = s.assignment_id
		WHERE s.student_id = $1
		ORDER BY s.submitted_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.FileURL, &s.SubmittedAt,
			&s.Grade, &s.AssignmentTitle, &s.AssignmentDueAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GradedByStudent returns a student's graded submissions with course context,
// ordered by assignment due date descending.
func (r *Repository) GradedByStudent(ctx context.Context, studentID int64) ([]Submission, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.assignment_id, s.student_id, s.file_url, s.submitted_at, s.grade,
		       a.title, a.due_at, c.code, c.name
		FROM submissions s
		JOIN assignments a ON a.id = s.assignment_id
		JOIN courses c ON c.id = a.course_id
		WHERE s.student_id = $1 AND s.grade IS NOT NULL
		ORDER BY a.due_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.FileURL, &s.SubmittedAt,
			&s.Grade, &s.AssignmentTitle, &s.AssignmentDueAt, &s.CourseCode, &s.CourseName); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListByAssignment returns an assignment's submissions with student names,
// newest first.
func (r *Repository) ListByAssignment(ctx context.Context, assignmentID int64) ([]Submission, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.assignment_id, s.student_id, u.name, s.file_url, s.submitted_at, s.grade
		FROM submissions s
		JOIN users u ON u.id = s.student_id
		WHERE s.assignment_id = $1
		ORDER BY s.submitted_at DESC`, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.StudentName,
			&s.FileURL, &s.SubmittedAt, &s.Grade); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// AssignmentFacts returns an assignment's faculty and department.
func (r *Repository) AssignmentFacts(ctx context.Context, assignmentID int64) (facultyID, departmentID int64, err error) {
	err = r.pool.QueryRow(ctx, `SELECT faculty_id, department_id FROM assignments WHERE id = $1`, assignmentID).
		Scan(&facultyID, &departmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, shared.ErrNotFound
		}
		return 0, 0, err
	}
	return facultyID, departmentID, nil
}

// Upsert records a submission, replacing the file and timestamp when the
// student resubmits. An existing grade is kept until re-graded.
func (r *Repository) Upsert(ctx context.Context, assignmentID, studentID int64, fileURL string) (*Submission, error) {
	var s Submission
	err := r.pool.QueryRow(ctx, `
		INSERT INTO submissions (assignment_id, student_id, file_url, submitted_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (assignment_id, student_id)
		DO UPDATE SET file_url = EXCLUDED.file_url, submitted_at = now()
		RETURNING id, assignment_id, student_id, file_url, submitted_at, grade`,
		assignmentID, studentID, fileURL).
		Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.FileURL, &s.SubmittedAt, &s.Grade)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Facts returns the ownership facts for grading a submission.
func (r *Repository) Facts(ctx context.Context, submissionID int64) (*GradingFacts, error) {
	var f GradingFacts
	err := r.pool.QueryRow(ctx, `
		SELECT s.id, a.faculty_id, a.department_id
		FROM submissions s
		JOIN assignments a ON a.id = s.assignment_id
		WHERE s.id = $1`, submissionID).
		Scan(&f.SubmissionID, &f.AssignmentFacultyID, &f.AssignmentDepartmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// SetGrade stores a grade and returns the updated submission.
func (r *Repository) SetGrade(ctx context.Context, submissionID int64, grade int) (*Submission, error) {
	var s Submission
	err := r.pool.QueryRow(ctx, `
		UPDATE submissions SET grade = $2 WHERE id = $1
		RETURNING id, assignment_id, student_id, file_url, submitted_at, grade`,
		submissionID, grade).
		Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.FileURL, &s.SubmittedAt, &s.Grade)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// SharedDepartmentID returns the ID of the named shared department, or zero
// when it is not provisioned.
func (r *Repository) SharedDepartmentID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM departments WHERE name = $1`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return id, nil
}
