package assignments

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/campushub/internal/shared"
)

// Repository provides PostgreSQL backed persistence for assignments.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const assignmentColumns = `
	a.id, a.title, a.description, a.due_at, a.course_id, c.code, c.name,
	a.department_id, a.faculty_id
	FROM assignments a
	JOIN courses c ON c.id = a.course_id`

func scanAssignments(rows pgx.Rows) ([]Assignment, error) {
	defer rows.Close()
	var out []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.DueAt, &a.CourseID,
			&a.CourseCode, &a.CourseName, &a.DepartmentID, &a.FacultyID); err != nil {
			return nil, err
		}
		a.Submissions = []SubmissionBrief{}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListByDepartments returns assignments for the given departments ordered by
// due date, each carrying the student's own submission when one exists.
func (r *Repository) ListByDepartments(ctx context.Context, departmentIDs []int64, studentID int64) ([]Assignment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+assignmentColumns+`
		WHERE a.department_id = ANY($1) ORDER BY a.due_at ASC`, departmentIDs)
	if err != nil {
		return nil, err
	}
	list, err := scanAssignments(rows)
	if err != nil {
		return nil, err
	}
	return r.attachOwnSubmissions(ctx, list, studentID)
}

func (r *Repository) attachOwnSubmissions(ctx context.Context, list []Assignment, studentID int64) ([]Assignment, error) {
	if len(list) == 0 {
		return list, nil
	}
	ids := make([]int64, len(list))
	index := make(map[int64]int, len(list))
	for i, a := range list {
		ids[i] = a.ID
		index[a.ID] = i
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, assignment_id, file_url, submitted_at, grade
		FROM submissions
		WHERE student_id = $1 AND assignment_id = ANY($2)`, studentID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s SubmissionBrief
		var assignmentID int64
		if err := rows.Scan(&s.ID, &assignmentID, &s.FileURL, &s.SubmittedAt, &s.Grade); err != nil {
			return nil, err
		}
		if i, ok := index[assignmentID]; ok {
			list[i].Submissions = append(list[i].Submissions, s)
		}
	}
	return list, rows.Err()
}

// ListByFaculty returns the assignments handed out by a faculty member.
func (r *Repository) ListByFaculty(ctx context.Context, facultyID int64) ([]Assignment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+assignmentColumns+`
		WHERE a.faculty_id = $1 ORDER BY a.due_at ASC`, facultyID)
	if err != nil {
		return nil, err
	}
	return scanAssignments(rows)
}

// DueByDepartments returns upcoming assignments for the given departments.
func (r *Repository) DueByDepartments(ctx context.Context, departmentIDs []int64, now time.Time, limit int) ([]Assignment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+assignmentColumns+`
		WHERE a.department_id = ANY($1) AND a.due_at >= $2
		ORDER BY a.due_at ASC LIMIT $3`, departmentIDs, now, limit)
	if err != nil {
		return nil, err
	}
	return scanAssignments(rows)
}

// DueByFaculty returns a faculty member's upcoming assignments.
func (r *Repository) DueByFaculty(ctx context.Context, facultyID int64, now time.Time, limit int) ([]Assignment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+assignmentColumns+`
		WHERE a.faculty_id = $1 AND a.due_at >= $2
		ORDER BY a.due_at ASC LIMIT $3`, facultyID, now, limit)
	if err != nil {
		return nil, err
	}
	return scanAssignments(rows)
}

// CourseFacts returns the assigned faculty and department of a course.
func (r *Repository) CourseFacts(ctx context.Context, courseID int64) (facultyID, departmentID int64, err error) {
	err = r.pool.QueryRow(ctx, `SELECT faculty_id, department_id FROM courses WHERE id = $1`, courseID).
		Scan(&facultyID, &departmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, shared.ErrNotFound
		}
		return 0, 0, err
	}
	return facultyID, departmentID, nil
}

// Create inserts an assignment and returns its ID.
func (r *Repository) Create(ctx context.Context, courseID, departmentID, facultyID int64, input CreateInput) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO assignments (title, description, due_at, course_id, department_id, faculty_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		input.Title, input.Description, input.DueAt, courseID, departmentID, facultyID).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return 0, shared.ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

// Exists reports whether an assignment with the given ID exists.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM assignments WHERE id = $1)`, id).Scan(&ok)
	return ok, err
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
