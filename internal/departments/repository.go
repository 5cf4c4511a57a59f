package departments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/campushub/internal/shared"
)

// Repository provides PostgreSQL backed persistence for department views.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Name returns a department's name.
func (r *Repository) Name(ctx context.Context, id int64) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx, `SELECT name FROM departments WHERE id = $1`, id).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return name, nil
}

// StudentsByDepartment lists a department's students ordered by name.
func (r *Repository) StudentsByDepartment(ctx context.Context, departmentID int64) ([]StudentMember, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name, u.email, s.roll_no, s.year, s.section
		FROM users u
		JOIN students s ON s.user_id = u.id
		WHERE u.department_id = $1 AND u.role = 'STUDENT'
		ORDER BY u.name`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StudentMember
	for rows.Next() {
		var m StudentMember
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.RollNo, &m.Year, &m.Section); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// FacultyByDepartment lists a department's professors ordered by name.
func (r *Repository) FacultyByDepartment(ctx context.Context, departmentID int64) ([]FacultyMember, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name, u.email, f.designation
		FROM users u
		JOIN faculty f ON f.user_id = u.id
		WHERE u.department_id = $1 AND u.role = 'PROFESSOR'
		ORDER BY u.name`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []FacultyMember
	for rows.Next() {
		var m FacultyMember
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.Designation); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// StudentProfile fetches a student with department context.
func (r *Repository) StudentProfile(ctx context.Context, studentID int64) (*StudentProfile, error) {
	var p StudentProfile
	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.name, u.email, s.roll_no, s.year, s.section, u.department_id, d.name
		FROM users u
		JOIN students s ON s.user_id = u.id
		JOIN departments d ON d.id = u.department_id
		WHERE u.id = $1 AND u.role = 'STUDENT'`, studentID).
		Scan(&p.UserID, &p.Name, &p.Email, &p.RollNo, &p.Year, &p.Section, &p.DepartmentID, &p.DepartmentName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// AttendanceByStudent returns a student's attendance with course context.
func (r *Repository) AttendanceByStudent(ctx context.Context, studentID int64) ([]AttendanceEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.id, l.topic, l.starts_at, c.code, c.name, a.present
		FROM attendance a
		JOIN lectures l ON l.id = a.lecture_id
		JOIN courses c ON c.id = l.course_id
		WHERE a.student_id = $1
		ORDER BY l.starts_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AttendanceEntry
	for rows.Next() {
		var e AttendanceEntry
		if err := rows.Scan(&e.LectureID, &e.Topic, &e.StartsAt, &e.CourseCode, &e.CourseName, &e.Present); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SubmissionsByStudent returns a student's submissions with course context.
func (r *Repository) SubmissionsByStudent(ctx context.Context, studentID int64) ([]SubmissionEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, a.title, a.due_at, c.code, c.name, s.submitted_at, s.grade
		FROM submissions s
		JOIN assignments a ON a.id = s.assignment_id
		JOIN courses c ON c.id = a.course_id
		WHERE s.student_id = $1
		ORDER BY s.submitted_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SubmissionEntry
	for rows.Next() {
		var e SubmissionEntry
		if err := rows.Scan(&e.SubmissionID, &e.AssignmentTitle, &e.DueAt, &e.CourseCode, &e.CourseName, &e.SubmittedAt, &e.Grade); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
