package courses

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/campushub/internal/shared"
)

// Repository provides PostgreSQL backed persistence for courses.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const courseColumns = `
	c.id, c.code, c.name, c.department_id, d.name, c.faculty_id, u.name
	FROM courses c
	JOIN departments d ON d.id = c.department_id
	JOIN users u ON u.id = c.faculty_id`

func (r *Repository) scanCourses(rows pgx.Rows) ([]Course, error) {
	defer rows.Close()
	var out []Course
	for rows.Next() {
		var c Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.DepartmentID, &c.DepartmentName, &c.FacultyID, &c.FacultyName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListByDepartment returns the department's courses ordered by name.
func (r *Repository) ListByDepartment(ctx context.Context, departmentID int64) ([]Course, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+courseColumns+` WHERE c.department_id = $1 ORDER BY c.name`, departmentID)
	if err != nil {
		return nil, err
	}
	return r.scanCourses(rows)
}

// ListByFaculty returns the courses assigned to a faculty member.
func (r *Repository) ListByFaculty(ctx context.Context, facultyID int64) ([]Course, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+courseColumns+` WHERE c.faculty_id = $1 ORDER BY c.name`, facultyID)
	if err != nil {
		return nil, err
	}
	return r.scanCourses(rows)
}

// ListAll returns every course in the college.
func (r *Repository) ListAll(ctx context.Context) ([]Course, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+courseColumns+` ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	return r.scanCourses(rows)
}

// Get fetches a course by ID.
func (r *Repository) Get(ctx context.Context, id int64) (*Course, error) {
	var c Course
	err := r.pool.QueryRow(ctx, `SELECT `+courseColumns+` WHERE c.id = $1`, id).
		Scan(&c.ID, &c.Code, &c.Name, &c.DepartmentID, &c.DepartmentName, &c.FacultyID, &c.FacultyName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

const rosterColumns = `
	s.user_id, u.name, s.roll_no, s.year, s.section, u.department_id
	FROM students s
	JOIN users u ON u.id = s.user_id`

func (r *Repository) scanRoster(rows pgx.Rows) ([]RosterStudent, error) {
	defer rows.Close()
	var out []RosterStudent
	for rows.Next() {
		var s RosterStudent
		if err := rows.Scan(&s.UserID, &s.Name, &s.RollNo, &s.Year, &s.Section, &s.DepartmentID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// RosterByDepartment lists all students registered in a department.
func (r *Repository) RosterByDepartment(ctx context.Context, departmentID int64) ([]RosterStudent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+rosterColumns+` WHERE u.department_id = $1 ORDER BY u.name`, departmentID)
	if err != nil {
		return nil, err
	}
	return r.scanRoster(rows)
}

// SharedFirstYearRoster lists first-year students across the pooled
// departments attending the shared track.
func (r *Repository) SharedFirstYearRoster(ctx context.Context, pool []string) ([]RosterStudent, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+rosterColumns+`
		JOIN departments d ON d.id = u.department_id
		WHERE s.year = 1 AND d.name = ANY($1)
		ORDER BY u.name`, pool)
	if err != nil {
		return nil, err
	}
	return r.scanRoster(rows)
}
