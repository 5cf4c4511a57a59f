package admin

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for college-wide views.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

// CountStudents returns the number of student users.
func (r *Repository) CountStudents(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM users WHERE role = 'STUDENT'`)
}

// CountProfessors returns the number of professor users.
func (r *Repository) CountProfessors(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM users WHERE role = 'PROFESSOR'`)
}

// CountDepartments returns the number of departments.
func (r *Repository) CountDepartments(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM departments`)
}

// CountPastLectures returns the number of lectures that already started.
func (r *Repository) CountPastLectures(ctx context.Context, now time.Time) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM lectures WHERE starts_at <= $1`, now)
}

// CountPresentAttendance returns the number of present attendance marks.
func (r *Repository) CountPresentAttendance(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM attendance WHERE present`)
}

// DepartmentSummaries lists every department with its HOD and student count.
func (r *Repository) DepartmentSummaries(ctx context.Context) ([]DepartmentSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.name,
		       COALESCE((SELECT u.name FROM users u WHERE u.department_id = d.id AND u.role = 'HOD' LIMIT 1), 'N/A'),
		       (SELECT count(*) FROM users u WHERE u.department_id = d.id AND u.role = 'STUDENT')
		FROM departments d
		ORDER BY d.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DepartmentSummary
	for rows.Next() {
		var s DepartmentSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.HOD, &s.StudentCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListStudents returns every student with department context, ordered by name.
func (r *Repository) ListStudents(ctx context.Context) ([]StudentRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name, u.email, s.roll_no, s.year, s.section, COALESCE(d.name, '')
		FROM users u
		JOIN students s ON s.user_id = u.id
		LEFT JOIN departments d ON d.id = u.department_id
		WHERE u.role = 'STUDENT'
		ORDER BY u.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StudentRow
	for rows.Next() {
		var row StudentRow
		if err := rows.Scan(&row.UserID, &row.Name, &row.Email, &row.RollNo, &row.Year, &row.Section, &row.DepartmentName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListFaculty returns every professor and HOD with department context.
func (r *Repository) ListFaculty(ctx context.Context) ([]FacultyRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.name, u.email, u.role, COALESCE(f.designation, ''), COALESCE(d.name, '')
		FROM users u
		LEFT JOIN faculty f ON f.user_id = u.id
		LEFT JOIN departments d ON d.id = u.department_id
		WHERE u.role IN ('PROFESSOR', 'HOD')
		ORDER BY u.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []FacultyRow
	for rows.Next() {
		var row FacultyRow
		if err := rows.Scan(&row.UserID, &row.Name, &row.Email, &row.Role, &row.Designation, &row.DepartmentName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
