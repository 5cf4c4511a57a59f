package calendar

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/campushub/internal/shared"
)

// Repository provides PostgreSQL backed persistence for calendar events.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// LecturesByDepartment returns the lecture rows the feed merges in.
func (r *Repository) LecturesByDepartment(ctx context.Context, departmentID int64) ([]FeedLecture, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.id, c.code, c.name, l.starts_at, l.duration_minutes
		FROM lectures l
		JOIN courses c ON c.id = l.course_id
		WHERE l.department_id = $1`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []FeedLecture
	for rows.Next() {
		var l FeedLecture
		if err := rows.Scan(&l.ID, &l.CourseCode, &l.CourseName, &l.StartsAt, &l.DurationMinutes); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// AssignmentsByDepartment returns the assignment rows the feed merges in.
func (r *Repository) AssignmentsByDepartment(ctx context.Context, departmentID int64) ([]FeedAssignment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, due_at FROM assignments WHERE department_id = $1`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []FeedAssignment
	for rows.Next() {
		var a FeedAssignment
		if err := rows.Scan(&a.ID, &a.Title, &a.DueAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// EventsForDepartment returns college-wide events plus the department's own.
func (r *Repository) EventsForDepartment(ctx context.Context, departmentID int64) ([]Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, date, type, COALESCE(department_id, 0)
		FROM events
		WHERE department_id IS NULL OR department_id = $1`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Type, &e.DepartmentID); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CreateEvent inserts a department event and returns it.
func (r *Repository) CreateEvent(ctx context.Context, departmentID int64, input CreateInput) (*Event, error) {
	var e Event
	err := r.pool.QueryRow(ctx, `
		INSERT INTO events (title, description, date, type, department_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, description, date, type, COALESCE(department_id, 0)`,
		input.Title, input.Description, input.Date, input.Type, departmentID).
		Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Type, &e.DepartmentID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}
