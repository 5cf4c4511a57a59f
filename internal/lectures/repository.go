package lectures

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campushub/campushub/internal/platform/db"
	"github.com/campushub/campushub/internal/shared"
)

// Repository provides PostgreSQL backed persistence for lectures and
// attendance.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const lectureColumns = `
	l.id, l.course_id, c.code, c.name, l.department_id, d.name, l.faculty_id, u.name,
	l.topic, l.starts_at, l.duration_minutes
	FROM lectures l
	JOIN courses c ON c.id = l.course_id
	JOIN departments d ON d.id = l.department_id
	JOIN users u ON u.id = l.faculty_id`

func scanLectures(rows pgx.Rows) ([]Lecture, error) {
	defer rows.Close()
	var out []Lecture
	for rows.Next() {
		var l Lecture
		if err := rows.Scan(&l.ID, &l.CourseID, &l.CourseCode, &l.CourseName, &l.DepartmentID, &l.DepartmentName,
			&l.FacultyID, &l.FacultyName, &l.Topic, &l.StartsAt, &l.DurationMinutes); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListByDepartments returns lectures for any of the given departments,
// soonest first. Used for student schedules including the shared track.
func (r *Repository) ListByDepartments(ctx context.Context, departmentIDs []int64) ([]Lecture, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+lectureColumns+` WHERE l.department_id = ANY($1) ORDER BY l.starts_at`, departmentIDs)
	if err != nil {
		return nil, err
	}
	return scanLectures(rows)
}

// ListByFaculty returns lectures owned by the faculty member.
func (r *Repository) ListByFaculty(ctx context.Context, facultyID int64) ([]Lecture, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+lectureColumns+` WHERE l.faculty_id = $1 ORDER BY l.starts_at`, facultyID)
	if err != nil {
		return nil, err
	}
	return scanLectures(rows)
}

// UpcomingByDepartments returns the next lectures for the departments.
func (r *Repository) UpcomingByDepartments(ctx context.Context, departmentIDs []int64, limit int) ([]Lecture, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+lectureColumns+` WHERE l.department_id = ANY($1) AND l.starts_at >= NOW() ORDER BY l.starts_at LIMIT $2`,
		departmentIDs, limit)
	if err != nil {
		return nil, err
	}
	return scanLectures(rows)
}

// UpcomingByFaculty returns the faculty member's next lectures.
func (r *Repository) UpcomingByFaculty(ctx context.Context, facultyID int64, limit int) ([]Lecture, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+lectureColumns+` WHERE l.faculty_id = $1 AND l.starts_at >= NOW() ORDER BY l.starts_at LIMIT $2`,
		facultyID, limit)
	if err != nil {
		return nil, err
	}
	return scanLectures(rows)
}

// Get fetches a lecture by ID.
func (r *Repository) Get(ctx context.Context, id int64) (*Lecture, error) {
	var l Lecture
	err := r.pool.QueryRow(ctx, `SELECT `+lectureColumns+` WHERE l.id = $1`, id).
		Scan(&l.ID, &l.CourseID, &l.CourseCode, &l.CourseName, &l.DepartmentID, &l.DepartmentName,
			&l.FacultyID, &l.FacultyName, &l.Topic, &l.StartsAt, &l.DurationMinutes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// Create inserts a lecture inheriting department and faculty from its course.
func (r *Repository) Create(ctx context.Context, courseID, departmentID, facultyID int64, input CreateInput) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO lectures (course_id, department_id, faculty_id, topic, starts_at, duration_minutes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		courseID, departmentID, facultyID, input.Topic, input.StartsAt.UTC(), input.DurationMinutes,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			// Referenced course vanished between the ownership check and the
			// insert.
			return 0, shared.ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

// CourseFacts returns the owning faculty and department of a course, read
// fresh for the authorization decision.
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

// RosterByDepartment lists the department's students for attendance marking.
func (r *Repository) RosterByDepartment(ctx context.Context, departmentID int64) ([]RosterStudent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.user_id, u.name, s.roll_no, s.year, s.section
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE u.department_id = $1
		ORDER BY u.name`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RosterStudent
	for rows.Next() {
		var s RosterStudent
		if err := rows.Scan(&s.UserID, &s.Name, &s.RollNo, &s.Year, &s.Section); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SaveAttendance bulk-inserts attendance marks for a lecture in one
// transaction. Rows already present are silently discarded so re-marking an
// already taken lecture repairs data instead of erroring.
func (r *Repository) SaveAttendance(ctx context.Context, lectureID int64, marks []Mark) (int64, error) {
	var inserted int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, m := range marks {
			tag, err := tx.Exec(ctx, `
				INSERT INTO attendance (lecture_id, student_id, present)
				VALUES ($1, $2, $3)
				ON CONFLICT (lecture_id, student_id) DO NOTHING`,
				lectureID, m.StudentID, m.Present)
			if err != nil {
				return err
			}
			inserted += tag.RowsAffected()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// AttendanceByStudent returns the student's attendance history, most recent
// lecture first.
func (r *Repository) AttendanceByStudent(ctx context.Context, studentID int64) ([]AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.lecture_id, l.topic, l.starts_at, c.code, c.name, a.present
		FROM attendance a
		JOIN lectures l ON l.id = a.lecture_id
		JOIN courses c ON c.id = l.course_id
		WHERE a.student_id = $1
		ORDER BY l.starts_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []AttendanceRecord
	for rows.Next() {
		var rec AttendanceRecord
		if err := rows.Scan(&rec.LectureID, &rec.Topic, &rec.StartsAt, &rec.CourseCode, &rec.CourseName, &rec.Present); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SharedDepartmentID resolves the shared first-year department's ID, zero
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
