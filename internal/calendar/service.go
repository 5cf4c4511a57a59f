package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/campushub/campushub/internal/authz"
	"github.com/campushub/campushub/internal/shared"
)

// Widget colors for the merged feed, matching the hub calendar's legend.
const (
	colorLecture    = "#3b82f6"
	colorAssignment = "#f97316"
	colorHoliday    = "#16a34a"
	colorEvent      = "#9333ea"
)

// Store is the persistence contract the service depends on.
type Store interface {
	LecturesByDepartment(ctx context.Context, departmentID int64) ([]FeedLecture, error)
	AssignmentsByDepartment(ctx context.Context, departmentID int64) ([]FeedAssignment, error)
	EventsForDepartment(ctx context.Context, departmentID int64) ([]Event, error)
	CreateEvent(ctx context.Context, departmentID int64, input CreateInput) (*Event, error)
}

// Service merges lectures, assignment deadlines and events into one feed.
type Service struct {
	store Store
}

// NewService constructs a Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Feed returns the session's merged calendar: department lectures,
// assignment due dates, and college-wide plus department events. A session
// with no department gets an empty feed.
func (s *Service) Feed(ctx context.Context, sess *authz.Session) ([]Entry, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	if sess.DepartmentID == 0 {
		return []Entry{}, nil
	}

	lectures, err := s.store.LecturesByDepartment(ctx, sess.DepartmentID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.store.AssignmentsByDepartment(ctx, sess.DepartmentID)
	if err != nil {
		return nil, err
	}
	events, err := s.store.EventsForDepartment(ctx, sess.DepartmentID)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(lectures)+len(assignments)+len(events))
	for _, l := range lectures {
		end := l.StartsAt.Add(time.Duration(l.DurationMinutes) * time.Minute)
		entries = append(entries, Entry{
			ID:              fmt.Sprintf("lecture-%d", l.ID),
			Title:           fmt.Sprintf("%s: %s", l.CourseCode, l.CourseName),
			Start:           l.StartsAt,
			End:             &end,
			BackgroundColor: colorLecture,
			BorderColor:     colorLecture,
		})
	}
	for _, a := range assignments {
		entries = append(entries, Entry{
			ID:              fmt.Sprintf("assignment-%d", a.ID),
			Title:           "Due: " + a.Title,
			Start:           a.DueAt,
			AllDay:          true,
			BackgroundColor: colorAssignment,
			BorderColor:     colorAssignment,
		})
	}
	for _, e := range events {
		color := colorEvent
		if e.Type == EventHoliday {
			color = colorHoliday
		}
		entries = append(entries, Entry{
			ID:              fmt.Sprintf("event-%d", e.ID),
			Title:           e.Title,
			Start:           e.Date,
			AllDay:          true,
			BackgroundColor: color,
			BorderColor:     color,
		})
	}
	return entries, nil
}

// CreateEvent records a department event. Only faculty with a department
// may create one; the event lands in their own department.
func (s *Service) CreateEvent(ctx context.Context, sess *authz.Session, input CreateInput) (*Event, error) {
	if sess == nil {
		return nil, shared.ErrUnauthorized
	}
	if !sess.Role.Faculty() {
		return nil, fmt.Errorf("%w: role cannot create events", shared.ErrForbidden)
	}
	if sess.DepartmentID == 0 {
		return nil, shared.ErrNoDepartment
	}
	return s.store.CreateEvent(ctx, sess.DepartmentID, input)
}
