package calendar

import "time"

// EventType classifies a calendar event.
type EventType string

const (
	EventHoliday EventType = "HOLIDAY"
	EventGeneral EventType = "EVENT"
	EventExam    EventType = "EXAM"
)

// Event is a department or college-wide calendar event. DepartmentID zero
// means college-wide.
type Event struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	Type         EventType `json:"type"`
	DepartmentID int64     `json:"departmentId,omitempty"`
}

// Entry is one item in the merged calendar feed, shaped for the calendar
// widget on the hub.
type Entry struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Start           time.Time  `json:"start"`
	End             *time.Time `json:"end,omitempty"`
	AllDay          bool       `json:"allDay,omitempty"`
	BackgroundColor string     `json:"backgroundColor"`
	BorderColor     string     `json:"borderColor"`
}

// CreateInput carries a new event request.
type CreateInput struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
	Type        EventType `json:"type" validate:"required,oneof=HOLIDAY EVENT EXAM"`
}

// FeedLecture and FeedAssignment are the rows the feed merges in.
type FeedLecture struct {
	ID              int64
	CourseCode      string
	CourseName      string
	StartsAt        time.Time
	DurationMinutes int
}

type FeedAssignment struct {
	ID    int64
	Title string
	DueAt time.Time
}
