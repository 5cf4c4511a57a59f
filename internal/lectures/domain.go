package lectures

import "time"

// Lecture is a scheduled class session for a course.
type Lecture struct {
	ID              int64     `json:"id"`
	CourseID        int64     `json:"courseId"`
	CourseCode      string    `json:"courseCode"`
	CourseName      string    `json:"courseName"`
	DepartmentID    int64     `json:"departmentId"`
	DepartmentName  string    `json:"departmentName"`
	FacultyID       int64     `json:"facultyId"`
	FacultyName     string    `json:"facultyName"`
	Topic           string    `json:"topic"`
	StartsAt        time.Time `json:"startsAt"`
	DurationMinutes int       `json:"durationMinutes"`
}

// RosterStudent is a student listed for attendance marking.
type RosterStudent struct {
	UserID  int64  `json:"userId"`
	Name    string `json:"name"`
	RollNo  string `json:"rollNo"`
	Year    int    `json:"year"`
	Section string `json:"section"`
}

// Detail is a lecture with the students eligible to attend it.
type Detail struct {
	Lecture
	Students []RosterStudent `json:"students"`
}

// Mark is a single attendance entry in a bulk submission.
type Mark struct {
	StudentID int64 `json:"studentId" validate:"required"`
	Present   bool  `json:"status"`
}

// AttendanceRecord is a student's own attendance entry with lecture context.
type AttendanceRecord struct {
	LectureID  int64     `json:"lectureId"`
	Topic      string    `json:"topic"`
	StartsAt   time.Time `json:"startsAt"`
	CourseCode string    `json:"courseCode"`
	CourseName string    `json:"courseName"`
	Present    bool      `json:"present"`
}

// CreateInput carries a new lecture request.
type CreateInput struct {
	CourseID        int64     `json:"courseId" validate:"required"`
	Topic           string    `json:"topic" validate:"required"`
	StartsAt        time.Time `json:"startsAt" validate:"required"`
	DurationMinutes int       `json:"durationMinutes" validate:"required,min=1,max=480"`
}
