package departments

import "time"

// StudentMember is a student row in a department listing.
type StudentMember struct {
	UserID  int64  `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	RollNo  string `json:"rollNo"`
	Year    int    `json:"year"`
	Section string `json:"section"`
}

// FacultyMember is a professor row in a department listing.
type FacultyMember struct {
	UserID      int64  `json:"userId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Designation string `json:"designation"`
}

// Overview is a department's people, as shown to its HOD or the principal.
type Overview struct {
	DepartmentName string          `json:"departmentName"`
	Students       []StudentMember `json:"students"`
	Faculty        []FacultyMember `json:"faculty"`
}

// StudentProfile is a student with department context, fetched before the
// ownership check so absence reads as 404.
type StudentProfile struct {
	StudentMember
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
}

// AttendanceEntry is one attendance row in a student's academic record.
type AttendanceEntry struct {
	LectureID  int64     `json:"lectureId"`
	Topic      string    `json:"topic"`
	StartsAt   time.Time `json:"startsAt"`
	CourseCode string    `json:"courseCode"`
	CourseName string    `json:"courseName"`
	Present    bool      `json:"present"`
}

// SubmissionEntry is one submission row in a student's academic record.
type SubmissionEntry struct {
	SubmissionID    int64     `json:"submissionId"`
	AssignmentTitle string    `json:"assignmentTitle"`
	DueAt           time.Time `json:"dueDate"`
	CourseCode      string    `json:"courseCode"`
	CourseName      string    `json:"courseName"`
	SubmittedAt     time.Time `json:"submittedAt"`
	Grade           *int      `json:"grade"`
}

// StudentRecord is the full academic record behind the student detail page.
type StudentRecord struct {
	Student     StudentProfile    `json:"student"`
	Attendance  []AttendanceEntry `json:"attendance"`
	Submissions []SubmissionEntry `json:"submissions"`
}
