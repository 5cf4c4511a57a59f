package submissions

import "time"

// Submission is a student's uploaded answer to an assignment. The joined
// assignment, course and student fields are filled where the listing needs
// them.
type Submission struct {
	ID              int64     `json:"id"`
	AssignmentID    int64     `json:"assignmentId"`
	StudentID       int64     `json:"studentId"`
	StudentName     string    `json:"studentName,omitempty"`
	FileURL         string    `json:"fileUrl"`
	SubmittedAt     time.Time `json:"submittedAt"`
	Grade           *int      `json:"grade"`
	AssignmentTitle string    `json:"assignmentTitle,omitempty"`
	AssignmentDueAt time.Time `json:"assignmentDueDate,omitzero"`
	CourseCode      string    `json:"courseCode,omitempty"`
	CourseName      string    `json:"courseName,omitempty"`
}

// GradingFacts are the ownership facts needed to authorize grading, read
// fresh at decision time.
type GradingFacts struct {
	SubmissionID           int64
	AssignmentFacultyID    int64
	AssignmentDepartmentID int64
}
