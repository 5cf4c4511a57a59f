package assignments

import "time"

// Assignment is a homework item handed out for a course.
type Assignment struct {
	ID           int64             `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	DueAt        time.Time         `json:"dueDate"`
	CourseID     int64             `json:"courseId"`
	CourseCode   string            `json:"courseCode"`
	CourseName   string            `json:"courseName"`
	DepartmentID int64             `json:"departmentId"`
	FacultyID    int64             `json:"facultyId"`
	Submissions  []SubmissionBrief `json:"submissions"`
}

// SubmissionBrief is the caller's own submission attached to an assignment
// listing. Faculty listings carry none.
type SubmissionBrief struct {
	ID          int64     `json:"id"`
	FileURL     string    `json:"fileUrl"`
	SubmittedAt time.Time `json:"submittedAt"`
	Grade       *int      `json:"grade"`
}

// CreateInput carries a new assignment request.
type CreateInput struct {
	CourseID    int64     `json:"courseId" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	DueAt       time.Time `json:"dueDate" validate:"required"`
}

// UploadTicket is a pre-arranged destination for a submission file.
type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
}
