package admin

// Stats are the college-wide headline numbers on the principal dashboard.
type Stats struct {
	StudentCount      int64 `json:"studentCount"`
	FacultyCount      int64 `json:"facultyCount"`
	DepartmentCount   int64 `json:"departmentCount"`
	OverallAttendance int   `json:"overallAttendance"`
}

// DepartmentSummary is one department row in the overview.
type DepartmentSummary struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	HOD          string `json:"hod"`
	StudentCount int64  `json:"studentCount"`
}

// Overview is the principal's college-wide dashboard payload.
type Overview struct {
	Stats       Stats               `json:"stats"`
	Departments []DepartmentSummary `json:"departments"`
}

// StudentRow is a student in the college-wide listing.
type StudentRow struct {
	UserID         int64  `json:"userId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	RollNo         string `json:"rollNo"`
	Year           int    `json:"year"`
	Section        string `json:"section"`
	DepartmentName string `json:"departmentName"`
}

// FacultyRow is a professor or HOD in the college-wide listing.
type FacultyRow struct {
	UserID         int64  `json:"userId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Designation    string `json:"designation"`
	DepartmentName string `json:"departmentName"`
}
