package courses

// Course is a taught unit owned by a department and an assigned faculty
// member.
type Course struct {
	ID             int64  `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	FacultyID      int64  `json:"facultyId"`
	FacultyName    string `json:"facultyName"`
}

// RosterStudent is a roster entry for a course view.
type RosterStudent struct {
	UserID       int64  `json:"userId"`
	Name         string `json:"name"`
	RollNo       string `json:"rollNo"`
	Year         int    `json:"year"`
	Section      string `json:"section"`
	DepartmentID int64  `json:"departmentId"`
}

// Detail is a course together with its roster.
type Detail struct {
	Course
	Students []RosterStudent `json:"students"`
}
