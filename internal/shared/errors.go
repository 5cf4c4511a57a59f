package shared

import "errors"

var (
	// ErrInvalidCredentials indicates login failure. Unknown email and wrong
	// password are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates a missing session where one is required.
	ErrUnauthorized = errors.New("not authenticated")
	// ErrForbidden indicates a present session that failed a policy check.
	ErrForbidden = errors.New("not authorized")
	// ErrNoDepartment indicates an operation that requires the caller to
	// belong to a department.
	ErrNoDepartment = errors.New("not in a department")
)
