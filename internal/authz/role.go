package authz

// Role is the portal-wide role attached to every account.
type Role string

const (
	RoleStudent   Role = "STUDENT"
	RoleProfessor Role = "PROFESSOR"
	RoleHOD       Role = "HOD"
	RolePrincipal Role = "PRINCIPAL"
)

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleStudent, RoleProfessor, RoleHOD, RolePrincipal:
		return Role(raw), true
	}
	return "", false
}

// Faculty reports whether the role teaches (professors and HODs).
func (r Role) Faculty() bool {
	return r == RoleProfessor || r == RoleHOD
}
