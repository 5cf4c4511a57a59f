package authz

// Session is the identity snapshot carried by a signed session token. It is
// frozen at issuance: role and department reflect the account at login time
// and are informative only; resource-level checks always re-read the live
// record.
type Session struct {
	UserID       int64
	Email        string
	Name         string
	Role         Role
	DepartmentID int64 // zero when the subject has no department (PRINCIPAL)
}
