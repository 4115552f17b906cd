package auth

// Role is the closed set of account privilege levels.
type Role string

const (
	RoleGuest Role = "guest"
	RoleUser  Role = "user"
	RoleTest  Role = "test"
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// Level orders roles for gate comparisons. Unknown roles rank below
// guest so a forged role claim never passes any gate.
func (r Role) Level() int {
	switch r {
	case RoleGuest:
		return 0
	case RoleUser:
		return 1
	case RoleTest, RoleAdmin:
		return 2
	case RoleOwner:
		return 3
	default:
		return -1
	}
}

// AtLeast reports whether r carries at least the privileges of min.
func (r Role) AtLeast(min Role) bool {
	return r.Level() >= 0 && r.Level() >= min.Level()
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r.Level() >= 0
}
