package domain

// Role of an authenticated actor
type Role string

const (
	RoleRequester Role = "requester"
	RoleAdmin     Role = "admin"
)

// IsValid reports whether the role is one the system knows
func (r Role) IsValid() bool {
	return r == RoleRequester || r == RoleAdmin
}

// Actor is the identity bound to the current session
type Actor struct {
	ID   int64
	Role Role
}

// IsAdmin returns true for administrators
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsAuthenticated returns true when the actor carries a user id and a known role
func (a Actor) IsAuthenticated() bool {
	return a.ID > 0 && a.Role.IsValid()
}
