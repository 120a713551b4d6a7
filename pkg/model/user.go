package model

// Role is an application user's permission tier.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleStaff  Role = "Staff"
	RoleViewer Role = "Viewer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleViewer:
		return true
	}
	return false
}

// UserStatus marks whether an account may sign in.
type UserStatus string

const (
	UserActive   UserStatus = "Active"
	UserInactive UserStatus = "Inactive"
)

// NeverLoggedIn is the LastLogin value of a user that has not signed in yet.
const NeverLoggedIn = "Never"

// AppUser is an operator of the application.
//
// Password is a placeholder for the mock sign-in scheme and is not a real
// credential store.
type AppUser struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	LastLogin string     `json:"lastLogin"`
	Status    UserStatus `json:"status"`
	Password  string     `json:"password,omitempty"`
}

// Public returns a copy with the password removed.
func (u AppUser) Public() AppUser {
	u.Password = ""
	return u
}
