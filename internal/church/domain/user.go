package domain

import "time"

// Role is the congregation role attached to an account. The set is closed:
// anything outside it is rejected at every boundary.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RolePastor Role = "pastor"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleAdmin, RolePastor:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// User models a church member account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	Role         Role
	Active       bool
	JoinDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// PublicUser is the projection of an account that is safe to return to
// clients. Never includes the password hash.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	JoinDate  time.Time `json:"joinDate"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Role:      u.Role,
		Phone:     u.Phone,
		JoinDate:  u.JoinDate,
	}
}

// Identity is the request-scoped projection of an account attached to the
// request context after the authentication gate admits it. Ephemeral; never
// persisted.
type Identity struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Role      Role
	Active    bool
}

func (u User) Identity() Identity {
	return Identity{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Active:    u.Active,
	}
}
