package model

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an operator account. PasswordHash is the salted hash produced by
// the auth package, never the plaintext password.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	FullName     string    `json:"fullname"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserUpdate is an explicit partial update for a user record.
type UserUpdate struct {
	PasswordHash *string `json:"password_hash,omitempty"`
	FullName     *string `json:"fullname,omitempty"`
	Role         *string `json:"role,omitempty"`
}

// IsEmpty reports whether the update would change nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.PasswordHash == nil && u.FullName == nil && u.Role == nil
}

// Apply copies the non-nil fields of the update onto the user.
func (u UserUpdate) Apply(user *User) {
	if u.PasswordHash != nil {
		user.PasswordHash = *u.PasswordHash
	}
	if u.FullName != nil {
		user.FullName = *u.FullName
	}
	if u.Role != nil {
		user.Role = *u.Role
	}
}

// Session is the authenticated operator state for one CLI session.
type Session struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	LoginTime time.Time `json:"login_time"`
	IsActive  bool      `json:"is_active"`
}
