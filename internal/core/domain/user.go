package domain

import "time"

const (
	RoleManager  = "gestionnaire"
	RoleEmployee = "employee"
)

// ValidRole reports whether role belongs to the closed set of known roles.
func ValidRole(role string) bool {
	return role == RoleManager || role == RoleEmployee
}

// User models an authenticated actor in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Claims is the identity asserted by a verified token.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
