package models

import "strings"

// Role is the account role used for navigation gating.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole normalizes a backend role string. Unknown values yield "".
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser
	case RoleAdmin:
		return RoleAdmin
	}
	return ""
}

// Home is the landing view for the role.
func (r Role) Home() string {
	if r == RoleAdmin {
		return "/admin"
	}
	return "/dashboard"
}

// User is an account row from the admin users listing.
type User struct {
	UserID   int64  `json:"user_id"`
	ID       int64  `json:"id,omitempty"`
	FullName string `json:"full_name"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Key returns the identifier the backend expects in user URLs.
func (u User) Key() int64 {
	if u.UserID != 0 {
		return u.UserID
	}
	return u.ID
}

// DisplayName prefers full_name and falls back to name.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Name
}

// IsAdmin reports whether the account has the admin role.
func (u User) IsAdmin() bool {
	return ParseRole(u.Role) == RoleAdmin
}

// AuthUser is returned by the login and signup endpoints.
type AuthUser struct {
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// LoginInput is the login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupInput is the signup request body.
type SignupInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// DashboardStats holds the aggregate counts from /api/admin/dashboard/stats.
type DashboardStats struct {
	ActiveUsers   Number `json:"activeusers"`
	ActiveBarbers Number `json:"activebarbers"`
}
