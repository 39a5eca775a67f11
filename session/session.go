// Package session is the single owner of the signed-in user's state: who is
// logged in, with which role and display name. Views read it through
// Manager.Current; only Manager.Login and Manager.Logout change it.
//
// The role kept here gates navigation only. It is forwarded to the backend as
// the X-Role header, and the backend must re-validate every request.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"barbershop-web/models"
)

var (
	ErrNoSession    = errors.New("session: no active session")
	ErrNotFound     = errors.New("session: not found")
	ErrInvalidToken = errors.New("session: invalid token")
)

// Session is the persisted per-browser state.
type Session struct {
	ID        string      `json:"id"`
	UserID    int64       `json:"user_id"`
	Role      models.Role `json:"role"`
	FullName  string      `json:"full_name"`
	Email     string      `json:"email"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Valid reports whether the session identifies a signed-in user: a user id
// always comes with a role and a display name, and the session has not expired.
func (s Session) Valid(now time.Time) bool {
	if s.UserID == 0 || s.Role == "" || s.FullName == "" {
		return false
	}
	return now.Before(s.ExpiresAt)
}

// IsAdmin reports whether the session carries the admin role.
func (s Session) IsAdmin() bool {
	return s.Role == models.RoleAdmin
}

// Store persists sessions by id.
type Store interface {
	Save(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// displayName falls back to the email's local part, then to "User".
func displayName(u models.AuthUser) string {
	if name := strings.TrimSpace(u.FullName); name != "" {
		return name
	}
	if local, _, ok := strings.Cut(u.Email, "@"); ok && local != "" {
		return local
	}
	return "User"
}
