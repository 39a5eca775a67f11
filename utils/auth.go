package utils

import (
	"net/http"

	"barbershop-web/models"
	"barbershop-web/session"

	"github.com/gin-gonic/gin"
)

// SessionReader resolves the current request's session.
type SessionReader interface {
	Current(c *gin.Context) (session.Session, error)
}

// RequireRole lets through only sessions with role. Anonymous visitors go to
// /login and other roles go to their own home page. The backend still
// authorizes every call on its own.
func RequireRole(sessions SessionReader, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := sessions.Current(c)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if s.Role != role {
			c.Redirect(http.StatusFound, s.Role.Home())
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfAuthenticated sends signed-in users from the login and signup
// pages to their home page.
func RedirectIfAuthenticated(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s, err := sessions.Current(c); err == nil {
			c.Redirect(http.StatusFound, s.Role.Home())
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentSession returns the session RequireRole already resolved.
func CurrentSession(c *gin.Context, sessions SessionReader) session.Session {
	s, _ := sessions.Current(c)
	return s
}
