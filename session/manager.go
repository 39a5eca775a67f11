package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"barbershop-web/models"
	"barbershop-web/utils/sl"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextKey = "session"

type Options struct {
	CookieName string
	TTL        time.Duration
	Secret     string
	Secure     bool
}

// Manager binds sessions to browser cookies.
type Manager struct {
	store  Store
	tokens Tokens
	opts   Options
	log    *slog.Logger
	now    func() time.Time
}

func NewManager(store Store, opts Options, log *slog.Logger) *Manager {
	return &Manager{
		store:  store,
		tokens: NewTokens(opts.Secret),
		opts:   opts,
		log:    log,
		now:    time.Now,
	}
}

// Login replaces any current session with one for u and sets the cookie.
func (m *Manager) Login(c *gin.Context, u models.AuthUser) (Session, error) {
	const op = "session.Manager.Login"

	role := models.ParseRole(u.Role)
	if u.UserID == 0 || role == "" {
		return Session{}, fmt.Errorf("%s: backend returned user %d with role %q", op, u.UserID, u.Role)
	}

	if old, err := m.lookup(c); err == nil {
		_ = m.store.Delete(c.Request.Context(), old.ID)
	}

	now := m.now()
	s := Session{
		ID:        uuid.NewString(),
		UserID:    u.UserID,
		Role:      role,
		FullName:  displayName(u),
		Email:     u.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(m.opts.TTL),
	}
	token, err := m.tokens.Sign(s.ID, now, s.ExpiresAt)
	if err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := m.store.Save(c.Request.Context(), s); err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}

	m.setCookie(c, token, int(m.opts.TTL.Seconds()))
	c.Set(contextKey, s)
	m.log.Info("session started", slog.Int64("user_id", s.UserID), slog.String("role", string(s.Role)))
	return s, nil
}

// Logout removes the stored session and expires the cookie. It is safe to
// call without a session.
func (m *Manager) Logout(c *gin.Context) error {
	const op = "session.Manager.Logout"

	c.Set(contextKey, nil)
	defer m.setCookie(c, "", -1)

	id, err := m.cookieSessionID(c)
	if err != nil {
		return nil
	}
	if err := m.store.Delete(c.Request.Context(), id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Current returns the signed-in session or ErrNoSession.
func (m *Manager) Current(c *gin.Context) (Session, error) {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(Session); ok {
			return s, nil
		}
		return Session{}, ErrNoSession
	}

	s, err := m.lookup(c)
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			m.log.Error("session lookup failed", sl.Err(err))
		}
		c.Set(contextKey, nil)
		return Session{}, ErrNoSession
	}
	c.Set(contextKey, s)
	return s, nil
}

// PurgeExpired drops expired sessions from the store.
func (m *Manager) PurgeExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx, m.now())
}

func (m *Manager) lookup(c *gin.Context) (Session, error) {
	id, err := m.cookieSessionID(c)
	if err != nil {
		return Session{}, ErrNoSession
	}
	s, err := m.store.Get(c.Request.Context(), id)
	if errors.Is(err, ErrNotFound) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, err
	}
	if !s.Valid(m.now()) {
		return Session{}, ErrNoSession
	}
	return s, nil
}

func (m *Manager) cookieSessionID(c *gin.Context) (string, error) {
	raw, err := c.Cookie(m.opts.CookieName)
	if err != nil || raw == "" {
		return "", ErrNoSession
	}
	return m.tokens.Parse(raw)
}

func (m *Manager) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, value, maxAge, "/", "", m.opts.Secure, true)
}
