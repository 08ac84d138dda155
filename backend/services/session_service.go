package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lukeshafer/indigestion-cards-sub002/backend/config"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/session"
)

const (
	SessionCookieName = "indigestion_session"
	StateCookieName   = "oauth_state"
	stateCookieMaxAge = 10 * time.Minute
)

// SessionManager is the token side of the session service.
type SessionManager interface {
	session.Issuer
	session.Resolver
	SignState(site string) (string, error)
	VerifyState(token string) (string, error)
}

// SessionService moves session and OAuth state tokens in and out of
// cookies.
type SessionService struct {
	config  *config.WebAppConfig
	manager SessionManager
}

// NewSessionService creates a new session service
func NewSessionService(cfg *config.WebAppConfig, manager SessionManager) *SessionService {
	return &SessionService{
		config:  cfg,
		manager: manager,
	}
}

// CreateSession signs s and sets the session cookie. The token is returned
// for clients that prefer a bearer header.
func (s *SessionService) CreateSession(c *fiber.Ctx, sess session.Session) (string, error) {
	token, err := s.manager.Issue(sess)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.config.Config.Session.TTL.Std() / time.Second),
		Secure:   s.config.SecureCookies(),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	slog.Info("Session created for user",
		slog.String("type", "http"),
		slog.String("user_id", sess.UserID),
		slog.String("username", sess.Username),
		slog.String("session_type", string(sess.Type)))
	return token, nil
}

// Resolve reads the token from the session cookie, then a bearer header. A
// cookie that does not resolve does not shadow a valid bearer token; the bad
// cookie is cleared and the bearer session used.
func (s *SessionService) Resolve(c *fiber.Ctx) (*session.Session, session.Outcome) {
	bearer := bearerToken(c)
	cookie := c.Cookies(SessionCookieName)
	if cookie == "" {
		return s.manager.Resolve(bearer)
	}

	sess, outcome := s.manager.Resolve(cookie)
	if outcome == session.Valid || bearer == "" {
		return sess, outcome
	}
	if fromBearer, bearerOutcome := s.manager.Resolve(bearer); bearerOutcome == session.Valid {
		slog.Debug("Session cookie unusable, using bearer token",
			slog.String("type", "http"),
			slog.String("cookie_outcome", outcome.String()))
		s.DestroySession(c)
		return fromBearer, bearerOutcome
	}
	return sess, outcome
}

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// DestroySession removes the session cookie
func (s *SessionService) DestroySession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   s.config.SecureCookies(),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// SetState signs a state token for site, stores it in a cookie and returns
// it for the authorize URL.
func (s *SessionService) SetState(c *fiber.Ctx, site string) (string, error) {
	state, err := s.manager.SignState(site)
	if err != nil {
		return "", fmt.Errorf("failed to sign state: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     StateCookieName,
		Value:    state,
		Path:     "/auth",
		MaxAge:   int(stateCookieMaxAge / time.Second),
		Secure:   s.config.SecureCookies(),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return state, nil
}

// GetAndClearState checks the callback's state against the cookie and
// returns the site the login started from.
func (s *SessionService) GetAndClearState(c *fiber.Ctx) (string, error) {
	stored := c.Cookies(StateCookieName)
	c.Cookie(&fiber.Cookie{
		Name:     StateCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   s.config.SecureCookies(),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	if stored == "" {
		return "", errors.New("no state cookie found")
	}
	if received := c.Query("state"); received != stored {
		return "", session.ErrInvalidState
	}
	return s.manager.VerifyState(stored)
}
