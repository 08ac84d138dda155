package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/lukeshafer/indigestion-cards-sub002/backend/services"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/utils"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/session"
)

const sessionLocal = "session"

// ResolveSession decodes the request's session token. Requests without a
// usable token carry the public session; an invalid or stale token is also
// cleared from the browser.
func ResolveSession(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, outcome := sessions.Resolve(c)
		c.Locals(outcomeLocal, outcome)
		if outcome.ShouldClear() {
			slog.Debug("Clearing unusable session token",
				slog.String("type", "http"),
				slog.String("outcome", outcome.String()),
				slog.String("path", c.Path()))
			sessions.DestroySession(c)
		}
		if sess == nil {
			sess = session.Public()
		}
		c.Locals(sessionLocal, sess)
		return c.Next()
	}
}

// SessionFrom returns the session ResolveSession stored, or the public
// session.
func SessionFrom(c *fiber.Ctx) *session.Session {
	if sess, ok := c.Locals(sessionLocal).(*session.Session); ok && sess != nil {
		return sess
	}
	return session.Public()
}

// Require rejects the request with 401 unless the session is one of types.
func Require(types ...session.Type) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := SessionFrom(c)
		if !sess.Is(types...) {
			slog.Warn("Session type not allowed",
				slog.String("type", "http"),
				slog.String("path", c.Path()),
				slog.String("session_type", string(sess.Type)),
				slog.String("user_id", sess.UserID))
			return utils.SendUnauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}
