package middleware

import (
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lukeshafer/indigestion-cards-sub002/backend/utils"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/session"
)

const (
	requestIDLocal = "requestid"
	outcomeLocal   = "session_outcome"
)

// auditFields are the request fields that identify what an admin action
// touched.
var auditFields = []string{
	"instanceId", "designId", "packId", "packTypeId", "rarityId", "seasonId", "username",
}

// LoggingMiddleware logs every request with the session that made it. 4xx
// responses log at warn and 5xx at error.
func LoggingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		attrs := []slog.Attr{
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("ip", utils.GetIPAddress(c)),
		}
		if id, ok := c.Locals(requestIDLocal).(string); ok {
			attrs = append(attrs, slog.String("request_id", id))
		}
		attrs = append(attrs, sessionAttrs(c)...)
		if outcome, ok := c.Locals(outcomeLocal).(session.Outcome); ok && outcome.ShouldClear() {
			attrs = append(attrs, slog.String("session_cleared", outcome.String()))
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}

		slog.LogAttrs(c.UserContext(), level, "Request served", attrs...)
		return err
	}
}

// AccessLogMiddleware records every request that reached an admin route.
func AccessLogMiddleware(surface string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		attrs := append([]slog.Attr{
			slog.String("type", "http"),
			slog.String("surface", surface),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("user_agent", utils.GetUserAgent(c)),
		}, sessionAttrs(c)...)
		slog.LogAttrs(c.UserContext(), slog.LevelInfo, "Admin access", attrs...)
		return c.Next()
	}
}

// AuditLogMiddleware records the outcome of an admin mutation and the
// entities it named.
func AuditLogMiddleware(action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		subjects := auditSubjects(c)
		err := c.Next()

		status := c.Response().StatusCode()
		success := err == nil && status < 300
		level := slog.LevelInfo
		if !success {
			level = slog.LevelWarn
		}

		attrs := append([]slog.Attr{
			slog.String("type", "http"),
			slog.String("action", action),
			slog.Bool("success", success),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		}, sessionAttrs(c)...)
		if len(subjects) > 0 {
			attrs = append(attrs, slog.Any("subjects", subjects))
		}
		slog.LogAttrs(c.UserContext(), level, "Admin action", attrs...)
		return err
	}
}

func sessionAttrs(c *fiber.Ctx) []slog.Attr {
	sess := SessionFrom(c)
	attrs := []slog.Attr{slog.String("session", string(sess.Type))}
	if sess.UserID != "" {
		attrs = append(attrs,
			slog.String("user_id", sess.UserID),
			slog.String("username", sess.Username))
	}
	return attrs
}

// auditSubjects reads the identifying fields from a JSON or form body. File
// parts of multipart bodies are not read.
func auditSubjects(c *fiber.Ctx) map[string]string {
	subjects := make(map[string]string)
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		var body map[string]any
		if json.Unmarshal(c.Body(), &body) != nil {
			return subjects
		}
		for _, field := range auditFields {
			if v, ok := body[field].(string); ok && v != "" {
				subjects[field] = v
			}
		}
		return subjects
	}
	for _, field := range auditFields {
		if v := c.FormValue(field); v != "" {
			subjects[field] = v
		}
	}
	return subjects
}
