package handlers

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lukeshafer/indigestion-cards-sub002/backend/config"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/models"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/services"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/utils"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/catalog"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/packs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/trades"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/users"
)

const healthTimeout = 3 * time.Second

// Database is the part of the database handle /health needs.
type Database interface {
	Ping(ctx context.Context) error
	Stats() map[string]int32
}

// TwitchAuth is the OAuth side of the Twitch service.
type TwitchAuth interface {
	AuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
	GetUser(ctx context.Context, accessToken string) (*services.TwitchUser, error)
}

// WebApp represents the web application with all dependencies
type WebApp struct {
	Config   *config.WebAppConfig
	DB       Database
	Catalog  catalog.Service
	Packs    packs.Service
	Users    users.Service
	Trades   trades.Service
	Twitch   TwitchAuth
	Sessions *services.SessionService
	Version  string
	Commit   string
}

func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := models.HealthStatus{
			Status:   "healthy",
			Version:  webApp.Version,
			Commit:   webApp.Commit,
			Database: "ok",
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := webApp.DB.Ping(ctx); err != nil {
			slog.Error("Health check database ping failed",
				slog.String("type", "db"),
				slog.Any("error", err))
			status.Status = "degraded"
			status.Database = "unreachable"
			return utils.SendJSON(c, fiber.StatusServiceUnavailable, models.NewSuccessResponse(status, "Database unreachable"))
		}
		status.Pool = webApp.DB.Stats()

		return utils.SendSuccess(c, status, "Health check successful")
	}
}

// bind parses the JSON or form body into out and runs its validate tags.
// It has already written the 400 response when ok is false.
func bind(c *fiber.Ctx, out any) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, utils.SendBadRequest(c, "Invalid request body", nil)
	}
	if details := utils.ValidateStruct(out); details != nil {
		return false, utils.SendValidationErrors(c, details)
	}
	return true, nil
}

// bindText is bind for endpoints that answer in plain text.
func bindText(c *fiber.Ctx, out any) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, utils.SendText(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if details := utils.ValidateStruct(out); details != nil {
		field := slices.Sorted(maps.Keys(details))[0]
		return false, utils.SendText(c, fiber.StatusBadRequest, details[field])
	}
	return true, nil
}
