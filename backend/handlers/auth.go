package handlers

import (
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/lukeshafer/indigestion-cards-sub002/backend/config"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/middleware"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/utils"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/session"
)

// Login starts the Twitch OAuth flow. The site query parameter picks the
// frontend the callback returns to.
func Login(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		site := c.Query("site", config.SitePublic)
		if !config.ValidSite(site) {
			return utils.SendBadRequest(c, "Unknown site", map[string]string{"site": site})
		}

		state, err := webApp.Sessions.SetState(c, site)
		if err != nil {
			slog.Error("Failed to set OAuth state",
				slog.String("type", "http"),
				slog.String("error", err.Error()))
			return utils.SendInternalServerError(c, "Failed to initiate authentication")
		}

		return c.Redirect(webApp.Twitch.AuthURL(state))
	}
}

func OAuthCallback(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		site, err := webApp.Sessions.GetAndClearState(c)
		if err != nil {
			slog.Warn("OAuth callback: invalid or missing state",
				slog.String("type", "http"),
				slog.String("error", err.Error()))
			return redirectWithAlert(c, webApp, config.SitePublic, "Login failed, please try again")
		}

		if errorParam := c.Query("error"); errorParam != "" {
			slog.Warn("OAuth callback: Twitch returned error",
				slog.String("type", "http"),
				slog.String("error", errorParam),
				slog.String("description", c.Query("error_description")))
			return redirectWithAlert(c, webApp, site, "Login was cancelled")
		}

		code := c.Query("code")
		if code == "" {
			return redirectWithAlert(c, webApp, site, "Login failed, please try again")
		}

		accessToken, err := webApp.Twitch.ExchangeCode(ctx, code)
		if err != nil {
			slog.Error("OAuth callback: failed to exchange code for token",
				slog.String("type", "http"),
				slog.String("error", err.Error()))
			return redirectWithAlert(c, webApp, site, "Login failed, please try again")
		}

		twitchUser, err := webApp.Twitch.GetUser(ctx, accessToken)
		if err != nil {
			slog.Error("OAuth callback: failed to get user info",
				slog.String("type", "http"),
				slog.String("error", err.Error()))
			return redirectWithAlert(c, webApp, site, "Login failed, please try again")
		}

		sessionType := session.TypeUser
		if site == config.SiteAdmin {
			if !webApp.Config.IsAdminUser(twitchUser.ID) {
				slog.Warn("OAuth callback: user lacks admin privileges",
					slog.String("type", "http"),
					slog.String("user_id", twitchUser.ID),
					slog.String("username", twitchUser.Login))
				return redirectWithAlert(c, webApp, site, "You are not allowed to use the admin site")
			}
			sessionType = session.TypeAdmin
		}

		user, err := webApp.Users.UpsertFromLogin(ctx, twitchUser.ID, twitchUser.DisplayName)
		if err != nil {
			slog.Error("OAuth callback: failed to save user",
				slog.String("type", "http"),
				slog.String("user_id", twitchUser.ID),
				slog.String("error", err.Error()))
			return redirectWithAlert(c, webApp, site, "Login failed, please try again")
		}

		if _, err := webApp.Sessions.CreateSession(c, session.Session{
			Type:     sessionType,
			UserID:   user.UserID,
			Username: user.Username,
		}); err != nil {
			slog.Error("OAuth callback: failed to create session cookie",
				slog.String("type", "http"),
				slog.String("user_id", user.UserID),
				slog.String("error", err.Error()))
			return redirectWithAlert(c, webApp, site, "Login failed, please try again")
		}

		return c.Redirect(webApp.Config.SiteURL(site))
	}
}

func redirectWithAlert(c *fiber.Ctx, webApp *WebApp, site, alert string) error {
	target := webApp.Config.SiteURL(site) + "?alert=" + url.QueryEscape(alert)
	return c.Redirect(target)
}

func Logout(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		webApp.Sessions.DestroySession(c)
		return utils.SendSuccess(c, nil, "Logged out")
	}
}

// CurrentSession returns the caller's resolved session.
func CurrentSession(c *fiber.Ctx) error {
	return utils.SendSuccess(c, middleware.SessionFrom(c), "")
}
