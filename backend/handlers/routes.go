package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/lukeshafer/indigestion-cards-sub002/backend/middleware"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/utils"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/session"
)

// Register configures all application routes
func Register(app *fiber.App, webApp *WebApp) {
	app.Get("/health", HealthCheck(webApp))

	app.Use(middleware.ResolveSession(webApp.Sessions))

	auth := app.Group("/auth", middleware.AuthRateLimit())
	auth.Get("/login", Login(webApp))
	auth.Get("/callback", OAuthCallback(webApp))
	auth.Post("/logout", Logout(webApp))

	user := middleware.Require(session.TypeUser)

	api := app.Group("/api", middleware.APIRateLimit())
	api.Get("/session", CurrentSession)
	api.Get("/seasons", ListSeasons(webApp))
	api.Get("/seasons/:seasonId/designs", ListSeasonDesigns(webApp))
	api.Get("/users/:username", GetProfile(webApp))
	api.Patch("/profile", user, UpdateProfile(webApp))
	api.Get("/packs", user, ListPacks(webApp))
	api.Get("/trades", user, ListTrades(webApp))
	api.Post("/trades", user, CreateTrade(webApp))
	api.Post("/trades/:tradeId/accept", user, AcceptTrade(webApp))
	api.Post("/trades/:tradeId/reject", user, RejectTrade(webApp))
	api.Post("/trades/:tradeId/cancel", user, CancelTrade(webApp))

	app.Post("/open-card", user, OpenCard(webApp))

	admin := app.Group("/admin-api",
		middleware.Require(session.TypeAdmin),
		middleware.AccessLogMiddleware("admin-api"))
	admin.Post("/card", middleware.AuditLogMiddleware("open-card"), AdminOpenCard(webApp))
	admin.Post("/preorder", middleware.AuditLogMiddleware("create-preorder"), CreatePreorder(webApp))
	admin.Post("/preorder/convert", middleware.AuditLogMiddleware("convert-preorders"), ConvertPreorders(webApp))
	admin.Post("/pack", middleware.AuditLogMiddleware("issue-pack"), IssuePack(webApp))

	admin.Post("/season", middleware.AuditLogMiddleware("create-season"), CreateSeason(webApp))
	admin.Patch("/season", middleware.AuditLogMiddleware("update-season"), UpdateSeason(webApp))
	admin.Delete("/season", middleware.AuditLogMiddleware("delete-season"), DeleteSeason(webApp))

	admin.Get("/design/search", SearchDesigns(webApp))
	admin.Post("/design", middleware.UploadRateLimit(), middleware.AuditLogMiddleware("create-design"), CreateDesign(webApp))
	admin.Patch("/design", middleware.AuditLogMiddleware("update-design"), UpdateDesign(webApp))
	admin.Delete("/design", middleware.AuditLogMiddleware("delete-design"), DeleteDesign(webApp))

	admin.Get("/rarity", ListRarities(webApp))
	admin.Post("/rarity", middleware.UploadRateLimit(), middleware.AuditLogMiddleware("create-rarity"), CreateRarity(webApp))
	admin.Delete("/rarity", middleware.AuditLogMiddleware("delete-rarity"), DeleteRarity(webApp))

	admin.Get("/pack-type", ListPackTypes(webApp))
	admin.Post("/pack-type", middleware.AuditLogMiddleware("create-pack-type"), CreatePackType(webApp))
	admin.Delete("/pack-type", middleware.AuditLogMiddleware("delete-pack-type"), DeletePackType(webApp))

	admin.Post("/moment", middleware.AuditLogMiddleware("redeem-moment"), RedeemMoment(webApp))

	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("type", "http"),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
		)
		return utils.SendNotFound(c, "The requested endpoint does not exist")
	})
}
