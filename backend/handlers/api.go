package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lukeshafer/indigestion-cards-sub002/backend/middleware"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/models"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/utils"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/packs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/trades"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/users"
)

func ListSeasons(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		seasons, err := webApp.Catalog.ListSeasons(c.UserContext())
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, seasons, "")
	}
}

func ListSeasonDesigns(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		designs, err := webApp.Catalog.ListDesigns(c.UserContext(), c.Params("seasonId"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, designs, "")
	}
}

func GetProfile(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := webApp.Users.GetProfile(c.UserContext(), c.Params("username"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, profile, "")
	}
}

func UpdateProfile(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.ProfileRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		sess := middleware.SessionFrom(c)
		user, err := webApp.Users.UpdateProfile(c.UserContext(), sess.UserID, users.ProfileUpdate{
			LookingFor:   req.LookingFor,
			PinnedCardID: req.PinnedCardID,
		})
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, user, "Profile updated")
	}
}

func ListPacks(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := webApp.Packs.ListUserPacks(c.UserContext(), middleware.SessionFrom(c).UserID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, list, "")
	}
}

// OpenCard reveals one of the caller's unopened cards and returns it with
// its design and rarity.
func OpenCard(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.OpenCardRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		card, err := webApp.Packs.OpenCard(c.UserContext(), packs.OpenRequest{
			InstanceID: req.InstanceID,
			UserID:     middleware.SessionFrom(c).UserID,
		})
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return c.JSON(card)
	}
}

func ListTrades(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := webApp.Trades.ListTrades(c.UserContext(), middleware.SessionFrom(c).UserID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, list, "")
	}
}

func CreateTrade(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.TradeRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		trade, err := webApp.Trades.CreateTrade(c.UserContext(), middleware.SessionFrom(c), trades.TradeInput{
			ReceiverUsername: req.ReceiverUsername,
			Offered:          req.Offered,
			Requested:        req.Requested,
			Message:          req.Message,
		})
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, trade, "Trade created")
	}
}

func AcceptTrade(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trade, err := webApp.Trades.AcceptTrade(c.UserContext(), middleware.SessionFrom(c), c.Params("tradeId"))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, trade, "Trade accepted")
	}
}

func RejectTrade(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := webApp.Trades.RejectTrade(c.UserContext(), middleware.SessionFrom(c), c.Params("tradeId")); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Trade rejected")
	}
}

func CancelTrade(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := webApp.Trades.CancelTrade(c.UserContext(), middleware.SessionFrom(c), c.Params("tradeId")); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Trade cancelled")
	}
}
