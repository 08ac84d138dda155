package handlers

import (
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/lukeshafer/indigestion-cards-sub002/backend/models"
	"github.com/lukeshafer/indigestion-cards-sub002/backend/utils"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/catalog"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/packs"
)

const maxSearchResults = 25

// AdminOpenCard opens a card on a user's behalf. The design and pack ids,
// when given, must match the stored instance.
func AdminOpenCard(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.AdminOpenCardRequest
		if ok, err := bindText(c, &req); !ok {
			return err
		}

		_, err := webApp.Packs.OpenCard(c.UserContext(), packs.OpenRequest{
			InstanceID: req.InstanceID,
			DesignID:   req.DesignID,
			PackID:     req.PackID,
		})
		if err != nil {
			return utils.SendDomainText(c, err)
		}
		return utils.SendText(c, fiber.StatusOK, "Card opened.")
	}
}

func CreatePreorder(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UsernameRequest
		if ok, err := bindText(c, &req); !ok {
			return err
		}

		preorder, err := webApp.Packs.CreatePreorder(c.UserContext(), req.Username)
		if err != nil {
			return utils.SendDomainText(c, err)
		}
		return utils.SendText(c, fiber.StatusOK, fmt.Sprintf("Preorder created for %s.", preorder.Username))
	}
}

func ConvertPreorders(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.PackTypeIDRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		converted, err := webApp.Packs.ConvertPreorders(c.UserContext(), req.PackTypeID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, models.ConvertResult{Converted: converted},
			fmt.Sprintf("Converted %d preorders", converted))
	}
}

func IssuePack(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.IssuePackRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		pack, err := webApp.Packs.IssuePack(c.UserContext(), packs.IssueRequest{
			Username:   req.Username,
			PackTypeID: req.PackTypeID,
		})
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, pack, "Pack issued")
	}
}

func CreateSeason(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SeasonRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		season, err := webApp.Catalog.CreateSeason(c.UserContext(), catalog.SeasonInput{
			SeasonID:          req.SeasonID,
			SeasonName:        req.SeasonName,
			SeasonDescription: req.SeasonDescription,
		})
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, season, "Season created")
	}
}

func UpdateSeason(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SeasonRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		season, err := webApp.Catalog.UpdateSeason(c.UserContext(), catalog.SeasonInput{
			SeasonID:          req.SeasonID,
			SeasonName:        req.SeasonName,
			SeasonDescription: req.SeasonDescription,
		})
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, season, "Season updated")
	}
}

func DeleteSeason(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SeasonIDRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		if err := webApp.Catalog.DeleteSeason(c.UserContext(), req.SeasonID); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Season deleted")
	}
}

// CreateDesign takes a multipart form with the card artwork in "image".
func CreateDesign(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.DesignCreateRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			return utils.SendBadRequest(c, "Validation failed", map[string]string{"image": "image is required"})
		}
		upload, closeFn, details := openUpload(fileHeader)
		if details != nil {
			return utils.SendValidationErrors(c, details)
		}
		defer closeFn()

		design, err := webApp.Catalog.CreateDesign(c.UserContext(), catalog.DesignInput{
			CardName:        req.CardName,
			CardDescription: req.CardDescription,
			SeasonID:        req.SeasonID,
			Artist:          req.Artist,
			Image:           upload,
		})
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, design, "Design created")
	}
}

func UpdateDesign(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.DesignUpdateRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		design, err := webApp.Catalog.UpdateDesign(c.UserContext(), req.DesignID, req.CardDescription)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, design, "Design updated")
	}
}

func DeleteDesign(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.DesignIDRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		if err := webApp.Catalog.DeleteDesign(c.UserContext(), req.DesignID); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Design deleted")
	}
}

func SearchDesigns(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		designs, err := webApp.Catalog.SearchDesigns(c.UserContext(), c.Query("q"), maxSearchResults)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, designs, "")
	}
}

func ListRarities(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rarities, err := webApp.Catalog.ListRarities(c.UserContext())
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, rarities, "")
	}
}

// CreateRarity takes a multipart form; the frame image is optional.
func CreateRarity(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RarityCreateRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		in := catalog.RarityInput{
			RarityID:     req.RarityID,
			RarityName:   req.RarityName,
			DefaultCount: req.DefaultCount,
		}
		if fileHeader, err := c.FormFile("frame"); err == nil {
			upload, closeFn, details := openUpload(fileHeader)
			if details != nil {
				return utils.SendValidationErrors(c, details)
			}
			defer closeFn()
			in.Frame = upload
		}

		rarity, err := webApp.Catalog.CreateRarity(c.UserContext(), in)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, rarity, "Rarity created")
	}
}

func DeleteRarity(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RarityIDRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		if err := webApp.Catalog.DeleteRarity(c.UserContext(), req.RarityID); err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, nil, "Rarity deleted")
	}
}

func ListPackTypes(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		packTypes, err := webApp.Catalog.ListPackTypes(c.UserContext())
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, packTypes, "")
	}
}

func CreatePackType(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.PackTypeRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		packType, err := webApp.Catalog.CreatePackType(c.UserContext(), catalog.PackTypeInput{
			PackTypeName:        req.PackTypeName,
			PackTypeDescription: req.PackTypeDescription,
			SeasonID:            req.SeasonID,
			Composition:         req.Composition,
		})
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, packType, "Pack type created")
	}
}

func DeletePackType(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.PackTypeIDRequest
		if ok, err := bindText(c, &req); !ok {
			return err
		}

		if err := webApp.Catalog.DeletePackType(c.UserContext(), req.PackTypeID); err != nil {
			return utils.SendDomainText(c, err)
		}
		return utils.SendText(c, fiber.StatusOK, "Pack type deleted.")
	}
}

func RedeemMoment(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UsernameRequest
		if ok, err := bind(c, &req); !ok {
			return err
		}

		moment, err := webApp.Trades.RedeemMoment(c.UserContext(), req.Username)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendCreated(c, moment, "Moment redeemed")
	}
}

// openUpload validates and opens an uploaded file. The returned func closes
// it.
func openUpload(fileHeader *multipart.FileHeader) (*catalog.Upload, func(), map[string]string) {
	if details := utils.ValidateImageFile(fileHeader); details != nil {
		return nil, nil, details
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, map[string]string{fileHeader.Filename: "Failed to read uploaded file"}
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &catalog.Upload{
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Size:        fileHeader.Size,
		Body:        file,
	}, func() { file.Close() }, nil
}
