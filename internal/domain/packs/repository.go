package packs

import (
	"context"
	"time"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	GetInstance(ctx context.Context, instanceID string) (*models.CardInstance, error)
	// OpenInstance flips opened from false to true and decrements the pack's
	// remaining count in one transaction. It returns errs.ErrAlreadyOpened
	// when the instance was opened first by someone else.
	OpenInstance(ctx context.Context, instanceID string, openedAt time.Time) (*models.CardInstance, error)

	GetPackType(ctx context.Context, packTypeID string) (*models.PackType, error)
	// IssuePack inserts pack and draws its instances from packType's
	// composition. pack.Instances and pack.RemainingCards are filled in.
	IssuePack(ctx context.Context, pack *models.Pack, packType *models.PackType) error
	ListUserPacks(ctx context.Context, userID string) ([]*models.Pack, error)

	CreatePreorder(ctx context.Context, preorder *models.Preorder) error
	ListPreorders(ctx context.Context) ([]*models.Preorder, error)
	// ConvertPreorder issues pack and deletes preorder in one transaction.
	ConvertPreorder(ctx context.Context, preorder *models.Preorder, pack *models.Pack, packType *models.PackType) error

	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpsertUser(ctx context.Context, user *models.User) error
}

// Lookup joins designs and rarities into revealed cards.
type Lookup interface {
	Design(ctx context.Context, designID string) (*models.CardDesign, error)
	Rarity(ctx context.Context, rarityID string) (*models.Rarity, error)
}

// Directory resolves a Twitch login to its stable user id. It returns an
// error matching errs.ErrNotFound when the login does not exist.
type Directory interface {
	LookupLogin(ctx context.Context, login string) (userID, username string, err error)
}
