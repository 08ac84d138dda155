package catalog

import (
	"context"
	"io"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	CreateSeason(ctx context.Context, season *models.Season) error
	GetSeason(ctx context.Context, seasonID string) (*models.Season, error)
	ListSeasons(ctx context.Context) ([]*models.Season, error)
	UpdateSeason(ctx context.Context, season *models.Season) error
	DeleteSeason(ctx context.Context, seasonID string) error
	SeasonInUse(ctx context.Context, seasonID string) (bool, error)

	CreateDesign(ctx context.Context, design *models.CardDesign) error
	GetDesign(ctx context.Context, designID string) (*models.CardDesign, error)
	ListDesigns(ctx context.Context, seasonID string) ([]*models.CardDesign, error)
	UpdateDesignDescription(ctx context.Context, designID, description string) error
	DeleteDesign(ctx context.Context, designID string) error
	CountDesignInstances(ctx context.Context, designID string) (int, error)

	CreateRarity(ctx context.Context, rarity *models.Rarity) error
	GetRarity(ctx context.Context, rarityID string) (*models.Rarity, error)
	ListRarities(ctx context.Context) ([]*models.Rarity, error)
	DeleteRarity(ctx context.Context, rarityID string) error
	CountRarityInstances(ctx context.Context, rarityID string) (int, error)

	CreatePackType(ctx context.Context, packType *models.PackType) error
	GetPackType(ctx context.Context, packTypeID string) (*models.PackType, error)
	ListPackTypes(ctx context.Context) ([]*models.PackType, error)
	DeletePackType(ctx context.Context, packTypeID string) error
	CountPacksOfType(ctx context.Context, packTypeID string) (int, error)
}

// Storage holds design artwork and rarity frames.
type Storage interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}
