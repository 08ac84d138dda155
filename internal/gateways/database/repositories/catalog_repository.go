package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/catalog"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

type catalogRepository struct {
	db *bun.DB
}

var _ catalog.Repository = &catalogRepository{}

func NewCatalogRepository(db *bun.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

// Seasons

func (r *catalogRepository) CreateSeason(ctx context.Context, season *models.Season) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if season.CreatedAt.IsZero() {
		season.CreatedAt = time.Now()
	}
	_, err := r.db.NewInsert().Model(season).Exec(ctx)
	return handleError("insert", "season", season.SeasonID, err)
}

func (r *catalogRepository) GetSeason(ctx context.Context, seasonID string) (*models.Season, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	season := new(models.Season)
	err := r.db.NewSelect().
		Model(season).
		Where("s.season_id = ?", seasonID).
		Scan(ctx)
	if err != nil {
		return nil, handleError("select", "season", seasonID, err)
	}
	return season, nil
}

func (r *catalogRepository) ListSeasons(ctx context.Context) ([]*models.Season, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var seasons []*models.Season
	if err := r.db.NewSelect().Model(&seasons).Order("s.created_at ASC").Scan(ctx); err != nil {
		return nil, handleError("select", "season", nil, err)
	}
	return seasons, nil
}

func (r *catalogRepository) UpdateSeason(ctx context.Context, season *models.Season) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model(season).
		Column("season_name", "season_description").
		WherePK().
		Exec(ctx)
	if err != nil {
		return handleError("update", "season", season.SeasonID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "season", ID: season.SeasonID}
	}
	return nil
}

func (r *catalogRepository) DeleteSeason(ctx context.Context, seasonID string) error {
	return r.deleteByID(ctx, (*models.Season)(nil), "s.season_id", "season", seasonID)
}

func (r *catalogRepository) SeasonInUse(ctx context.Context, seasonID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	for _, q := range []*bun.SelectQuery{
		r.db.NewSelect().Model((*models.CardDesign)(nil)).Where("cd.season_id = ?", seasonID),
		r.db.NewSelect().Model((*models.PackType)(nil)).Where("pt.season_id = ?", seasonID),
	} {
		exists, err := q.Exists(ctx)
		if err != nil {
			return false, handleError("select", "season", seasonID, err)
		}
		if exists {
			return true, nil
		}
	}
	return false, nil
}

// Designs

func (r *catalogRepository) CreateDesign(ctx context.Context, design *models.CardDesign) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now()
	design.CreatedAt = now
	design.UpdatedAt = now
	_, err := r.db.NewInsert().Model(design).Exec(ctx)
	return handleError("insert", "card design", design.DesignID, err)
}

func (r *catalogRepository) GetDesign(ctx context.Context, designID string) (*models.CardDesign, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	design := new(models.CardDesign)
	err := r.db.NewSelect().
		Model(design).
		Where("cd.design_id = ?", designID).
		Scan(ctx)
	if err != nil {
		return nil, handleError("select", "card design", designID, err)
	}
	return design, nil
}

// ListDesigns lists every design, or only those of seasonID when it is set.
func (r *catalogRepository) ListDesigns(ctx context.Context, seasonID string) ([]*models.CardDesign, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var designs []*models.CardDesign
	q := r.db.NewSelect().Model(&designs).Order("cd.card_name ASC")
	if seasonID != "" {
		q = q.Where("cd.season_id = ?", seasonID)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, handleError("select", "card design", seasonID, err)
	}
	return designs, nil
}

func (r *catalogRepository) UpdateDesignDescription(ctx context.Context, designID, description string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.CardDesign)(nil)).
		Set("card_description = NULLIF(?, '')", description).
		Set("updated_at = ?", time.Now()).
		Where("cd.design_id = ?", designID).
		Exec(ctx)
	if err != nil {
		return handleError("update", "card design", designID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "card design", ID: designID}
	}
	return nil
}

func (r *catalogRepository) DeleteDesign(ctx context.Context, designID string) error {
	return r.deleteByID(ctx, (*models.CardDesign)(nil), "cd.design_id", "card design", designID)
}

func (r *catalogRepository) CountDesignInstances(ctx context.Context, designID string) (int, error) {
	return r.count(ctx, (*models.CardInstance)(nil), "ci.design_id", "card instance", designID)
}

// Rarities

func (r *catalogRepository) CreateRarity(ctx context.Context, rarity *models.Rarity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rarity.CreatedAt = time.Now()
	_, err := r.db.NewInsert().Model(rarity).Exec(ctx)
	return handleError("insert", "rarity", rarity.RarityID, err)
}

func (r *catalogRepository) GetRarity(ctx context.Context, rarityID string) (*models.Rarity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rarity := new(models.Rarity)
	err := r.db.NewSelect().
		Model(rarity).
		Where("r.rarity_id = ?", rarityID).
		Scan(ctx)
	if err != nil {
		return nil, handleError("select", "rarity", rarityID, err)
	}
	return rarity, nil
}

// ListRarities orders from most to least common.
func (r *catalogRepository) ListRarities(ctx context.Context) ([]*models.Rarity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rarities []*models.Rarity
	if err := r.db.NewSelect().Model(&rarities).Order("r.default_count DESC", "r.rarity_name ASC").Scan(ctx); err != nil {
		return nil, handleError("select", "rarity", nil, err)
	}
	return rarities, nil
}

func (r *catalogRepository) DeleteRarity(ctx context.Context, rarityID string) error {
	return r.deleteByID(ctx, (*models.Rarity)(nil), "r.rarity_id", "rarity", rarityID)
}

func (r *catalogRepository) CountRarityInstances(ctx context.Context, rarityID string) (int, error) {
	return r.count(ctx, (*models.CardInstance)(nil), "ci.rarity_id", "card instance", rarityID)
}

// Pack types

func (r *catalogRepository) CreatePackType(ctx context.Context, packType *models.PackType) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	packType.CreatedAt = time.Now()
	_, err := r.db.NewInsert().Model(packType).Exec(ctx)
	return handleError("insert", "pack type", packType.PackTypeID, err)
}

func (r *catalogRepository) GetPackType(ctx context.Context, packTypeID string) (*models.PackType, error) {
	return getPackType(ctx, r.db, packTypeID)
}

func (r *catalogRepository) ListPackTypes(ctx context.Context) ([]*models.PackType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var packTypes []*models.PackType
	if err := r.db.NewSelect().Model(&packTypes).Order("pt.pack_type_name ASC").Scan(ctx); err != nil {
		return nil, handleError("select", "pack type", nil, err)
	}
	return packTypes, nil
}

func (r *catalogRepository) DeletePackType(ctx context.Context, packTypeID string) error {
	return r.deleteByID(ctx, (*models.PackType)(nil), "pt.pack_type_id", "pack type", packTypeID)
}

func (r *catalogRepository) CountPacksOfType(ctx context.Context, packTypeID string) (int, error) {
	return r.count(ctx, (*models.Pack)(nil), "p.pack_type_id", "pack", packTypeID)
}

func (r *catalogRepository) deleteByID(ctx context.Context, model any, column, entity, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.NewDelete().
		Model(model).
		Where("? = ?", bun.Ident(column), id).
		Exec(ctx)
	if err != nil {
		return handleError("delete", entity, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return nil
}

func (r *catalogRepository) count(ctx context.Context, model any, column, entity, id string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.db.NewSelect().
		Model(model).
		Where("? = ?", bun.Ident(column), id).
		Count(ctx)
	if err != nil {
		return 0, handleError("count", entity, id, err)
	}
	return n, nil
}
