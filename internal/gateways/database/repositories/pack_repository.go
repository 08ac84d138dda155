package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/errs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/packs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

type packRepository struct {
	db *bun.DB
}

var _ packs.Repository = &packRepository{}

func NewPackRepository(db *bun.DB) *packRepository {
	return &packRepository{db: db}
}

func (r *packRepository) GetInstance(ctx context.Context, instanceID string) (*models.CardInstance, error) {
	return getInstance(ctx, r.db, instanceID)
}

// OpenInstance is a compare-and-swap on opened. Only the caller whose UPDATE
// matches opened = FALSE decrements the pack.
func (r *packRepository) OpenInstance(ctx context.Context, instanceID string, openedAt time.Time) (*models.CardInstance, error) {
	instance := new(models.CardInstance)
	err := withTransaction(ctx, r.db, standardTx(), func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewUpdate().
			Model(instance).
			Set("opened = TRUE").
			Set("opened_at = ?", openedAt).
			Where("ci.instance_id = ?", instanceID).
			Where("ci.opened = FALSE").
			Returning("*").
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			exists, existsErr := tx.NewSelect().
				Model((*models.CardInstance)(nil)).
				Where("ci.instance_id = ?", instanceID).
				Exists(ctx)
			if existsErr != nil {
				return handleError("select", "card instance", instanceID, existsErr)
			}
			if exists {
				return errs.ErrAlreadyOpened
			}
			return &NotFoundError{Entity: "card instance", ID: instanceID}
		}
		if err != nil {
			return handleError("update", "card instance", instanceID, err)
		}

		if instance.PackID == "" {
			return nil
		}

		var remaining int
		err = tx.NewUpdate().
			Model((*models.Pack)(nil)).
			Set("remaining_cards = remaining_cards - 1").
			Where("p.pack_id = ?", instance.PackID).
			Where("p.remaining_cards > 0").
			Returning("remaining_cards").
			Scan(ctx, &remaining)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("pack %s has no remaining cards for instance %s", instance.PackID, instanceID)
		}
		if err != nil {
			return handleError("update", "pack", instance.PackID, err)
		}

		if remaining == 0 && instance.UserID != "" {
			if _, err := tx.NewUpdate().
				Model((*models.User)(nil)).
				Set("pack_count = pack_count - 1").
				Where("u.user_id = ?", instance.UserID).
				Where("u.pack_count > 0").
				Exec(ctx); err != nil {
				return handleError("update", "user", instance.UserID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

func (r *packRepository) GetPackType(ctx context.Context, packTypeID string) (*models.PackType, error) {
	return getPackType(ctx, r.db, packTypeID)
}

func getPackType(ctx context.Context, db bun.IDB, packTypeID string) (*models.PackType, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	packType := new(models.PackType)
	err := db.NewSelect().
		Model(packType).
		Where("pt.pack_type_id = ?", packTypeID).
		Scan(ctx)
	if err != nil {
		return nil, handleError("select", "pack type", packTypeID, err)
	}
	return packType, nil
}

func (r *packRepository) IssuePack(ctx context.Context, pack *models.Pack, packType *models.PackType) error {
	return withTransaction(ctx, r.db, standardTx(), func(ctx context.Context, tx bun.Tx) error {
		return issuePackTx(ctx, tx, pack, packType)
	})
}

func (r *packRepository) ConvertPreorder(ctx context.Context, preorder *models.Preorder, pack *models.Pack, packType *models.PackType) error {
	return withTransaction(ctx, r.db, standardTx(), func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().
			Model((*models.Preorder)(nil)).
			Where("po.preorder_id = ?", preorder.PreorderID).
			Exec(ctx)
		if err != nil {
			return handleError("delete", "preorder", preorder.PreorderID, err)
		}
		if n, _ := res.RowsAffected(); n != 1 {
			return &NotFoundError{Entity: "preorder", ID: preorder.PreorderID}
		}
		return issuePackTx(ctx, tx, pack, packType)
	})
}

type poolEntry struct {
	DesignID string `bun:"design_id"`
	Printed  int    `bun:"printed"`
}

// drawLockKey names the advisory lock every card draw holds until commit.
const drawLockKey = "indigestion:card-draw"

// issuePackTx draws one instance per composition slot from the designs that
// still have prints left at that rarity. Draws hold a transaction advisory
// lock, so under read committed each one counts the prints of every draw
// committed before it and two packs never receive the same card number.
func issuePackTx(ctx context.Context, tx bun.Tx, pack *models.Pack, packType *models.PackType) error {
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext(?))", drawLockKey); err != nil {
		return handleError("lock", "card draw", pack.PackID, err)
	}

	now := time.Now().UTC()
	drawn := make(map[string]int)
	var instances []*models.CardInstance

	for _, slot := range packType.Composition {
		rarity := new(models.Rarity)
		if err := tx.NewSelect().
			Model(rarity).
			Where("r.rarity_id = ?", slot.RarityID).
			Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errs.Conflict("Pack type %s names rarity %s, which no longer exists", packType.PackTypeName, slot.RarityID)
			}
			return handleError("select", "rarity", slot.RarityID, err)
		}

		var pool []poolEntry
		q := tx.NewSelect().
			TableExpr("card_designs AS d").
			ColumnExpr("d.design_id").
			ColumnExpr("COUNT(ci.instance_id) AS printed").
			Join("LEFT JOIN card_instances AS ci ON ci.design_id = d.design_id AND ci.rarity_id = ?", rarity.RarityID).
			GroupExpr("d.design_id").
			Having("COUNT(ci.instance_id) < ?", rarity.DefaultCount).
			OrderExpr("d.design_id")
		if packType.SeasonID != "" {
			q = q.Where("d.season_id = ?", packType.SeasonID)
		}
		if err := q.Scan(ctx, &pool); err != nil {
			return handleError("select", "card design", rarity.RarityID, err)
		}

		for i := 0; i < slot.Count; i++ {
			available := pool[:0:0]
			for _, entry := range pool {
				if entry.Printed+drawn[entry.DesignID+"/"+rarity.RarityID] < rarity.DefaultCount {
					available = append(available, entry)
				}
			}
			if len(available) == 0 {
				return errs.Conflict("No %s cards left to draw for pack type %s", rarity.RarityName, packType.PackTypeName)
			}

			pick := available[rand.IntN(len(available))]
			key := pick.DesignID + "/" + rarity.RarityID
			drawn[key]++

			instances = append(instances, &models.CardInstance{
				InstanceID:  uuid.NewString(),
				DesignID:    pick.DesignID,
				RarityID:    rarity.RarityID,
				PackID:      pack.PackID,
				UserID:      pack.UserID,
				Username:    pack.Username,
				CardNumber:  pick.Printed + drawn[key],
				TotalOfType: rarity.DefaultCount,
				CreatedAt:   now,
			})
		}
	}

	pack.RemainingCards = len(instances)
	pack.CreatedAt = now
	if _, err := tx.NewInsert().Model(pack).Exec(ctx); err != nil {
		return handleError("insert", "pack", pack.PackID, err)
	}
	if len(instances) > 0 {
		if _, err := tx.NewInsert().Model(&instances).Exec(ctx); err != nil {
			return handleError("insert", "card instance", pack.PackID, err)
		}
	}
	pack.Instances = instances

	if pack.UserID != "" {
		if _, err := tx.NewUpdate().
			Model((*models.User)(nil)).
			Set("pack_count = pack_count + 1").
			Set("updated_at = ?", now).
			Where("u.user_id = ?", pack.UserID).
			Exec(ctx); err != nil {
			return handleError("update", "user", pack.UserID, err)
		}
	}
	return nil
}

// ListUserPacks returns packs that still hold unopened cards, oldest first.
func (r *packRepository) ListUserPacks(ctx context.Context, userID string) ([]*models.Pack, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var result []*models.Pack
	err := r.db.NewSelect().
		Model(&result).
		Relation("PackType").
		Relation("Instances", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("ci.opened = FALSE").Order("ci.instance_id")
		}).
		Relation("Instances.Rarity").
		Where("p.user_id = ?", userID).
		Where("p.remaining_cards > 0").
		Order("p.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, handleError("select", "pack", userID, err)
	}
	return result, nil
}

func (r *packRepository) CreatePreorder(ctx context.Context, preorder *models.Preorder) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.db.NewInsert().
		Model(preorder).
		Exec(ctx)
	return handleError("insert", "preorder", preorder.PreorderID, err)
}

func (r *packRepository) ListPreorders(ctx context.Context) ([]*models.Preorder, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var preorders []*models.Preorder
	err := r.db.NewSelect().
		Model(&preorders).
		Order("po.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, handleError("select", "preorder", nil, err)
	}
	return preorders, nil
}

func (r *packRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return getUserByUsername(ctx, r.db, username)
}

func (r *packRepository) UpsertUser(ctx context.Context, user *models.User) error {
	return upsertUser(ctx, r.db, user)
}
