package repositories

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/errs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/trades"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

type tradeRepository struct {
	db *bun.DB
}

var _ trades.Repository = &tradeRepository{}

func NewTradeRepository(db *bun.DB) *tradeRepository {
	return &tradeRepository{db: db}
}

func (r *tradeRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return getUserByUsername(ctx, r.db, username)
}

func (r *tradeRepository) GetInstances(ctx context.Context, instanceIDs []string) ([]*models.CardInstance, error) {
	return getInstances(ctx, r.db, instanceIDs, false)
}

func getInstances(ctx context.Context, db bun.IDB, instanceIDs []string, forUpdate bool) ([]*models.CardInstance, error) {
	var instances []*models.CardInstance
	if len(instanceIDs) == 0 {
		return instances, nil
	}

	q := db.NewSelect().
		Model(&instances).
		Where("ci.instance_id IN (?)", bun.In(instanceIDs)).
		Order("ci.instance_id")
	if forUpdate {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		return nil, handleError("select", "card instance", instanceIDs, err)
	}
	return instances, nil
}

func (r *tradeRepository) CreateTrade(ctx context.Context, trade *models.Trade) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now()
	trade.CreatedAt = now
	trade.UpdatedAt = now
	_, err := r.db.NewInsert().Model(trade).Exec(ctx)
	return handleError("insert", "trade", trade.TradeID, err)
}

func (r *tradeRepository) GetTrade(ctx context.Context, tradeID string) (*models.Trade, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	trade := new(models.Trade)
	err := r.db.NewSelect().
		Model(trade).
		Where("t.trade_id = ?", tradeID).
		Scan(ctx)
	if err != nil {
		return nil, handleError("select", "trade", tradeID, err)
	}
	return trade, nil
}

// ListUserTrades returns trades the user sent or received, newest first.
func (r *tradeRepository) ListUserTrades(ctx context.Context, userID string) ([]*models.Trade, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var result []*models.Trade
	err := r.db.NewSelect().
		Model(&result).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("t.sender_id = ?", userID).WhereOr("t.receiver_id = ?", userID)
		}).
		Order("t.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, handleError("select", "trade", userID, err)
	}
	return result, nil
}

func (r *tradeRepository) UpdateTradeStatus(ctx context.Context, tradeID string, from, to models.TradeStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.Trade)(nil)).
		Set("status = ?", to).
		Set("updated_at = ?", time.Now()).
		Where("t.trade_id = ?", tradeID).
		Where("t.status = ?", from).
		Exec(ctx)
	if err != nil {
		return handleError("update", "trade", tradeID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.Conflict("Trade is no longer %s", from)
	}
	return nil
}

// ExecuteTrade locks the trade and every card in it, verifies ownership on
// both sides and swaps owners.
func (r *tradeRepository) ExecuteTrade(ctx context.Context, tradeID string) (*models.Trade, error) {
	trade := new(models.Trade)
	err := withTransaction(ctx, r.db, serializableTx(), func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().
			Model(trade).
			Where("t.trade_id = ?", tradeID).
			For("UPDATE").
			Scan(ctx); err != nil {
			return handleError("select", "trade", tradeID, err)
		}
		if trade.Status != models.TradePending {
			return errs.Conflict("Trade is no longer pending")
		}

		if err := verifyOwnership(ctx, tx, trade.Offered, trade.SenderID, trade.SenderUsername); err != nil {
			return err
		}
		if err := verifyOwnership(ctx, tx, trade.Requested, trade.ReceiverID, trade.ReceiverUsername); err != nil {
			return err
		}

		if err := transferInstances(ctx, tx, trade.Offered, trade.ReceiverID, trade.ReceiverUsername); err != nil {
			return err
		}
		if err := transferInstances(ctx, tx, trade.Requested, trade.SenderID, trade.SenderUsername); err != nil {
			return err
		}

		trade.Status = models.TradeAccepted
		trade.UpdatedAt = time.Now()
		if _, err := tx.NewUpdate().
			Model(trade).
			Column("status", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return handleError("update", "trade", tradeID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return trade, nil
}

func verifyOwnership(ctx context.Context, tx bun.Tx, instanceIDs []string, userID, username string) error {
	instances, err := getInstances(ctx, tx, instanceIDs, true)
	if err != nil {
		return err
	}
	owned := make(map[string]bool, len(instances))
	for _, inst := range instances {
		if inst.UserID == userID && inst.Opened {
			owned[inst.InstanceID] = true
		}
	}
	for _, id := range instanceIDs {
		if !owned[id] {
			return errs.Conflict("%s no longer owns card %s", username, id)
		}
	}
	return nil
}

func transferInstances(ctx context.Context, tx bun.Tx, instanceIDs []string, userID, username string) error {
	if len(instanceIDs) == 0 {
		return nil
	}
	_, err := tx.NewUpdate().
		Model((*models.CardInstance)(nil)).
		Set("user_id = ?", userID).
		Set("username = ?", username).
		Where("ci.instance_id IN (?)", bun.In(instanceIDs)).
		Exec(ctx)
	return handleError("update", "card instance", instanceIDs, err)
}

func (r *tradeRepository) CreateMoment(ctx context.Context, moment *models.Moment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if moment.RedeemedAt.IsZero() {
		moment.RedeemedAt = time.Now()
	}
	_, err := r.db.NewInsert().Model(moment).Exec(ctx)
	return handleError("insert", "moment", moment.MomentID, err)
}
