package trades

import (
	"context"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetInstances(ctx context.Context, instanceIDs []string) ([]*models.CardInstance, error)

	CreateTrade(ctx context.Context, trade *models.Trade) error
	GetTrade(ctx context.Context, tradeID string) (*models.Trade, error)
	ListUserTrades(ctx context.Context, userID string) ([]*models.Trade, error)
	// UpdateTradeStatus moves a trade from one status to another and
	// returns a conflict when it is no longer in from.
	UpdateTradeStatus(ctx context.Context, tradeID string, from, to models.TradeStatus) error
	// ExecuteTrade swaps ownership of every card in a pending trade and marks
	// it accepted. It returns a conflict when either side no longer owns a
	// card or the trade is no longer pending.
	ExecuteTrade(ctx context.Context, tradeID string) (*models.Trade, error)

	CreateMoment(ctx context.Context, moment *models.Moment) error
}
