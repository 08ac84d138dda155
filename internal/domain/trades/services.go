package trades

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/errs"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/notify"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/session"
	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

const (
	maxCardsPerSide  = 20
	maxMessageLength = 280
)

type TradeInput struct {
	ReceiverUsername string
	Offered          []string
	Requested        []string
	Message          string
}

type Service interface {
	CreateTrade(ctx context.Context, sender *session.Session, in TradeInput) (*models.Trade, error)
	AcceptTrade(ctx context.Context, receiver *session.Session, tradeID string) (*models.Trade, error)
	RejectTrade(ctx context.Context, receiver *session.Session, tradeID string) error
	CancelTrade(ctx context.Context, sender *session.Session, tradeID string) error
	ListTrades(ctx context.Context, userID string) ([]*models.Trade, error)
	RedeemMoment(ctx context.Context, username string) (*models.Moment, error)
}

type service struct {
	repository Repository
	notifier   notify.Notifier
	now        func() time.Time
}

func NewService(repository Repository, notifier notify.Notifier) *service {
	if notifier == nil {
		notifier = notify.Nop()
	}
	return &service{
		repository: repository,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (s *service) CreateTrade(ctx context.Context, sender *session.Session, in TradeInput) (*models.Trade, error) {
	if !sender.Is(session.TypeUser, session.TypeAdmin) {
		return nil, errs.Unauthorized("You must be logged in to trade")
	}
	if len(in.Offered) == 0 && len(in.Requested) == 0 {
		return nil, errs.Validation("offered", "A trade must include at least one card")
	}
	if len(in.Offered) > maxCardsPerSide || len(in.Requested) > maxCardsPerSide {
		return nil, errs.Validation("offered", "Too many cards in trade")
	}
	if len(in.Message) > maxMessageLength {
		return nil, errs.Validation("message", "Message is too long")
	}
	if hasDuplicates(append(append([]string{}, in.Offered...), in.Requested...)) {
		return nil, errs.Validation("offered", "A card can only appear once in a trade")
	}

	receiver, err := s.repository.GetUserByUsername(ctx, strings.TrimSpace(in.ReceiverUsername))
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.NotFound("User %s not found", in.ReceiverUsername)
	}
	if err != nil {
		return nil, errs.Internal("failed to load receiver", err)
	}
	if receiver.UserID == sender.UserID {
		return nil, errs.Validation("receiverUsername", "You cannot trade with yourself")
	}

	if err := s.checkOwnership(ctx, in.Offered, sender.UserID); err != nil {
		return nil, err
	}
	if err := s.checkOwnership(ctx, in.Requested, receiver.UserID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	trade := &models.Trade{
		TradeID:          uuid.NewString(),
		SenderID:         sender.UserID,
		SenderUsername:   sender.Username,
		ReceiverID:       receiver.UserID,
		ReceiverUsername: receiver.Username,
		Offered:          nonNil(in.Offered),
		Requested:        nonNil(in.Requested),
		Message:          strings.TrimSpace(in.Message),
		Status:           models.TradePending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repository.CreateTrade(ctx, trade); err != nil {
		return nil, errs.Internal("failed to create trade", err)
	}
	return trade, nil
}

func (s *service) checkOwnership(ctx context.Context, ids []string, owner string) error {
	if len(ids) == 0 {
		return nil
	}
	instances, err := s.repository.GetInstances(ctx, ids)
	if err != nil {
		return errs.Internal("failed to load cards", err)
	}
	if len(instances) != len(ids) {
		return errs.NotFound("Card instance not found")
	}
	for _, inst := range instances {
		if inst.UserID != owner || !inst.Opened {
			return errs.Validation("offered", "Every card must be an opened card owned by its side of the trade")
		}
	}
	return nil
}

func (s *service) AcceptTrade(ctx context.Context, receiver *session.Session, tradeID string) (*models.Trade, error) {
	trade, err := s.getTrade(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if !receiver.Is(session.TypeUser, session.TypeAdmin) || trade.ReceiverID != receiver.UserID {
		return nil, errs.Unauthorized("Only the receiver can accept this trade")
	}
	if trade.Status != models.TradePending {
		return nil, errs.Conflict("Trade is already %s", trade.Status)
	}

	accepted, err := s.repository.ExecuteTrade(ctx, tradeID)
	if err != nil {
		if errs.KindOf(err) != errs.KindConflict {
			return nil, errs.Internal("failed to execute trade", err)
		}
		// The cards moved since the trade was offered.
		if uerr := s.repository.UpdateTradeStatus(ctx, tradeID, models.TradePending, models.TradeFailed); uerr != nil {
			slog.Warn("Failed to mark trade as failed",
				slog.String("trade_id", tradeID),
				slog.Any("error", uerr))
		}
		return nil, err
	}

	s.notifier.After(ctx, false, notify.Event{
		Name: notify.EventTradeAccepted,
		Detail: map[string]string{
			"tradeId":          accepted.TradeID,
			"senderId":         accepted.SenderID,
			"senderUsername":   accepted.SenderUsername,
			"receiverId":       accepted.ReceiverID,
			"receiverUsername": accepted.ReceiverUsername,
		},
	})
	return accepted, nil
}

func (s *service) RejectTrade(ctx context.Context, receiver *session.Session, tradeID string) error {
	trade, err := s.getTrade(ctx, tradeID)
	if err != nil {
		return err
	}
	if !receiver.Is(session.TypeUser, session.TypeAdmin) || trade.ReceiverID != receiver.UserID {
		return errs.Unauthorized("Only the receiver can reject this trade")
	}
	return s.transition(ctx, trade, models.TradeRejected)
}

func (s *service) CancelTrade(ctx context.Context, sender *session.Session, tradeID string) error {
	trade, err := s.getTrade(ctx, tradeID)
	if err != nil {
		return err
	}
	if !sender.Is(session.TypeUser, session.TypeAdmin) || trade.SenderID != sender.UserID {
		return errs.Unauthorized("Only the sender can cancel this trade")
	}
	return s.transition(ctx, trade, models.TradeCancelled)
}

func (s *service) transition(ctx context.Context, trade *models.Trade, to models.TradeStatus) error {
	if trade.Status != models.TradePending {
		return errs.Conflict("Trade is already %s", trade.Status)
	}
	err := s.repository.UpdateTradeStatus(ctx, trade.TradeID, models.TradePending, to)
	if err != nil && errs.KindOf(err) != errs.KindConflict {
		return errs.Internal("failed to update trade", err)
	}
	return err
}

func (s *service) ListTrades(ctx context.Context, userID string) ([]*models.Trade, error) {
	trades, err := s.repository.ListUserTrades(ctx, userID)
	if err != nil {
		return nil, errs.Internal("failed to list trades", err)
	}
	return trades, nil
}

// RedeemMoment records a channel point redemption and tells downstream
// consumers about it.
func (s *service) RedeemMoment(ctx context.Context, username string) (*models.Moment, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errs.Validation("username", "username is required")
	}
	user, err := s.repository.GetUserByUsername(ctx, username)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.NotFound("User %s not found", username)
	}
	if err != nil {
		return nil, errs.Internal("failed to load user", err)
	}

	moment := &models.Moment{
		MomentID:   uuid.NewString(),
		UserID:     user.UserID,
		Username:   user.Username,
		RedeemedAt: s.now().UTC(),
	}
	if err := s.repository.CreateMoment(ctx, moment); err != nil {
		return nil, errs.Internal("failed to record moment", err)
	}

	s.notifier.After(ctx, false, notify.Event{
		Name: notify.EventMomentRedeemed,
		Detail: map[string]string{
			"userId":   moment.UserID,
			"username": moment.Username,
			"momentId": moment.MomentID,
		},
	})
	return moment, nil
}

func (s *service) getTrade(ctx context.Context, tradeID string) (*models.Trade, error) {
	if tradeID == "" {
		return nil, errs.Validation("tradeId", "tradeId is required")
	}
	trade, err := s.repository.GetTrade(ctx, tradeID)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.NotFound("Trade not found")
	}
	if err != nil {
		return nil, errs.Internal("failed to load trade", err)
	}
	return trade, nil
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
