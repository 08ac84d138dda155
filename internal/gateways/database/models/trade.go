package models

import (
	"time"

	"github.com/uptrace/bun"
)

type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeRejected  TradeStatus = "rejected"
	TradeCancelled TradeStatus = "cancelled"
	TradeFailed    TradeStatus = "failed"
)

type Trade struct {
	bun.BaseModel `bun:"table:trades,alias:t"`

	TradeID          string      `bun:"trade_id,pk" json:"tradeId"`
	SenderID         string      `bun:"sender_id,notnull" json:"senderId"`
	SenderUsername   string      `bun:"sender_username,notnull" json:"senderUsername"`
	ReceiverID       string      `bun:"receiver_id,notnull" json:"receiverId"`
	ReceiverUsername string      `bun:"receiver_username,notnull" json:"receiverUsername"`
	Offered          []string    `bun:"offered,type:jsonb,notnull" json:"offered"`
	Requested        []string    `bun:"requested,type:jsonb,notnull" json:"requested"`
	Message          string      `bun:"message,nullzero" json:"message,omitempty"`
	Status           TradeStatus `bun:"status,notnull" json:"status"`
	CreatedAt        time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt        time.Time   `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}
