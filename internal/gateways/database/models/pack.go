package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Pack is a bundle of card instances. RemainingCards counts the unopened ones.
type Pack struct {
	bun.BaseModel `bun:"table:packs,alias:p"`

	PackID         string    `bun:"pack_id,pk" json:"packId"`
	UserID         string    `bun:"user_id,nullzero" json:"userId,omitempty"`
	Username       string    `bun:"username,nullzero" json:"username,omitempty"`
	PackTypeID     string    `bun:"pack_type_id,notnull" json:"packTypeId"`
	RemainingCards int       `bun:"remaining_cards,notnull" json:"remainingCards"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	Instances []*CardInstance `bun:"rel:has-many,join:pack_id=pack_id" json:"instances,omitempty"`
	PackType  *PackType       `bun:"rel:belongs-to,join:pack_type_id=pack_type_id" json:"packType,omitempty"`
}
