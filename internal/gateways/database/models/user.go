package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User is keyed by the Twitch user id; Username follows the Twitch login and
// may change.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UserID       string `bun:"user_id,pk" json:"userId"`
	Username     string `bun:"username,notnull,unique" json:"username"`
	PackCount    int    `bun:"pack_count,notnull,default:0" json:"packCount"`
	LookingFor   string `bun:"looking_for,nullzero" json:"lookingFor,omitempty"`
	PinnedCardID string `bun:"pinned_card_id,nullzero" json:"pinnedCardId,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}
