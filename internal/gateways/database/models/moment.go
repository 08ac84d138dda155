package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Moment records a channel point redemption reported by the stream bot.
type Moment struct {
	bun.BaseModel `bun:"table:moments,alias:m"`

	MomentID   string    `bun:"moment_id,pk" json:"momentId"`
	UserID     string    `bun:"user_id,notnull" json:"userId"`
	Username   string    `bun:"username,notnull" json:"username"`
	RedeemedAt time.Time `bun:"redeemed_at,notnull,default:current_timestamp" json:"redeemedAt"`
}
