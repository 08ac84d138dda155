package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Preorder struct {
	bun.BaseModel `bun:"table:preorders,alias:po"`

	PreorderID string    `bun:"preorder_id,pk" json:"preorderId"`
	UserID     string    `bun:"user_id,notnull" json:"userId"`
	Username   string    `bun:"username,notnull" json:"username"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
