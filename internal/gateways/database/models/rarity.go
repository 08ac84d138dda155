package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Rarity caps how many prints of one design can exist at that rarity.
type Rarity struct {
	bun.BaseModel `bun:"table:rarities,alias:r"`

	RarityID     string    `bun:"rarity_id,pk" json:"rarityId"`
	RarityName   string    `bun:"rarity_name,notnull" json:"rarityName"`
	DefaultCount int       `bun:"default_count,notnull" json:"defaultCount"`
	FrameURL     string    `bun:"frame_url,nullzero" json:"frameUrl,omitempty"`
	FrameKey     string    `bun:"frame_key,nullzero" json:"-"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
