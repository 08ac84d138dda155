package models

import (
	"time"

	"github.com/uptrace/bun"
)

type CardDesign struct {
	bun.BaseModel `bun:"table:card_designs,alias:cd"`

	DesignID        string `bun:"design_id,pk" json:"designId"`
	CardName        string `bun:"card_name,notnull" json:"cardName"`
	CardDescription string `bun:"card_description,nullzero" json:"cardDescription,omitempty"`
	SeasonID        string `bun:"season_id,notnull" json:"seasonId"`
	Artist          string `bun:"artist,nullzero" json:"artist,omitempty"`
	ImageURL        string `bun:"image_url,notnull" json:"imageUrl"`
	ImageKey        string `bun:"image_key,nullzero" json:"-"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}
