package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Season struct {
	bun.BaseModel `bun:"table:seasons,alias:s"`

	SeasonID          string    `bun:"season_id,pk" json:"seasonId"`
	SeasonName        string    `bun:"season_name,notnull" json:"seasonName"`
	SeasonDescription string    `bun:"season_description,nullzero" json:"seasonDescription,omitempty"`
	CreatedAt         time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
