package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PackSlot asks for Count cards of one rarity.
type PackSlot struct {
	RarityID string `json:"rarityId" validate:"required"`
	Count    int    `json:"count" validate:"min=1,max=50"`
}

type PackType struct {
	bun.BaseModel `bun:"table:pack_types,alias:pt"`

	PackTypeID          string     `bun:"pack_type_id,pk" json:"packTypeId"`
	PackTypeName        string     `bun:"pack_type_name,notnull" json:"packTypeName"`
	PackTypeDescription string     `bun:"pack_type_description,nullzero" json:"packTypeDescription,omitempty"`
	SeasonID            string     `bun:"season_id,nullzero" json:"seasonId,omitempty"`
	Composition         []PackSlot `bun:"composition,type:jsonb,notnull" json:"composition"`
	CreatedAt           time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// CardCount is the number of cards a pack of this type holds.
func (p *PackType) CardCount() int {
	n := 0
	for _, slot := range p.Composition {
		n += slot.Count
	}
	return n
}
