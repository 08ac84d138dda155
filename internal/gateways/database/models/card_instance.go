package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CardInstance is one owned print of a design. Opened only ever goes from
// false to true.
type CardInstance struct {
	bun.BaseModel `bun:"table:card_instances,alias:ci"`

	InstanceID  string    `bun:"instance_id,pk" json:"instanceId"`
	DesignID    string    `bun:"design_id,notnull" json:"designId"`
	RarityID    string    `bun:"rarity_id,notnull" json:"rarityId"`
	PackID      string    `bun:"pack_id,nullzero" json:"packId,omitempty"`
	UserID      string    `bun:"user_id,nullzero" json:"userId,omitempty"`
	Username    string    `bun:"username,nullzero" json:"username,omitempty"`
	Opened      bool      `bun:"opened,notnull,default:false" json:"opened"`
	OpenedAt    time.Time `bun:"opened_at,nullzero" json:"openedAt,omitempty"`
	CardNumber  int       `bun:"card_number,notnull" json:"cardNumber"`
	TotalOfType int       `bun:"total_of_type,notnull" json:"totalOfType"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	Design *CardDesign `bun:"rel:belongs-to,join:design_id=design_id" json:"design,omitempty"`
	Rarity *Rarity     `bun:"rel:belongs-to,join:rarity_id=rarity_id" json:"rarity,omitempty"`
}
