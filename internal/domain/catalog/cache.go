package catalog

import (
	"context"

	lru "github.com/hashicorp/golang-lru"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/gateways/database/models"
)

const defaultCacheSize = 512

// Lookup is the read side the cache sits in front of.
type Lookup interface {
	GetDesign(ctx context.Context, designID string) (*models.CardDesign, error)
	GetRarity(ctx context.Context, rarityID string) (*models.Rarity, error)
}

// Cache memoises designs and rarities by id. Admin mutations go through
// Service, which invalidates the affected key.
type Cache struct {
	lookup   Lookup
	designs  *lru.Cache
	rarities *lru.Cache
}

func NewCache(lookup Lookup, size int) (*Cache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	designs, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	rarities, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{lookup: lookup, designs: designs, rarities: rarities}, nil
}

func (c *Cache) Design(ctx context.Context, designID string) (*models.CardDesign, error) {
	if v, ok := c.designs.Get(designID); ok {
		return v.(*models.CardDesign), nil
	}
	d, err := c.lookup.GetDesign(ctx, designID)
	if err != nil {
		return nil, err
	}
	c.designs.Add(designID, d)
	return d, nil
}

func (c *Cache) Rarity(ctx context.Context, rarityID string) (*models.Rarity, error) {
	if v, ok := c.rarities.Get(rarityID); ok {
		return v.(*models.Rarity), nil
	}
	r, err := c.lookup.GetRarity(ctx, rarityID)
	if err != nil {
		return nil, err
	}
	c.rarities.Add(rarityID, r)
	return r, nil
}

func (c *Cache) InvalidateDesign(designID string) {
	c.designs.Remove(designID)
}

func (c *Cache) InvalidateRarity(rarityID string) {
	c.rarities.Remove(rarityID)
}
