// Package directoryrepo reads the shop, zone and product reference tables.
// Orders never mutate these rows; the package exists so pricing and order
// creation can resolve a shop's zone and snapshot product prices.
package directoryrepo

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ShopDTO represents the database structure for shops. Every shop carries an
// explicit zone_id foreign key; orders and rule lookups resolve the zone
// through it rather than through any address heuristic.
type ShopDTO struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OwnerID    uuid.UUID      `gorm:"type:uuid;index"`
	ZoneID     uuid.UUID      `gorm:"type:uuid;index"`
	Name       string
	Categories pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the database table name for shops.
func (ShopDTO) TableName() string {
	return "shops"
}

// ZoneDTO represents the database structure for delivery zones.
type ZoneDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

// TableName specifies the database table name for zones.
func (ZoneDTO) TableName() string {
	return "zones"
}

// ProductDTO represents the database structure for catalog products.
type ProductDTO struct {
	ID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShopID uuid.UUID       `gorm:"type:uuid;index"`
	Name   string
	Price  decimal.Decimal `gorm:"type:decimal(12,2)"`
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}
