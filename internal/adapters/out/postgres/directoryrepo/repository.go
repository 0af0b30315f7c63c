package directoryrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// GormShopDirectory implements ShopDirectory using GORM.
type GormShopDirectory struct {
	db *gorm.DB
}

// NewGormShopDirectory creates a new GORM shop directory.
func NewGormShopDirectory(db *gorm.DB) *GormShopDirectory {
	return &GormShopDirectory{db: db}
}

// Get returns the shop's directory record. The shop's zone reference is
// verified against the zones table; a dangling zone_id fails the lookup so an
// order can never be priced against a zone that no longer exists.
func (d *GormShopDirectory) Get(ctx context.Context, shopID kernel.UUID) (ports.ShopInfo, error) {
	if err := shopID.Validate(); err != nil {
		return ports.ShopInfo{}, err
	}

	var dto ShopDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", shopID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ShopInfo{}, errs.NewObjectNotFoundError("shop", shopID.String())
		}
		return ports.ShopInfo{}, err
	}

	var zoneCount int64
	if err := d.db.WithContext(ctx).Model(&ZoneDTO{}).
		Where("id = ?", dto.ZoneID).Count(&zoneCount).Error; err != nil {
		return ports.ShopInfo{}, err
	}
	if zoneCount == 0 {
		return ports.ShopInfo{}, errs.NewUnknownZoneError(shopID.String(), dto.ZoneID.String())
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.ShopInfo{}, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return ports.ShopInfo{}, err
	}
	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return ports.ShopInfo{}, err
	}

	return ports.ShopInfo{
		ID:         id,
		OwnerID:    ownerID,
		ZoneID:     zoneID,
		Categories: dto.Categories,
	}, nil
}

// GormProductCatalog implements ProductCatalog using GORM.
type GormProductCatalog struct {
	db *gorm.DB
}

// NewGormProductCatalog creates a new GORM product catalog.
func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// Get returns the product's current catalog record. Order creation copies the
// returned price into the line item; later catalog edits never touch it.
func (c *GormProductCatalog) Get(ctx context.Context, productID kernel.UUID) (ports.ProductInfo, error) {
	if err := productID.Validate(); err != nil {
		return ports.ProductInfo{}, err
	}

	var dto ProductDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", productID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ProductInfo{}, errs.NewObjectNotFoundError("product", productID.String())
		}
		return ports.ProductInfo{}, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.ProductInfo{}, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return ports.ProductInfo{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return ports.ProductInfo{}, err
	}

	return ports.ProductInfo{
		ID:     id,
		ShopID: shopID,
		Name:   dto.Name,
		Price:  price,
	}, nil
}
