package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// ShopInfo is the read model the ordering flow needs about a shop: who owns
// it, which delivery zone it belongs to and which categories it sells in.
type ShopInfo struct {
	ID         kernel.UUID
	OwnerID    kernel.UUID
	ZoneID     kernel.UUID
	Categories []string
}

// ProductInfo is the read model for a live catalog product. Price is the
// current price and becomes the snapshot price on order lines.
type ProductInfo struct {
	ID     kernel.UUID
	ShopID kernel.UUID
	Name   string
	Price  kernel.Money
}

// ShopDirectory resolves shops to their owning zone and categories.
// Shop and product data are managed elsewhere; ordering only reads them.
type ShopDirectory interface {
	// Get retrieves shop info by id. Returns ObjectNotFoundError when the
	// shop does not exist and UnknownZoneError when the shop's zone
	// reference does not resolve to a known zone.
	Get(ctx context.Context, shopID kernel.UUID) (ShopInfo, error)
}

// ProductCatalog resolves catalog products for line-item validation.
type ProductCatalog interface {
	// Get retrieves product info by id. Returns ObjectNotFoundError when the
	// product does not exist.
	Get(ctx context.Context, productID kernel.UUID) (ProductInfo, error)
}
