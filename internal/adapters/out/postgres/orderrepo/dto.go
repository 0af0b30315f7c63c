// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
//
// An order is stored across four tables: orders, order_items, order_revenue_logs
// and order_audit_notes. The aggregate is always written and read as a whole.
package orderrepo

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Monetary fields use fixed-point decimals; the version column backs
// optimistic concurrency control on status mutation.
type OrderDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index"`
	ShopID     uuid.UUID `gorm:"type:uuid;index"`
	ZoneID     uuid.UUID `gorm:"type:uuid"`

	DeliveryAddress string

	Subtotal                  decimal.Decimal `gorm:"type:decimal(12,2)"`
	ShopDiscountAmount        decimal.Decimal `gorm:"type:decimal(12,2)"`
	PlatformDiscountAmount    decimal.Decimal `gorm:"type:decimal(12,2)"`
	AppliedShopDiscountID     *uuid.UUID      `gorm:"type:uuid"`
	AppliedPlatformDiscountID *uuid.UUID      `gorm:"type:uuid"`
	AppliedDeliveryRuleID     uuid.UUID       `gorm:"type:uuid"`
	FinalPayableAmount        decimal.Decimal `gorm:"type:decimal(12,2)"`
	DeliveryFee               decimal.Decimal `gorm:"type:decimal(12,2)"`
	IsSmallOrder              bool
	CommissionPercent         decimal.Decimal `gorm:"type:decimal(5,2)"`
	CommissionAmount          decimal.Decimal `gorm:"type:decimal(12,2)"`
	ShopSettlementAmount      decimal.Decimal `gorm:"type:decimal(12,2)"`
	GrandTotal                decimal.Decimal `gorm:"type:decimal(12,2)"`

	Status            string `gorm:"index"`
	FinalStatusLocked bool
	DeliveryOtp       string

	FailureReason string
	CancelReason  string
	CancelledBy   *string

	DeliveredAt *time.Time
	FailedAt    *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time

	Version int

	Items      []ItemDTO      `gorm:"foreignKey:OrderID"`
	RevenueLog RevenueLogDTO  `gorm:"foreignKey:OrderID"`
	AuditNotes []AuditNoteDTO `gorm:"foreignKey:OrderID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line with its price snapshot. The snapshot
// never changes after insertion, even when the catalog price moves. Position
// preserves the cart order for receipt display.
type ItemDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;index"`
	Position  int
	ProductID *uuid.UUID `gorm:"type:uuid"`
	Name      string
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2)"`
	Quantity  int
	IsCustom  bool
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// RevenueLogDTO is the one-to-one ledger row recording how the order's money
// was split. Written once at order creation and never recomputed.
type RevenueLogDTO struct {
	OrderID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderValue              decimal.Decimal `gorm:"type:decimal(12,2)"`
	DeliveryFeeCharged      decimal.Decimal `gorm:"type:decimal(12,2)"`
	CommissionAmount        decimal.Decimal `gorm:"type:decimal(12,2)"`
	ShopDeliveryEarning     decimal.Decimal `gorm:"type:decimal(12,2)"`
	PlatformDeliveryEarning decimal.Decimal `gorm:"type:decimal(12,2)"`
	ShopFinalEarning        decimal.Decimal `gorm:"type:decimal(12,2)"`
	PlatformFinalEarning    decimal.Decimal `gorm:"type:decimal(12,2)"`
	IsSmallOrder            bool
}

// TableName specifies the database table name for order revenue logs.
func (RevenueLogDTO) TableName() string {
	return "order_revenue_logs"
}

// AuditNoteDTO is an immutable record of an administrator status override.
type AuditNoteDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	ActorID    uuid.UUID `gorm:"type:uuid"`
	FromStatus string
	ToStatus   string
	Reason     string
	CreatedAt  time.Time
}

// TableName specifies the database table name for order audit notes.
func (AuditNoteDTO) TableName() string {
	return "order_audit_notes"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	pricing := aggregate.Pricing()
	log := aggregate.RevenueLog()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for position, item := range aggregate.Items() {
		var productID *uuid.UUID
		if item.ProductID() != nil {
			raw := item.ProductID().Bytes()
			productID = &raw
		}
		items = append(items, ItemDTO{
			ID:        uuid.New(),
			OrderID:   orderID,
			Position:  position,
			ProductID: productID,
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Amount(),
			Quantity:  item.Quantity(),
			IsCustom:  item.IsCustom(),
		})
	}

	notes := make([]AuditNoteDTO, 0, len(aggregate.AuditNotes()))
	for _, note := range aggregate.AuditNotes() {
		notes = append(notes, AuditNoteDTO{
			ID:         note.ID().Bytes(),
			OrderID:    orderID,
			ActorID:    note.ActorID().Bytes(),
			FromStatus: note.FromStatus().String(),
			ToStatus:   note.ToStatus().String(),
			Reason:     note.Reason(),
			CreatedAt:  note.CreatedAt(),
		})
	}

	var cancelledBy *string
	if aggregate.CancelledBy() != nil {
		role := string(*aggregate.CancelledBy())
		cancelledBy = &role
	}

	return OrderDTO{
		ID:                        orderID,
		CustomerID:                aggregate.CustomerID().Bytes(),
		ShopID:                    aggregate.ShopID().Bytes(),
		ZoneID:                    aggregate.ZoneID().Bytes(),
		DeliveryAddress:           aggregate.DeliveryAddress(),
		Subtotal:                  pricing.Subtotal.Amount(),
		ShopDiscountAmount:        pricing.ShopDiscount.Amount(),
		PlatformDiscountAmount:    pricing.PlatformDiscount.Amount(),
		AppliedShopDiscountID:     uuidPtr(pricing.AppliedShopDiscountID),
		AppliedPlatformDiscountID: uuidPtr(pricing.AppliedPlatformDiscountID),
		AppliedDeliveryRuleID:     pricing.AppliedDeliveryRuleID.Bytes(),
		FinalPayableAmount:        pricing.FinalPayable.Amount(),
		DeliveryFee:               pricing.DeliveryFee.Amount(),
		IsSmallOrder:              pricing.IsSmallOrder,
		CommissionPercent:         pricing.CommissionPercent.Value(),
		CommissionAmount:          pricing.CommissionAmount.Amount(),
		ShopSettlementAmount:      pricing.ShopSettlement.Amount(),
		GrandTotal:                pricing.GrandTotal.Amount(),
		Status:                    aggregate.Status().String(),
		FinalStatusLocked:         aggregate.IsFinalStatusLocked(),
		DeliveryOtp:               aggregate.DeliveryOtp(),
		FailureReason:             aggregate.FailureReason(),
		CancelReason:              aggregate.CancelReason(),
		CancelledBy:               cancelledBy,
		DeliveredAt:               aggregate.DeliveredAt(),
		FailedAt:                  aggregate.FailedAt(),
		CancelledAt:               aggregate.CancelledAt(),
		CreatedAt:                 aggregate.CreatedAt(),
		Version:                   aggregate.Version(),
		Items:                     items,
		RevenueLog: RevenueLogDTO{
			OrderID:                 orderID,
			OrderValue:              log.OrderValue().Amount(),
			DeliveryFeeCharged:      log.DeliveryFeeCharged().Amount(),
			CommissionAmount:        log.CommissionAmount().Amount(),
			ShopDeliveryEarning:     log.ShopDeliveryEarning().Amount(),
			PlatformDeliveryEarning: log.PlatformDeliveryEarning().Amount(),
			ShopFinalEarning:        log.ShopFinalEarning().Amount(),
			PlatformFinalEarning:    log.PlatformFinalEarning().Amount(),
			IsSmallOrder:            log.IsSmallOrder(),
		},
		AuditNotes: notes,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return nil, err
	}
	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return nil, err
	}

	// Preloaded associations carry no ordering guarantee.
	sort.Slice(dto.Items, func(i, j int) bool {
		return dto.Items[i].Position < dto.Items[j].Position
	})

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		var productID *kernel.UUID
		if itemDTO.ProductID != nil {
			pID, pErr := kernel.UUIDFromBytes((*itemDTO.ProductID)[:])
			if pErr != nil {
				return nil, pErr
			}
			productID = &pID
		}

		unitPrice, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}

		item, itemErr := order.NewItem(productID, itemDTO.Name, unitPrice, itemDTO.Quantity, itemDTO.IsCustom)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	notes := make([]order.AuditNote, 0, len(dto.AuditNotes))
	for _, noteDTO := range dto.AuditNotes {
		noteID, noteErr := kernel.UUIDFromBytes(noteDTO.ID[:])
		if noteErr != nil {
			return nil, noteErr
		}
		actorID, noteErr := kernel.UUIDFromBytes(noteDTO.ActorID[:])
		if noteErr != nil {
			return nil, noteErr
		}
		notes = append(notes, order.RestoreAuditNote(noteID, actorID,
			order.Status(noteDTO.FromStatus), order.Status(noteDTO.ToStatus),
			noteDTO.Reason, noteDTO.CreatedAt))
	}

	pricing, err := pricingFromDTO(dto)
	if err != nil {
		return nil, err
	}

	var cancelledBy *order.Role
	if dto.CancelledBy != nil {
		role := order.Role(*dto.CancelledBy)
		cancelledBy = &role
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                id,
		CustomerID:        customerID,
		ShopID:            shopID,
		ZoneID:            zoneID,
		DeliveryAddress:   dto.DeliveryAddress,
		Items:             items,
		Pricing:           pricing,
		RevenueLog:        revenueLogFromDTO(dto.RevenueLog),
		Status:            order.Status(dto.Status),
		FinalStatusLocked: dto.FinalStatusLocked,
		DeliveryOtp:       dto.DeliveryOtp,
		FailureReason:     dto.FailureReason,
		CancelReason:      dto.CancelReason,
		CancelledBy:       cancelledBy,
		DeliveredAt:       dto.DeliveredAt,
		FailedAt:          dto.FailedAt,
		CancelledAt:       dto.CancelledAt,
		CreatedAt:         dto.CreatedAt,
		Version:           dto.Version,
		AuditNotes:        notes,
	})
}

func pricingFromDTO(dto OrderDTO) (order.Pricing, error) {
	var pricing order.Pricing
	var err error

	if pricing.Subtotal, err = kernel.NewMoney(dto.Subtotal); err != nil {
		return order.Pricing{}, err
	}
	if pricing.ShopDiscount, err = kernel.NewMoney(dto.ShopDiscountAmount); err != nil {
		return order.Pricing{}, err
	}
	if pricing.PlatformDiscount, err = kernel.NewMoney(dto.PlatformDiscountAmount); err != nil {
		return order.Pricing{}, err
	}
	if pricing.FinalPayable, err = kernel.NewMoney(dto.FinalPayableAmount); err != nil {
		return order.Pricing{}, err
	}
	if pricing.DeliveryFee, err = kernel.NewMoney(dto.DeliveryFee); err != nil {
		return order.Pricing{}, err
	}
	if pricing.CommissionAmount, err = kernel.NewMoney(dto.CommissionAmount); err != nil {
		return order.Pricing{}, err
	}
	if pricing.ShopSettlement, err = kernel.NewMoney(dto.ShopSettlementAmount); err != nil {
		return order.Pricing{}, err
	}
	if pricing.GrandTotal, err = kernel.NewMoney(dto.GrandTotal); err != nil {
		return order.Pricing{}, err
	}
	if pricing.CommissionPercent, err = kernel.NewPercent(dto.CommissionPercent); err != nil {
		return order.Pricing{}, err
	}

	log := dto.RevenueLog
	if pricing.ShopDeliveryEarning, err = kernel.NewMoney(log.ShopDeliveryEarning); err != nil {
		return order.Pricing{}, err
	}
	if pricing.PlatformDeliveryEarning, err = kernel.NewMoney(log.PlatformDeliveryEarning); err != nil {
		return order.Pricing{}, err
	}
	if pricing.ShopFinalEarning, err = kernel.NewMoney(log.ShopFinalEarning); err != nil {
		return order.Pricing{}, err
	}
	if pricing.PlatformFinalEarning, err = kernel.NewMoney(log.PlatformFinalEarning); err != nil {
		return order.Pricing{}, err
	}

	pricing.IsSmallOrder = dto.IsSmallOrder

	if pricing.AppliedShopDiscountID, err = kernelUUIDPtr(dto.AppliedShopDiscountID); err != nil {
		return order.Pricing{}, err
	}
	if pricing.AppliedPlatformDiscountID, err = kernelUUIDPtr(dto.AppliedPlatformDiscountID); err != nil {
		return order.Pricing{}, err
	}
	if dto.AppliedDeliveryRuleID != uuid.Nil {
		if pricing.AppliedDeliveryRuleID, err = kernel.UUIDFromBytes(dto.AppliedDeliveryRuleID[:]); err != nil {
			return order.Pricing{}, err
		}
	}

	return pricing, nil
}

func revenueLogFromDTO(dto RevenueLogDTO) order.RevenueLog {
	money := func(d decimal.Decimal) kernel.Money {
		m, _ := kernel.NewMoney(d)
		return m
	}
	return order.NewRevenueLog(
		money(dto.OrderValue),
		money(dto.DeliveryFeeCharged),
		money(dto.CommissionAmount),
		money(dto.ShopDeliveryEarning),
		money(dto.PlatformDeliveryEarning),
		money(dto.ShopFinalEarning),
		money(dto.PlatformFinalEarning),
		dto.IsSmallOrder,
	)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
