package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// GetOrderQueryHandler reads an order and its line items straight from the
// database, bypassing the aggregate. Read-only display path.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order lookups.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError when no order with
// the id exists.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp, err := h.fetchOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	items, err := h.fetchItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderQueryHandler) fetchOrder(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			shop_id,
			zone_id,
			delivery_address,
			subtotal,
			shop_discount_amount,
			platform_discount_amount,
			final_payable_amount,
			delivery_fee,
			is_small_order,
			commission_percent,
			commission_amount,
			shop_settlement_amount,
			grand_total,
			status,
			final_status_locked,
			delivery_otp,
			failure_reason,
			cancel_reason,
			cancelled_by,
			delivered_at,
			failed_at,
			cancelled_at,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.String()).Row()

	var resp GetOrderQueryResponse
	var id, customerID, shopID, zoneID uuid.UUID
	var subtotal, shopDiscount, platformDiscount, finalPayable decimal.Decimal
	var deliveryFee, commissionPercent, commissionAmount, shopSettlement, grandTotal decimal.Decimal
	var cancelledBy sql.NullString

	err := row.Scan(
		&id,
		&customerID,
		&shopID,
		&zoneID,
		&resp.DeliveryAddress,
		&subtotal,
		&shopDiscount,
		&platformDiscount,
		&finalPayable,
		&deliveryFee,
		&resp.IsSmallOrder,
		&commissionPercent,
		&commissionAmount,
		&shopSettlement,
		&grandTotal,
		&resp.Status,
		&resp.FinalStatusLocked,
		&resp.DeliveryOtp,
		&resp.FailureReason,
		&resp.CancelReason,
		&cancelledBy,
		&resp.DeliveredAt,
		&resp.FailedAt,
		&resp.CancelledAt,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.ShopID, err = kernel.UUIDFromBytes(shopID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.ZoneID, err = kernel.UUIDFromBytes(zoneID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	amounts := map[*kernel.Money]decimal.Decimal{
		&resp.Subtotal:         subtotal,
		&resp.ShopDiscount:     shopDiscount,
		&resp.PlatformDiscount: platformDiscount,
		&resp.FinalPayable:     finalPayable,
		&resp.DeliveryFee:      deliveryFee,
		&resp.CommissionAmount: commissionAmount,
		&resp.ShopSettlement:   shopSettlement,
		&resp.GrandTotal:       grandTotal,
	}
	for dst, amount := range amounts {
		if *dst, err = kernel.NewMoney(amount); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	if resp.CommissionPercent, err = kernel.NewPercent(commissionPercent); err != nil {
		return GetOrderQueryResponse{}, err
	}

	if cancelledBy.Valid {
		resp.CancelledBy = &cancelledBy.String
	}

	return resp, nil
}

func (h GetOrderQueryHandler) fetchItems(ctx context.Context, orderID kernel.UUID) ([]GetOrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			name,
			unit_price,
			quantity,
			is_custom
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GetOrderItemResponse, 0)
	for rows.Next() {
		var item GetOrderItemResponse
		var productID uuid.NullUUID
		var unitPrice decimal.Decimal

		if err = rows.Scan(&productID, &item.Name, &unitPrice, &item.Quantity, &item.IsCustom); err != nil {
			return nil, err
		}

		if item.UnitPrice, err = kernel.NewMoney(unitPrice); err != nil {
			return nil, err
		}

		if productID.Valid {
			id, idErr := kernel.UUIDFromBytes(productID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			item.ProductID = &id
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
