// Package http exposes the order API over echo. The server translates JSON
// requests into commands and queries and maps domain errors onto HTTP
// response classes with errors.Is.
package http

import (
	"errors"
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler   commands.CreateOrderCommandHandler
	updateStatusHandler  commands.UpdateOrderStatusCommandHandler
	adminOverrideHandler commands.AdminOverrideStatusCommandHandler

	previewHandler  queries.CalculatePreviewQueryHandler
	getOrderHandler queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateStatusHandler commands.UpdateOrderStatusCommandHandler,
	adminOverrideHandler commands.AdminOverrideStatusCommandHandler,
	previewHandler queries.CalculatePreviewQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:   createOrderHandler,
		updateStatusHandler:  updateStatusHandler,
		adminOverrideHandler: adminOverrideHandler,
		previewHandler:       previewHandler,
		getOrderHandler:      getOrderHandler,
	}
}

// RegisterRoutes attaches the order API to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders/preview", s.CalculatePreview)
	v1.POST("/orders", s.CreateOrder)
	v1.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	v1.POST("/orders/:id/status/override", s.AdminOverrideStatus)
	v1.GET("/orders/:id", s.GetOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderItemRequest is one cart line in create and preview requests. Monetary
// values travel as decimal strings.
type OrderItemRequest struct {
	ProductID *string `json:"product_id,omitempty"`
	Name      string  `json:"name,omitempty"`
	UnitPrice *string `json:"unit_price,omitempty"`
	Quantity  int     `json:"quantity"`
	IsCustom  bool    `json:"is_custom"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerID      string             `json:"customer_id"`
	ShopID          string             `json:"shop_id"`
	DeliveryAddress string             `json:"delivery_address"`
	Category        *string            `json:"category,omitempty"`
	Items           []OrderItemRequest `json:"items"`
}

// CreateOrderResponse returns the id of the newly created order.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder handles POST /api/v1/orders - prices the cart and creates an order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}
	shopID, err := kernel.UUIDFromString(req.ShopID)
	if err != nil {
		return badRequest(ctx, "Invalid shop id")
	}

	items, err := orderItemInputs(req.Items)
	if err != nil {
		return badRequest(ctx, "Invalid items: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, customerID, shopID, req.DeliveryAddress, req.Category, items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{ID: orderID.String()})
}

// PreviewRequest is the body of POST /api/v1/orders/preview.
type PreviewRequest struct {
	ShopID   string             `json:"shop_id"`
	Category *string            `json:"category,omitempty"`
	Items    []OrderItemRequest `json:"items"`
}

// PreviewResponse is the quoted pricing breakdown for cart display.
type PreviewResponse struct {
	Subtotal         string `json:"subtotal"`
	ShopDiscount     string `json:"shop_discount"`
	PlatformDiscount string `json:"platform_discount"`
	FinalPayable     string `json:"final_payable"`
	DeliveryFee      string `json:"delivery_fee"`
	IsSmallOrder     bool   `json:"is_small_order"`

	CommissionPercent string `json:"commission_percent"`
	CommissionAmount  string `json:"commission_amount"`
	ShopSettlement    string `json:"shop_settlement"`
	GrandTotal        string `json:"grand_total"`

	AppliedShopDiscountID     *string `json:"applied_shop_discount_id,omitempty"`
	AppliedPlatformDiscountID *string `json:"applied_platform_discount_id,omitempty"`
	AppliedDeliveryRuleID     string  `json:"applied_delivery_rule_id"`
}

// CalculatePreview handles POST /api/v1/orders/preview - quotes a cart
// without creating anything.
func (s *Server) CalculatePreview(ctx echo.Context) error {
	var req PreviewRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shopID, err := kernel.UUIDFromString(req.ShopID)
	if err != nil {
		return badRequest(ctx, "Invalid shop id")
	}

	items, err := previewItemInputs(req.Items)
	if err != nil {
		return badRequest(ctx, "Invalid items: "+err.Error())
	}

	query, err := queries.NewCalculatePreviewQuery(shopID, req.Category, items)
	if err != nil {
		return badRequest(ctx, "Invalid preview request: "+err.Error())
	}

	preview, err := s.previewHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PreviewResponse{
		Subtotal:                  preview.Subtotal.String(),
		ShopDiscount:              preview.ShopDiscount.String(),
		PlatformDiscount:          preview.PlatformDiscount.String(),
		FinalPayable:              preview.FinalPayable.String(),
		DeliveryFee:               preview.DeliveryFee.String(),
		IsSmallOrder:              preview.IsSmallOrder,
		CommissionPercent:         preview.CommissionPercent.String(),
		CommissionAmount:          preview.CommissionAmount.String(),
		ShopSettlement:            preview.ShopSettlement.String(),
		GrandTotal:                preview.GrandTotal.String(),
		AppliedShopDiscountID:     uuidString(preview.AppliedShopDiscountID),
		AppliedPlatformDiscountID: uuidString(preview.AppliedPlatformDiscountID),
		AppliedDeliveryRuleID:     preview.AppliedDeliveryRuleID.String(),
	})
}

// UpdateStatusRequest is the body of PATCH /api/v1/orders/:id/status. The
// acting user comes from the X-Actor-Id and X-Actor-Role headers.
type UpdateStatusRequest struct {
	TargetStatus string `json:"target_status"`
	Otp          string `json:"otp,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - moves an order
// through its lifecycle on behalf of a customer, shop operator or admin and
// returns the updated order.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-Actor-Id"))
	if err != nil {
		return badRequest(ctx, "Missing or invalid X-Actor-Id header")
	}
	actorRole := order.Role(ctx.Request().Header.Get("X-Actor-Role"))

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(
		orderID, actorID, actorRole, order.Status(req.TargetStatus), req.Otp, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if handleErr := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return s.respondWithOrder(ctx, orderID, actorRole)
}

// OverrideStatusRequest is the body of POST /api/v1/orders/:id/status/override.
// The administrator's identity comes from the X-Actor-Id header.
type OverrideStatusRequest struct {
	TargetStatus string `json:"target_status"`
	Reason       string `json:"reason"`
}

// AdminOverrideStatus handles POST /api/v1/orders/:id/status/override - forces
// an order to an arbitrary status with a mandatory audit reason and returns
// the updated order.
func (s *Server) AdminOverrideStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	adminID, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-Actor-Id"))
	if err != nil {
		return badRequest(ctx, "Missing or invalid X-Actor-Id header")
	}

	var req OverrideStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAdminOverrideStatusCommand(
		orderID, adminID, order.Status(req.TargetStatus), req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid override: "+err.Error())
	}

	if handleErr := s.adminOverrideHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return s.respondWithOrder(ctx, orderID, order.RoleAdmin)
}

// OrderItemResponse is one stored order line.
type OrderItemResponse struct {
	ProductID *string `json:"product_id,omitempty"`
	Name      string  `json:"name"`
	UnitPrice string  `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	IsCustom  bool    `json:"is_custom"`
}

// OrderResponse is the full order read model for receipt display. The
// delivery OTP is present only for shop and admin callers.
type OrderResponse struct {
	ID              string `json:"id"`
	CustomerID      string `json:"customer_id"`
	ShopID          string `json:"shop_id"`
	ZoneID          string `json:"zone_id"`
	DeliveryAddress string `json:"delivery_address"`

	Subtotal          string `json:"subtotal"`
	ShopDiscount      string `json:"shop_discount"`
	PlatformDiscount  string `json:"platform_discount"`
	FinalPayable      string `json:"final_payable"`
	DeliveryFee       string `json:"delivery_fee"`
	IsSmallOrder      bool   `json:"is_small_order"`
	CommissionPercent string `json:"commission_percent"`
	CommissionAmount  string `json:"commission_amount"`
	ShopSettlement    string `json:"shop_settlement"`
	GrandTotal        string `json:"grand_total"`

	Status            string  `json:"status"`
	FinalStatusLocked bool    `json:"final_status_locked"`
	DeliveryOtp       *string `json:"delivery_otp,omitempty"`
	FailureReason     string  `json:"failure_reason,omitempty"`
	CancelReason      string  `json:"cancel_reason,omitempty"`
	CancelledBy       *string `json:"cancelled_by,omitempty"`

	DeliveredAt *string `json:"delivered_at,omitempty"`
	FailedAt    *string `json:"failed_at,omitempty"`
	CancelledAt *string `json:"cancelled_at,omitempty"`
	CreatedAt   string  `json:"created_at"`

	Items []OrderItemResponse `json:"items"`
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order with items.
// The optional X-Actor-Role header unlocks the delivery OTP for shop and
// admin callers.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	actorRole := order.Role(ctx.Request().Header.Get("X-Actor-Role"))
	return s.respondWithOrder(ctx, orderID, actorRole)
}

// respondWithOrder loads the order read model and writes it as the response.
// Shared by the lookup endpoint and both status mutations, which return the
// order they changed.
func (s *Server) respondWithOrder(ctx echo.Context, orderID kernel.UUID, actorRole order.Role) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse(resp, otpVisibleTo(actorRole)))
}

// otpVisibleTo reports whether the role may see the delivery OTP. The code is
// handed to the customer out of band; through the API only the delivering
// shop and admins read it back.
func otpVisibleTo(role order.Role) bool {
	return role == order.RoleShop || role == order.RoleAdmin
}

func orderResponse(resp queries.GetOrderQueryResponse, includeOtp bool) OrderResponse {
	items := make([]OrderItemResponse, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, OrderItemResponse{
			ProductID: uuidString(item.ProductID),
			Name:      item.Name,
			UnitPrice: item.UnitPrice.String(),
			Quantity:  item.Quantity,
			IsCustom:  item.IsCustom,
		})
	}

	var otp *string
	if includeOtp && resp.DeliveryOtp != "" {
		otp = &resp.DeliveryOtp
	}

	return OrderResponse{
		ID:                resp.ID.String(),
		CustomerID:        resp.CustomerID.String(),
		ShopID:            resp.ShopID.String(),
		ZoneID:            resp.ZoneID.String(),
		DeliveryAddress:   resp.DeliveryAddress,
		Subtotal:          resp.Subtotal.String(),
		ShopDiscount:      resp.ShopDiscount.String(),
		PlatformDiscount:  resp.PlatformDiscount.String(),
		FinalPayable:      resp.FinalPayable.String(),
		DeliveryFee:       resp.DeliveryFee.String(),
		IsSmallOrder:      resp.IsSmallOrder,
		CommissionPercent: resp.CommissionPercent.String(),
		CommissionAmount:  resp.CommissionAmount.String(),
		ShopSettlement:    resp.ShopSettlement.String(),
		GrandTotal:        resp.GrandTotal.String(),
		Status:            resp.Status,
		FinalStatusLocked: resp.FinalStatusLocked,
		DeliveryOtp:       otp,
		FailureReason:     resp.FailureReason,
		CancelReason:      resp.CancelReason,
		CancelledBy:       resp.CancelledBy,
		DeliveredAt:       timeString(resp.DeliveredAt),
		FailedAt:          timeString(resp.FailedAt),
		CancelledAt:       timeString(resp.CancelledAt),
		CreatedAt:         resp.CreatedAt.Format(timeLayout),
		Items:             items,
	}
}

const timeLayout = "2006-01-02T15:04:05Z07:00"

// domainError maps a use-case failure to an HTTP response. Checkout and
// lifecycle errors carry their messages verbatim so clients can act on them.
func domainError(ctx echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrVersionConflict),
		errors.Is(err, errs.ErrOrderLocked):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrRuleNotFound),
		errors.Is(err, errs.ErrMinimumOrderNotMet),
		errors.Is(err, errs.ErrUnknownZone):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidOtp),
		errors.Is(err, errs.ErrCancellationWindowExpired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		code = http.StatusBadRequest
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func orderItemInputs(items []OrderItemRequest) ([]commands.OrderItemInput, error) {
	inputs := make([]commands.OrderItemInput, 0, len(items))
	for _, item := range items {
		productID, unitPrice, err := parseItem(item)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, commands.OrderItemInput{
			ProductID: productID,
			Name:      item.Name,
			UnitPrice: unitPrice,
			Quantity:  item.Quantity,
			IsCustom:  item.IsCustom,
		})
	}
	return inputs, nil
}

func previewItemInputs(items []OrderItemRequest) ([]queries.PreviewItemInput, error) {
	inputs := make([]queries.PreviewItemInput, 0, len(items))
	for _, item := range items {
		productID, unitPrice, err := parseItem(item)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, queries.PreviewItemInput{
			ProductID: productID,
			Name:      item.Name,
			UnitPrice: unitPrice,
			Quantity:  item.Quantity,
			IsCustom:  item.IsCustom,
		})
	}
	return inputs, nil
}

func parseItem(item OrderItemRequest) (*kernel.UUID, *kernel.Money, error) {
	var productID *kernel.UUID
	if item.ProductID != nil {
		id, err := kernel.UUIDFromString(*item.ProductID)
		if err != nil {
			return nil, nil, err
		}
		productID = &id
	}

	var unitPrice *kernel.Money
	if item.UnitPrice != nil {
		price, err := kernel.MoneyFromString(*item.UnitPrice)
		if err != nil {
			return nil, nil, err
		}
		unitPrice = &price
	}

	return productID, unitPrice, nil
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func timeString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(timeLayout)
	return &s
}
