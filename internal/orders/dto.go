package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vuminhngo/techstore-backend/pkg/enums"
)

// CreateOrderItemInput is one requested line of a new order. The unit price
// is snapshotted server-side from the product catalog, never trusted from
// the client.
type CreateOrderItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderInput carries everything needed to place an order.
type CreateOrderInput struct {
	UserID          string
	Items           []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
	ShippingName    string                 `json:"shipping_name" validate:"required"`
	ShippingPhone   string                 `json:"shipping_phone" validate:"required"`
	ShippingAddress string                 `json:"shipping_address" validate:"required"`
	Note            *string                `json:"note"`
}

// CreateOrderResult is returned to the buyer after a successful placement.
// Points are earned but not yet credited; crediting happens on completion.
type CreateOrderResult struct {
	OrderID      string          `json:"order_id"`
	PointsEarned int             `json:"points_earned"`
	FinalAmount  decimal.Decimal `json:"final_amount"`
}

// UpdateStatusInput captures an admin-driven status change.
type UpdateStatusInput struct {
	OrderID string
	Target  enums.OrderStatus
}

// OrderSummary is the listing row for order history views.
type OrderSummary struct {
	ID           string            `json:"id"`
	FinalAmount  decimal.Decimal   `json:"final_amount"`
	Status       enums.OrderStatus `json:"status"`
	PointsEarned int               `json:"points_earned"`
	CreatedAt    time.Time         `json:"created_at"`
}
