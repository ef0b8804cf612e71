package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem snapshots the unit price at purchase time; rows are written once
// with their order and never mutated afterwards.
type OrderItem struct {
	ID        string          `gorm:"column:id;type:varchar(16);primaryKey"`
	OrderID   string          `gorm:"column:order_id;type:varchar(16);not null;index"`
	ProductID string          `gorm:"column:product_id;type:varchar(16);not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
