package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vuminhngo/techstore-backend/pkg/enums"
)

// Order is created atomically with its items and only ever mutated through
// the lifecycle state machine; rows are never deleted.
type Order struct {
	ID              string            `gorm:"column:id;type:varchar(16);primaryKey"`
	UserID          string            `gorm:"column:user_id;type:varchar(16);not null;index"`
	TotalAmount     decimal.Decimal   `gorm:"column:total_amount;type:numeric(14,2);not null"`
	DiscountAmount  decimal.Decimal   `gorm:"column:discount_amount;type:numeric(14,2);not null"`
	FinalAmount     decimal.Decimal   `gorm:"column:final_amount;type:numeric(14,2);not null"`
	PointsEarned    int               `gorm:"column:points_earned;not null;default:0"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'created'"`
	ShippingName    string            `gorm:"column:shipping_name;not null"`
	ShippingPhone   string            `gorm:"column:shipping_phone;not null"`
	ShippingAddress string            `gorm:"column:shipping_address;not null"`
	Note            *string           `gorm:"column:note"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
