package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product carries the inventory-relevant fields of a catalog listing. Stock is
// only ever decremented by the inventory reservation inside an order-creation
// transaction and must never go negative.
type Product struct {
	ID          string          `gorm:"column:id;type:varchar(16);primaryKey"`
	CategoryID  string          `gorm:"column:category_id;type:varchar(16);not null"`
	Name        string          `gorm:"column:name;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(14,2);not null"`
	Stock       int             `gorm:"column:stock;not null;default:0"`
	Description *string         `gorm:"column:description"`
	IsDeleted   bool            `gorm:"column:is_deleted;not null;default:false"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
