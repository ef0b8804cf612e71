package models

import (
	"time"

	"github.com/vuminhngo/techstore-backend/pkg/enums"
)

// User represents the canonical customer identity, including the loyalty
// fields the order lifecycle mutates (points balance, derived tier, last
// shipping contact snapshot).
type User struct {
	ID        string     `gorm:"column:id;type:varchar(16);primaryKey"`
	Email     string     `gorm:"type:text;not null;uniqueIndex"`
	Name      string     `gorm:"column:name;not null"`
	Picture   *string    `gorm:"column:picture"`
	Role      string     `gorm:"column:role;not null;default:'customer'"`
	Status    string     `gorm:"column:status;not null;default:'active'"`
	Points    int        `gorm:"column:points;not null;default:0"`
	Level     enums.Tier `gorm:"column:level;not null;default:'member'"`
	Phone     *string    `gorm:"column:phone"`
	Address   *string    `gorm:"column:address"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
