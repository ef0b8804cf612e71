package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/vuminhngo/techstore-backend/pkg/db/models"
	"github.com/vuminhngo/techstore-backend/pkg/enums"
)

// Repository defines persistence operations for order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) error
	FindProductsByID(ctx context.Context, ids []string) ([]models.Product, error)
}
