package inventory

import (
	"context"

	"gorm.io/gorm"

	"github.com/vuminhngo/techstore-backend/pkg/db/models"
	apperrors "github.com/vuminhngo/techstore-backend/pkg/errors"
)

// Ledger applies stock reservations. It never opens its own transaction; the
// caller passes the transaction its order mutation runs in, so a failed
// reservation rolls back together with the rest of the order.
type Ledger struct{}

// NewLedger builds the inventory ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Reserve decrements product stock by quantity with a single conditional
// update. Zero rows affected means the product is missing or the remaining
// stock cannot cover the request; both surface as the same conflict so the
// caller aborts the transaction.
func (l *Ledger) Reserve(ctx context.Context, tx *gorm.DB, productID string, quantity int) error {
	if tx == nil {
		return apperrors.New(apperrors.CodeInternal, "inventory reservation requires a transaction")
	}
	if productID == "" {
		return apperrors.New(apperrors.CodeValidation, "product id is required")
	}
	if quantity <= 0 {
		return apperrors.New(apperrors.CodeValidation, "quantity must be positive")
	}

	res := tx.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND is_deleted = ? AND stock >= ?", productID, false, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return apperrors.Wrap(apperrors.CodeDependency, res.Error, "reserving stock")
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.CodeConflict, "insufficient stock").
			WithDetails(map[string]any{
				"product_id": productID,
				"quantity":   quantity,
			})
	}
	return nil
}
