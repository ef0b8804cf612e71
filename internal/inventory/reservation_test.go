package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vuminhngo/techstore-backend/pkg/db/models"
	apperrors "github.com/vuminhngo/techstore-backend/pkg/errors"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  description TEXT,
  is_deleted INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, id string, stock int) {
	t.Helper()

	require.NoError(t, db.Create(&models.Product{
		ID:         id,
		CategoryID: "cat-1",
		Name:       "Mechanical Keyboard",
		Price:      decimal.NewFromInt(1290000),
		Stock:      stock,
	}).Error)
}

func productStock(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()

	var product models.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return product.Stock
}

func TestReserveDecrementsStock(t *testing.T) {
	db := setupInventoryTestDB(t)
	ledger := NewLedger()
	seedProduct(t, db, "prod-1", 10)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.Reserve(context.Background(), tx, "prod-1", 3)
	})
	require.NoError(t, err)
	assert.Equal(t, 7, productStock(t, db, "prod-1"))
}

func TestReserveExactRemainingStock(t *testing.T) {
	db := setupInventoryTestDB(t)
	ledger := NewLedger()
	seedProduct(t, db, "prod-1", 4)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.Reserve(context.Background(), tx, "prod-1", 4)
	})
	require.NoError(t, err)
	assert.Equal(t, 0, productStock(t, db, "prod-1"))
}

func TestReserveInsufficientStock(t *testing.T) {
	db := setupInventoryTestDB(t)
	ledger := NewLedger()
	seedProduct(t, db, "prod-1", 2)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.Reserve(context.Background(), tx, "prod-1", 3)
	})
	require.Error(t, err)

	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeConflict, typed.Code())
	assert.Equal(t, 2, productStock(t, db, "prod-1"), "failed reservation must not change stock")
}

func TestReserveUnknownProduct(t *testing.T) {
	db := setupInventoryTestDB(t)
	ledger := NewLedger()

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.Reserve(context.Background(), tx, "ghost", 1)
	})
	require.Error(t, err)
	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeConflict, typed.Code())
}

func TestReserveRejectsNonPositiveQuantity(t *testing.T) {
	db := setupInventoryTestDB(t)
	ledger := NewLedger()
	seedProduct(t, db, "prod-1", 5)

	for _, qty := range []int{0, -1} {
		err := db.Transaction(func(tx *gorm.DB) error {
			return ledger.Reserve(context.Background(), tx, "prod-1", qty)
		})
		require.Error(t, err)
		typed := apperrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, apperrors.CodeValidation, typed.Code())
	}
	assert.Equal(t, 5, productStock(t, db, "prod-1"))
}
