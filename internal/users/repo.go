package users

import (
	"context"

	"gorm.io/gorm"

	"github.com/vuminhngo/techstore-backend/pkg/db/models"
	"github.com/vuminhngo/techstore-backend/pkg/enums"
)

// Repository exposes the user persistence surface the order lifecycle needs:
// loading the owner, mutating the points balance and tier, and refreshing the
// shipping contact snapshot.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads a user by id.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AdjustPoints applies a signed delta to the user's points balance in place
// and returns the resulting balance. The read-back happens on the same
// connection, so inside a transaction it observes the updated row.
func (r *Repository) AdjustPoints(ctx context.Context, id string, delta int) (int, error) {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var user models.User
	err := r.db.WithContext(ctx).
		Select("points").
		First(&user, "id = ?", id).Error
	if err != nil {
		return 0, err
	}
	return user.Points, nil
}

// UpdateTier persists a recomputed loyalty tier.
func (r *Repository) UpdateTier(ctx context.Context, id string, tier enums.Tier) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("level", tier)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateContact overwrites the user's phone and address with the latest
// shipping snapshot.
func (r *Repository) UpdateContact(ctx context.Context, id, phone, address string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"phone":   phone,
			"address": address,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
