package cartrepo

import (
	"context"

	"orderboard/internal/core/domain/model/cart"

	"gorm.io/gorm"
)

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// GetSnapshot reads the customer's current cart as a value.
// A customer without cart rows gets an empty snapshot, not an error.
func (r *GormCartRepository) GetSnapshot(ctx context.Context, customerID int64) (cart.Snapshot, error) {
	var dtos []CartLineDTO
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "customer_id = ?", customerID).Error
	if err != nil {
		return cart.Snapshot{}, err
	}

	lines := make([]cart.Line, 0, len(dtos))
	for _, dto := range dtos {
		line, lineErr := cart.NewLine(dto.MenuItemID, dto.Quantity)
		if lineErr != nil {
			return cart.Snapshot{}, lineErr
		}
		lines = append(lines, line)
	}

	return cart.NewSnapshot(customerID, lines)
}

// Clear removes all lines from the customer's cart.
// Clearing an already empty cart is a no-op.
func (r *GormCartRepository) Clear(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).
		Delete(&CartLineDTO{}, "customer_id = ?", customerID).Error
}
