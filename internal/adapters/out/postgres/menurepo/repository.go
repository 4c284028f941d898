package menurepo

import (
	"context"

	"orderboard/internal/core/ports"

	"gorm.io/gorm"
)

var _ ports.MenuItemRepository = &GormMenuItemRepository{}

// GormMenuItemRepository implements read-only menu catalog access using GORM.
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a repository over the menu catalog table.
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// GetByIDs returns the menu items with the given identifiers, keyed by
// identifier. Unknown identifiers are absent from the result.
func (r *GormMenuItemRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]ports.MenuItem, error) {
	items := make(map[int64]ports.MenuItem, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	var dtos []MenuItemDTO
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&dtos)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, dto := range dtos {
		items[dto.ID] = toPort(dto)
	}

	return items, nil
}
