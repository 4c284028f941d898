package orderrepo

import (
	"context"
	"errors"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
// Requires the connection to be opened with TranslateError so duplicate key
// violations surface as gorm.ErrDuplicatedKey.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines and assigns the generated key to the
// aggregate. A unique-index violation on the reference code or on the active
// display number means a concurrent checkout won the identifier race and
// maps to ErrStoreConflict.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ports.ErrStoreConflict
		}
		return err
	}

	if err := aggregate.SetID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateStatus persists the aggregate's status and stage timestamps, guarded
// by the status the transition started from. Zero rows affected means a
// concurrent transition already moved the order and maps to ErrStoreConflict.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order, from order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID(), from.String()).
		Updates(map[string]any{
			"status":                aggregate.Status().String(),
			"preparing_at":          aggregate.PreparingAt(),
			"ready_at":              aggregate.ReadyAt(),
			"completed_at":          aggregate.CompletedAt(),
			"last_status_change_at": aggregate.LastStatusChangeAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrStoreConflict
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByID retrieves an order with its lines by numeric key.
func (r *GormOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Lines").First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByRefCode retrieves an order with its lines by reference code.
func (r *GormOrderRepository) GetByRefCode(ctx context.Context, refCode kernel.RefCode) (*order.Order, error) {
	if err := refCode.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Lines").First(&dto, "ref_code = ?", refCode.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", refCode.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByStatus retrieves all orders in the given status, oldest first.
func (r *GormOrderRepository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Lines").
		Order("created_at").
		Find(&dtos, "status = ?", status.String()).Error
	if err != nil {
		return nil, err
	}

	return r.restoreAll(dtos)
}

// MaxDisplayNumber returns the highest display number held by an order still
// moving through the kitchen. Completed orders no longer hold their number.
func (r *GormOrderRepository) MaxDisplayNumber(ctx context.Context) (int, error) {
	var maxNumber int
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("status <> ?", order.Complete.String()).
		Select("COALESCE(MAX(display_number), 0)").
		Scan(&maxNumber).Error
	if err != nil {
		return 0, err
	}

	return maxNumber, nil
}

// ExistsDisplayNumber reports whether an active order currently holds n.
func (r *GormOrderRepository) ExistsDisplayNumber(ctx context.Context, n int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("display_number = ? AND status <> ?", n, order.Complete.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// ExistsRefCode reports whether any order holds the given reference code.
// Reference codes are never recycled, so completed orders count too.
func (r *GormOrderRepository) ExistsRefCode(ctx context.Context, refCode kernel.RefCode) (bool, error) {
	if err := refCode.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("ref_code = ?", refCode.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// SumLineValues computes the order's monetary value and ticket count by
// joining its lines against the menu.
func (r *GormOrderRepository) SumLineValues(ctx context.Context, orderID int64) (float64, int, error) {
	row := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(mi.value * ol.quantity), 0),
			COALESCE(SUM(mi.tickets * ol.quantity), 0)
		FROM order_lines ol
		JOIN menu_items mi ON mi.id = ol.menu_item_id
		WHERE ol.order_id = ?
	`, orderID).Row()

	var value float64
	var tickets int
	if err := row.Scan(&value, &tickets); err != nil {
		return 0, 0, err
	}

	return value, tickets, nil
}

func (r *GormOrderRepository) restoreAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
