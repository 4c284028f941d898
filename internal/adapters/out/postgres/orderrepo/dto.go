// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Both identifiers carry unique indexes as the last line of defense behind
// the allocator's existence checks: the reference code globally, the display
// number only among non-completed orders. The partial index lets completed
// orders keep their number after it has been recycled to a newer active
// order, while two active orders can never share one; a concurrent checkout
// that allocated the same number fails its insert with a duplicate key.
type OrderDTO struct {
	ID                 int64  `gorm:"primaryKey;autoIncrement"`
	RefCode            string `gorm:"type:varchar(16);uniqueIndex"`
	DisplayNumber      int    `gorm:"uniqueIndex:uniq_orders_active_display_number,where:status <> 'complete'"`
	CustomerID         int64  `gorm:"index"`
	CustomerName       string
	Status             string    `gorm:"type:varchar(16);index"`
	CreatedAt          time.Time `gorm:"index"`
	PreparingAt        *time.Time
	ReadyAt            *time.Time
	CompletedAt        *time.Time
	LastStatusChangeAt time.Time

	Lines []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one cart line frozen into an order at checkout.
type OrderLineDTO struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	OrderID    int64 `gorm:"index"`
	MenuItemID int64 `gorm:"index"`
	Quantity   int
}

// TableName specifies the database table name for order line entities.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	lines := aggregate.Lines()
	lineDTOs := make([]OrderLineDTO, 0, len(lines))
	for _, line := range lines {
		lineDTOs = append(lineDTOs, OrderLineDTO{
			OrderID:    aggregate.ID(),
			MenuItemID: line.MenuItemID(),
			Quantity:   line.Quantity(),
		})
	}

	return OrderDTO{
		ID:                 aggregate.ID(),
		RefCode:            aggregate.RefCode().String(),
		DisplayNumber:      aggregate.DisplayNumber().Value(),
		CustomerID:         aggregate.CustomerID(),
		CustomerName:       aggregate.CustomerName(),
		Status:             aggregate.Status().String(),
		CreatedAt:          aggregate.CreatedAt(),
		PreparingAt:        aggregate.PreparingAt(),
		ReadyAt:            aggregate.ReadyAt(),
		CompletedAt:        aggregate.CompletedAt(),
		LastStatusChangeAt: aggregate.LastStatusChangeAt(),
		Lines:              lineDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including stage timestamps using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	refCode, err := kernel.RefCodeFromString(dto.RefCode)
	if err != nil {
		return nil, err
	}

	displayNumber, err := kernel.NewDisplayNumber(dto.DisplayNumber)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := order.NewLine(lineDTO.MenuItemID, lineDTO.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		dto.ID,
		refCode,
		displayNumber,
		dto.CustomerID,
		dto.CustomerName,
		status,
		dto.CreatedAt,
		dto.PreparingAt,
		dto.ReadyAt,
		dto.CompletedAt,
		dto.LastStatusChangeAt,
		lines,
	)
}
