// Package menurepo provides read-only access to the menu catalog rows that
// order and cart lines reference. The catalog is owned by the menu service;
// this adapter exists so checkout can validate line references and queries
// can join quantities against names, prices and ticket counts.
package menurepo

import "orderboard/internal/core/ports"

// MenuItemDTO represents the database structure of one menu catalog row.
type MenuItemDTO struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	Name    string `gorm:"type:varchar(120)"`
	Value   float64
	Tickets int
}

// TableName specifies the database table name for menu item entities.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

func toPort(dto MenuItemDTO) ports.MenuItem {
	return ports.MenuItem{
		ID:      dto.ID,
		Name:    dto.Name,
		Value:   dto.Value,
		Tickets: dto.Tickets,
	}
}
