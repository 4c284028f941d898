// Package cartrepo provides GORM-based persistence for customer carts.
// Checkout reads a cart snapshot and clears the rows inside the same
// transaction as the order insert.
package cartrepo

// CartLineDTO represents one item a customer currently holds in their cart.
type CartLineDTO struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	CustomerID int64 `gorm:"index"`
	MenuItemID int64 `gorm:"index"`
	Quantity   int
}

// TableName specifies the database table name for cart line entities.
func (CartLineDTO) TableName() string {
	return "cart_lines"
}
