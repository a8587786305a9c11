package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item keeps a snapshot of the product at add-time. IsActive marks
// "to be ordered now" as opposed to "kept for later".
type Item struct {
	ID           string          `json:"itemId"`
	CartID       string          `json:"cartId"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage"`
	Qty          int             `json:"qty"`
	Price        decimal.Decimal `json:"price"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	IsActive     bool            `json:"isActive"`
}

// Cart is deactivated exactly once at checkout and kept as a
// historical snapshot, never deleted.
type Cart struct {
	ID         string          `json:"cartId"`
	CustomerID string          `json:"customerId"`
	TotalItem  int             `json:"totalItem"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	IsActive   bool            `json:"isActive"`
	Items      []Item          `json:"items,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Totals sums qty and line totals over the active items only.
func Totals(items []Item) (totalItem int, totalPrice decimal.Decimal) {
	for _, it := range items {
		if !it.IsActive {
			continue
		}
		totalItem += it.Qty
		totalPrice = totalPrice.Add(it.TotalPrice)
	}
	return totalItem, totalPrice
}
