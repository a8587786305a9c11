package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID           string          `json:"itemId"`
	OrderID      string          `json:"orderId"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage"`
	Qty          int             `json:"qty"`
	Price        decimal.Decimal `json:"price"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	IsActive     bool            `json:"isActive"`
}

// Order is immutable after creation except for Status and IsPayment.
type Order struct {
	ID         string          `json:"orderId"`
	CartID     string          `json:"cartId"`
	CustomerID string          `json:"customerId"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email"`
	Address    string          `json:"address"`
	City       string          `json:"city"`
	Comment    string          `json:"comment"`
	TotalItem  int             `json:"totalItem"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     Status          `json:"status"`
	TypeOrder  string          `json:"typeOrder"`
	IsPayment  bool            `json:"isPayment"`
	IsActive   bool            `json:"isActive"`
	Items      []Item          `json:"items,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
