// Package checkout turns an active cart into an order.
package checkout

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/haianhng/shop-admin-backend/internal/cart"
	"github.com/haianhng/shop-admin-backend/internal/customer"
	"github.com/haianhng/shop-admin-backend/internal/notify"
	"github.com/haianhng/shop-admin-backend/internal/order"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartInactive     = errors.New("cart is not active")
	ErrCustomerNotFound = errors.New("customer not found")
)

// ShippingInfo is the delivery detail captured at checkout and frozen
// onto the order.
type ShippingInfo struct {
	FirstName string
	LastName  string
	Phone     string
	Address   string
	City      string
	Comment   string
}

// DomainEvents is the slice of the events publisher the workflow needs.
type DomainEvents interface {
	PublishOrderCreated(ctx context.Context, o *order.Order) error
}

type Service struct {
	carts     cart.Repository
	customers customer.Repository
	orders    order.Repository
	notifier  notify.Publisher
	domain    DomainEvents
	logger    *log.Logger
}

// NewService wires the conversion workflow. domain may be nil when no
// events exchange is configured.
func NewService(carts cart.Repository, customers customer.Repository, orders order.Repository,
	notifier notify.Publisher, domain DomainEvents, logger *log.Logger) *Service {
	return &Service{
		carts:     carts,
		customers: customers,
		orders:    orders,
		notifier:  notifier,
		domain:    domain,
		logger:    logger,
	}
}

// Convert snapshots the cart into an immutable order, moves the items the
// customer kept for later onto a fresh cart, and fans the updated order
// list out to connected admins.
//
// The writes span several statements without a cross-store transaction.
// The atomic cart deactivation is the linearization point: it runs before
// the order insert so that two racing checkouts of the same cart can
// never both create an order, and a retry against an already converted
// cart refuses with ErrCartInactive instead of double-processing. A
// unique constraint on orders.cart_id backs this up at the schema level.
func (s *Service) Convert(ctx context.Context, cartID string, shipping ShippingInfo, orderType string) (*order.Order, error) {
	c, err := s.carts.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}
	if !c.IsActive {
		return nil, ErrCartInactive
	}

	cust, err := s.customers.GetByID(ctx, c.CustomerID)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, ErrCustomerNotFound
	}

	items, err := s.carts.GetItems(ctx, cartID)
	if err != nil {
		return nil, err
	}

	totalItem, totalPrice := cart.Totals(items)

	claimed, err := s.carts.Deactivate(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// Lost the race to a concurrent checkout of the same cart.
		return nil, ErrCartInactive
	}

	o := &order.Order{
		CartID:     c.ID,
		CustomerID: c.CustomerID,
		FirstName:  shipping.FirstName,
		LastName:   shipping.LastName,
		Phone:      shipping.Phone,
		Email:      cust.Email,
		Address:    shipping.Address,
		City:       shipping.City,
		Comment:    shipping.Comment,
		TotalItem:  totalItem,
		TotalPrice: totalPrice,
		Status:     order.StatusNew,
		TypeOrder:  orderType,
		IsPayment:  false,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}

	replacement := &cart.Cart{
		CustomerID: c.CustomerID,
		IsActive:   true,
	}

	// Exhaustive, disjoint split: active items become order lines, the
	// rest migrate onto the replacement cart.
	for _, it := range items {
		if it.IsActive {
			o.Items = append(o.Items, order.Item{
				ProductID:    it.ProductID,
				ProductName:  it.ProductName,
				ProductImage: it.ProductImage,
				Qty:          it.Qty,
				Price:        it.Price,
				TotalPrice:   it.TotalPrice,
				IsActive:     it.IsActive,
			})
		} else {
			replacement.Items = append(replacement.Items, cart.Item{
				ProductID:    it.ProductID,
				ProductName:  it.ProductName,
				ProductImage: it.ProductImage,
				Qty:          it.Qty,
				Price:        it.Price,
				TotalPrice:   it.TotalPrice,
				IsActive:     it.IsActive,
			})
		}
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	// The replacement cart counts every migrated item, active or not;
	// only order totals are restricted to the active subset.
	for _, it := range replacement.Items {
		replacement.TotalItem += it.Qty
		replacement.TotalPrice = replacement.TotalPrice.Add(it.TotalPrice)
	}
	if err := s.carts.CreateWithItems(ctx, replacement); err != nil {
		return nil, err
	}

	s.notifyAdmins(ctx)

	if s.domain != nil {
		if err := s.domain.PublishOrderCreated(ctx, o); err != nil {
			s.logger.Printf("publish OrderCreated for %s: %v", o.ID, err)
		}
	}

	return o, nil
}

// notifyAdmins pushes the full order list to every connected admin.
// Failures are logged and swallowed: losing a live update must never
// fail the conversion it reports.
func (s *Service) notifyAdmins(ctx context.Context) {
	addrs, err := s.customers.AdminAddresses(ctx)
	if err != nil {
		s.logger.Printf("load admin sessions: %v", err)
		return
	}
	if len(addrs) == 0 {
		return
	}

	list, err := s.orders.List(ctx)
	if err != nil {
		s.logger.Printf("load order list for admins: %v", err)
		return
	}

	for _, addr := range addrs {
		if err := s.notifier.Publish(ctx, addr, notify.KindOrderList, list); err != nil {
			s.logger.Printf("notify admin %s: %v", addr, err)
		}
	}
}
