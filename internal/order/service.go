package order

import (
	"context"
	"errors"
	"log"

	"github.com/haianhng/shop-admin-backend/internal/customer"
	"github.com/haianhng/shop-admin-backend/internal/notify"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrCannotCancel = errors.New("order can no longer be canceled")
)

// DomainEvents is the slice of the events publisher the lifecycle needs.
type DomainEvents interface {
	PublishOrderStatusChanged(ctx context.Context, o *Order, old Status) error
}

// Service applies status transitions and payment flags to existing
// orders and pushes the result to connected listeners.
type Service struct {
	orders    Repository
	directory customer.Directory
	notifier  notify.Publisher
	domain    DomainEvents
	logger    *log.Logger
}

// NewService wires the lifecycle service. domain may be nil when no
// events exchange is configured.
func NewService(orders Repository, directory customer.Directory, notifier notify.Publisher,
	domain DomainEvents, logger *log.Logger) *Service {
	return &Service{
		orders:    orders,
		directory: directory,
		notifier:  notifier,
		domain:    domain,
		logger:    logger,
	}
}

// UpdateStatus validates the transition, persists it, and notifies the
// owning customer plus every connected admin. Any transition is allowed
// except canceling a processing or completed order.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, next Status) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}

	if !o.Status.CanTransitionTo(next) {
		return nil, ErrCannotCancel
	}

	old := o.Status
	if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, err
	}
	o.Status = next

	s.notifyCustomer(ctx, o)
	s.notifyAdmins(ctx)

	if s.domain != nil {
		if err := s.domain.PublishOrderStatusChanged(ctx, o, old); err != nil {
			s.logger.Printf("publish OrderStatusChanged for %s: %v", o.ID, err)
		}
	}

	return o, nil
}

// SetPayment overwrites the payment flag. No state-machine constraint
// and no notification: the flag is bookkeeping, not a status change.
func (s *Service) SetPayment(ctx context.Context, orderID string, isPayment bool) (*Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}

	if err := s.orders.UpdatePayment(ctx, orderID, isPayment); err != nil {
		return nil, err
	}
	o.IsPayment = isPayment

	return o, nil
}

func (s *Service) notifyCustomer(ctx context.Context, o *Order) {
	addr, err := s.directory.CustomerAddress(ctx, o.CustomerID)
	if err != nil {
		s.logger.Printf("load customer session for %s: %v", o.CustomerID, err)
		return
	}
	if addr == "" {
		return
	}
	if err := s.notifier.Publish(ctx, addr, notify.KindOrderStatus, o); err != nil {
		s.logger.Printf("notify customer %s: %v", o.CustomerID, err)
	}
}

func (s *Service) notifyAdmins(ctx context.Context) {
	addrs, err := s.directory.AdminAddresses(ctx)
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
