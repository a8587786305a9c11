package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/haianhng/shop-admin-backend/internal/cart"
	"github.com/haianhng/shop-admin-backend/internal/customer"
	"github.com/haianhng/shop-admin-backend/internal/order"
)

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*cart.Cart
	items map[string][]cart.Item
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		carts: make(map[string]*cart.Cart),
		items: make(map[string][]cart.Item),
	}
}

func (f *fakeCartRepo) add(c cart.Cart, items ...cart.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		items[i].CartID = c.ID
	}
	f.carts[c.ID] = &c
	f.items[c.ID] = items
}

func (f *fakeCartRepo) GetByID(_ context.Context, cartID string) (*cart.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[cartID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCartRepo) GetActiveByCustomer(_ context.Context, customerID string) (*cart.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.CustomerID == customerID && c.IsActive {
			cp := *c
			cp.Items = append([]cart.Item(nil), f.items[c.ID]...)
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCartRepo) GetItems(_ context.Context, cartID string) ([]cart.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]cart.Item(nil), f.items[cartID]...), nil
}

func (f *fakeCartRepo) CreateWithItems(_ context.Context, c *cart.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	for i := range c.Items {
		if c.Items[i].ID == "" {
			c.Items[i].ID = uuid.NewString()
		}
		c.Items[i].CartID = c.ID
	}
	cp := *c
	f.carts[c.ID] = &cp
	f.items[c.ID] = append([]cart.Item(nil), c.Items...)
	return nil
}

func (f *fakeCartRepo) UpsertItem(_ context.Context, cartID string, it *cart.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	it.CartID = cartID
	f.items[cartID] = append(f.items[cartID], *it)
	return nil
}

func (f *fakeCartRepo) RemoveItem(_ context.Context, cartID, itemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.items[cartID]
	for i, it := range items {
		if it.ID == itemID {
			f.items[cartID] = append(items[:i], items[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeCartRepo) UpdateTotals(_ context.Context, c *cart.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.carts[c.ID]
	if !ok {
		return errors.New("cart not found")
	}
	stored.TotalItem = c.TotalItem
	stored.TotalPrice = c.TotalPrice
	return nil
}

func (f *fakeCartRepo) Deactivate(_ context.Context, cartID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[cartID]
	if !ok || !c.IsActive {
		return false, nil
	}
	c.IsActive = false
	return true, nil
}

type fakeCustomerRepo struct {
	customers map[string]*customer.Customer
	admins    []customer.Admin

	adminAddressesErr error
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[string]*customer.Customer)}
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, customerID string) (*customer.Customer, error) {
	c, ok := f.customers[customerID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	f.customers[c.ID] = &cp
	return nil
}

func (f *fakeCustomerRepo) CreateAdmin(_ context.Context, a *customer.Admin) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	f.admins = append(f.admins, *a)
	return nil
}

func (f *fakeCustomerRepo) CustomerAddress(_ context.Context, customerID string) (string, error) {
	if c, ok := f.customers[customerID]; ok {
		return c.SessionAddr, nil
	}
	return "", nil
}

func (f *fakeCustomerRepo) AdminAddresses(_ context.Context) ([]string, error) {
	if f.adminAddressesErr != nil {
		return nil, f.adminAddressesErr
	}
	var addrs []string
	for _, a := range f.admins {
		if a.SessionAddr != "" {
			addrs = append(addrs, a.SessionAddr)
		}
	}
	return addrs, nil
}

func (f *fakeCustomerRepo) SetCustomerSession(_ context.Context, customerID, addr string) error {
	c, ok := f.customers[customerID]
	if !ok {
		return errors.New("customer not found")
	}
	c.SessionAddr = addr
	return nil
}

func (f *fakeCustomerRepo) SetAdminSession(_ context.Context, adminID, addr string) error {
	for i := range f.admins {
		if f.admins[i].ID == adminID {
			f.admins[i].SessionAddr = addr
			return nil
		}
	}
	return errors.New("admin not found")
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*order.Order

	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*order.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = uuid.NewString()
		}
		o.Items[i].OrderID = o.ID
	}
	cp := *o
	cp.Items = append([]order.Item(nil), o.Items...)
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, orderID string) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) GetItems(_ context.Context, orderID string) ([]order.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return nil, nil
	}
	return append([]order.Item(nil), o.Items...), nil
}

func (f *fakeOrderRepo) List(_ context.Context) ([]order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []order.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByCustomer(_ context.Context, customerID string) ([]order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []order.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, orderID string, status order.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return errors.New("order not found")
	}
	o.Status = status
	return nil
}

func (f *fakeOrderRepo) UpdatePayment(_ context.Context, orderID string, isPayment bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[orderID]
	if !ok {
		return errors.New("order not found")
	}
	o.IsPayment = isPayment
	return nil
}

type fakeDomainEvents struct {
	published []string
	err       error
}

func (f *fakeDomainEvents) PublishOrderCreated(_ context.Context, o *order.Order) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, o.ID)
	return nil
}
