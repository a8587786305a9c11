package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haianhng/shop-admin-backend/internal/checkout"
	"github.com/haianhng/shop-admin-backend/internal/order"
)

type fakeOrderRepo struct {
	getByIDFunc        func(ctx context.Context, orderID string) (*order.Order, error)
	getItemsFunc       func(ctx context.Context, orderID string) ([]order.Item, error)
	listFunc           func(ctx context.Context) ([]order.Order, error)
	listByCustomerFunc func(ctx context.Context, customerID string) ([]order.Order, error)
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error { return nil }

func (f *fakeOrderRepo) GetByID(ctx context.Context, orderID string) (*order.Order, error) {
	if f.getByIDFunc != nil {
		return f.getByIDFunc(ctx, orderID)
	}
	return nil, nil
}

func (f *fakeOrderRepo) GetItems(ctx context.Context, orderID string) ([]order.Item, error) {
	if f.getItemsFunc != nil {
		return f.getItemsFunc(ctx, orderID)
	}
	return nil, nil
}

func (f *fakeOrderRepo) List(ctx context.Context) ([]order.Order, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return nil, nil
}

func (f *fakeOrderRepo) ListByCustomer(ctx context.Context, customerID string) ([]order.Order, error) {
	if f.listByCustomerFunc != nil {
		return f.listByCustomerFunc(ctx, customerID)
	}
	return nil, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID string, status order.Status) error {
	return nil
}

func (f *fakeOrderRepo) UpdatePayment(ctx context.Context, orderID string, isPayment bool) error {
	return nil
}

type fakeConverter struct {
	convertFunc func(ctx context.Context, cartID string, shipping checkout.ShippingInfo, orderType string) (*order.Order, error)
}

func (f *fakeConverter) Convert(ctx context.Context, cartID string, shipping checkout.ShippingInfo, orderType string) (*order.Order, error) {
	if f.convertFunc != nil {
		return f.convertFunc(ctx, cartID, shipping, orderType)
	}
	return &order.Order{ID: "o1", CartID: cartID}, nil
}

type fakeLifecycle struct {
	updateStatusFunc func(ctx context.Context, orderID string, next order.Status) (*order.Order, error)
	setPaymentFunc   func(ctx context.Context, orderID string, isPayment bool) (*order.Order, error)
}

func (f *fakeLifecycle) UpdateStatus(ctx context.Context, orderID string, next order.Status) (*order.Order, error) {
	if f.updateStatusFunc != nil {
		return f.updateStatusFunc(ctx, orderID, next)
	}
	return &order.Order{ID: orderID, Status: next}, nil
}

func (f *fakeLifecycle) SetPayment(ctx context.Context, orderID string, isPayment bool) (*order.Order, error) {
	if f.setPaymentFunc != nil {
		return f.setPaymentFunc(ctx, orderID, isPayment)
	}
	return &order.Order{ID: orderID, IsPayment: isPayment}, nil
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateCashOrder_Success(t *testing.T) {
	var gotCartID, gotType string
	conv := &fakeConverter{
		convertFunc: func(ctx context.Context, cartID string, shipping checkout.ShippingInfo, orderType string) (*order.Order, error) {
			gotCartID, gotType = cartID, orderType
			return &order.Order{ID: "o1", CartID: cartID, FirstName: shipping.FirstName}, nil
		},
	}
	handler := NewOrderHandler(&fakeOrderRepo{}, conv, &fakeLifecycle{})

	body := bytes.NewBufferString(`{"cartId":"cart-1","firstName":"Lan","phone":"0123"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/order/cash", body)
	rr := httptest.NewRecorder()

	handler.CreateCashOrder(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "cart-1", gotCartID)
	assert.Equal(t, "cash", gotType)

	var resp struct {
		Success bool        `json:"success"`
		Order   order.Order `json:"order"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "o1", resp.Order.ID)
	assert.Equal(t, "Lan", resp.Order.FirstName)
}

func TestCreateCashOrder_MissingCartID(t *testing.T) {
	handler := NewOrderHandler(&fakeOrderRepo{}, &fakeConverter{}, &fakeLifecycle{})

	req := httptest.NewRequest(http.MethodPost, "/api/order/cash", bytes.NewBufferString(`{}`))
	rr := httptest.NewRecorder()

	handler.CreateCashOrder(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateCashOrder_CartNotFound(t *testing.T) {
	conv := &fakeConverter{
		convertFunc: func(ctx context.Context, cartID string, shipping checkout.ShippingInfo, orderType string) (*order.Order, error) {
			return nil, checkout.ErrCartNotFound
		},
	}
	handler := NewOrderHandler(&fakeOrderRepo{}, conv, &fakeLifecycle{})

	req := httptest.NewRequest(http.MethodPost, "/api/order/cash", bytes.NewBufferString(`{"cartId":"nope"}`))
	rr := httptest.NewRecorder()

	handler.CreateCashOrder(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateCashOrder_InactiveCartConflicts(t *testing.T) {
	conv := &fakeConverter{
		convertFunc: func(ctx context.Context, cartID string, shipping checkout.ShippingInfo, orderType string) (*order.Order, error) {
			return nil, checkout.ErrCartInactive
		},
	}
	handler := NewOrderHandler(&fakeOrderRepo{}, conv, &fakeLifecycle{})

	req := httptest.NewRequest(http.MethodPost, "/api/order/cash", bytes.NewBufferString(`{"cartId":"cart-1"}`))
	rr := httptest.NewRecorder()

	handler.CreateCashOrder(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
}

func TestGetOrder_Success(t *testing.T) {
	repo := &fakeOrderRepo{
		getByIDFunc: func(ctx context.Context, orderID string) (*order.Order, error) {
			return &order.Order{ID: orderID, CustomerID: "cust-1", TotalPrice: decimal.RequireFromString("50")}, nil
		},
		getItemsFunc: func(ctx context.Context, orderID string) ([]order.Item, error) {
			return []order.Item{{ID: "i1", OrderID: orderID, ProductID: "p1"}}, nil
		},
	}
	handler := NewOrderHandler(repo, &fakeConverter{}, &fakeLifecycle{})

	req := httptest.NewRequest(http.MethodGet, "/api/order/abc", nil)
	req = withURLParam(req, "orderId", "abc")
	rr := httptest.NewRecorder()

	handler.GetOrder(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp order.Order
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "abc", resp.ID)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p1", resp.Items[0].ProductID)
}

func TestGetOrder_NotFound(t *testing.T) {
	handler := NewOrderHandler(&fakeOrderRepo{}, &fakeConverter{}, &fakeLifecycle{})

	req := httptest.NewRequest(http.MethodGet, "/api/order/abc", nil)
	req = withURLParam(req, "orderId", "abc")
	rr := httptest.NewRecorder()

	handler.GetOrder(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListOrders_AdminSeesAll(t *testing.T) {
	repo := &fakeOrderRepo{
		listFunc: func(ctx context.Context) ([]order.Order, error) {
			return []order.Order{{ID: "o1"}, {ID: "o2"}}, nil
		},
	}
	handler := NewOrderHandler(repo, &fakeConverter{}, &fakeLifecycle{})

	req := httptest.NewRequest(http.MethodGet, "/api/order", nil)
	rr := httptest.NewRecorder()

	handler.ListOrders(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp []order.Order
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp, 2)
}

func TestListOrders_CustomerSeesOwn(t *testing.T) {
	repo := &fakeOrderRepo{
		listByCustomerFunc: func(ctx context.Context, customerID string) ([]order.Order, error) {
			return []order.Order{{ID: "o1", CustomerID: customerID}}, nil
		},
		listFunc: func(ctx context.Context) ([]order.Order, error) {
			t.Fatal("customer request must not list all orders")
			return nil, nil
		},
	}
	handler := NewOrderHandler(repo, &fakeConverter{}, &fakeLifecycle{})

	req := httptest.NewRequest(http.MethodGet, "/api/order", nil)
	req.Header.Set("X-Customer-Id", "cust-1")
	rr := httptest.NewRecorder()

	handler.ListOrders(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp []order.Order
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "cust-1", resp[0].CustomerID)
}

func TestUpdateStatus_Success(t *testing.T) {
	handler := NewOrderHandler(&fakeOrderRepo{}, &fakeConverter{}, &fakeLifecycle{})

	body := bytes.NewBufferString(`{"orderId":"o1","status":"processing"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/order/status", body)
	rr := httptest.NewRecorder()

	handler.UpdateStatus(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	lc := &fakeLifecycle{
		updateStatusFunc: func(ctx context.Context, orderID string, next order.Status) (*order.Order, error) {
			t.Fatal("must not reach the service with an unknown status")
			return nil, nil
		},
	}
	handler := NewOrderHandler(&fakeOrderRepo{}, &fakeConverter{}, lc)

	body := bytes.NewBufferString(`{"orderId":"o1","status":"shipped"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/order/status", body)
	rr := httptest.NewRecorder()

	handler.UpdateStatus(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateStatus_CannotCancel(t *testing.T) {
	lc := &fakeLifecycle{
		updateStatusFunc: func(ctx context.Context, orderID string, next order.Status) (*order.Order, error) {
			return nil, order.ErrCannotCancel
		},
	}
	handler := NewOrderHandler(&fakeOrderRepo{}, &fakeConverter{}, lc)

	body := bytes.NewBufferString(`{"orderId":"o1","status":"canceled"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/order/status", body)
	rr := httptest.NewRecorder()

	handler.UpdateStatus(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "can't cancel", resp["error"])
}

func TestUpdateStatus_NotFound(t *testing.T) {
	lc := &fakeLifecycle{
		updateStatusFunc: func(ctx context.Context, orderID string, next order.Status) (*order.Order, error) {
			return nil, order.ErrNotFound
		},
	}
	handler := NewOrderHandler(&fakeOrderRepo{}, &fakeConverter{}, lc)

	body := bytes.NewBufferString(`{"orderId":"missing","status":"processing"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/order/status", body)
	rr := httptest.NewRecorder()

	handler.UpdateStatus(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdatePayment_Success(t *testing.T) {
	var got bool
	lc := &fakeLifecycle{
		setPaymentFunc: func(ctx context.Context, orderID string, isPayment bool) (*order.Order, error) {
			got = isPayment
			return &order.Order{ID: orderID, IsPayment: isPayment}, nil
		},
	}
	handler := NewOrderHandler(&fakeOrderRepo{}, &fakeConverter{}, lc)

	body := bytes.NewBufferString(`{"orderId":"o1","isPayment":true}`)
	req := httptest.NewRequest(http.MethodPut, "/api/order/payment", body)
	rr := httptest.NewRecorder()

	handler.UpdatePayment(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, got)
}

func TestUpdatePayment_MissingFields(t *testing.T) {
	handler := NewOrderHandler(&fakeOrderRepo{}, &fakeConverter{}, &fakeLifecycle{})

	body := bytes.NewBufferString(`{"orderId":"o1"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/order/payment", body)
	rr := httptest.NewRecorder()

	handler.UpdatePayment(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdatePayment_RepositoryError(t *testing.T) {
	lc := &fakeLifecycle{
		setPaymentFunc: func(ctx context.Context, orderID string, isPayment bool) (*order.Order, error) {
			return nil, errors.New("db down")
		},
	}
	handler := NewOrderHandler(&fakeOrderRepo{}, &fakeConverter{}, lc)

	body := bytes.NewBufferString(`{"orderId":"o1","isPayment":false}`)
	req := httptest.NewRequest(http.MethodPut, "/api/order/payment", body)
	rr := httptest.NewRecorder()

	handler.UpdatePayment(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	healthHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "shop-admin-backend", resp["service"])
}
