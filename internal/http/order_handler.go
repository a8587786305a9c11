package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/haianhng/shop-admin-backend/internal/checkout"
	"github.com/haianhng/shop-admin-backend/internal/order"
)

// Converter is the slice of the checkout service the handler needs.
type Converter interface {
	Convert(ctx context.Context, cartID string, shipping checkout.ShippingInfo, orderType string) (*order.Order, error)
}

// Lifecycle is the slice of the order service the handler needs.
type Lifecycle interface {
	UpdateStatus(ctx context.Context, orderID string, next order.Status) (*order.Order, error)
	SetPayment(ctx context.Context, orderID string, isPayment bool) (*order.Order, error)
}

type OrderHandler struct {
	repo      order.Repository
	converter Converter
	lifecycle Lifecycle
}

func NewOrderHandler(repo order.Repository, converter Converter, lifecycle Lifecycle) *OrderHandler {
	return &OrderHandler{repo: repo, converter: converter, lifecycle: lifecycle}
}

func (h *OrderHandler) CreateCashOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CartID    string `json:"cartId"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Phone     string `json:"phone"`
		Address   string `json:"address"`
		City      string `json:"city"`
		Comment   string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.CartID == "" {
		writeError(w, http.StatusBadRequest, "missing cartId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.converter.Convert(ctx, body.CartID, checkout.ShippingInfo{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Phone:     body.Phone,
		Address:   body.Address,
		City:      body.City,
		Comment:   body.Comment,
	}, "cash")
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrCartNotFound), errors.Is(err, checkout.ErrCustomerNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, checkout.ErrCartInactive):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create order")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Order created successfully.",
		"order":   o,
	})
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing orderId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.repo.GetByID(ctx, orderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	if o == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	items, err := h.repo.GetItems(ctx, orderID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load order items")
		return
	}
	o.Items = items

	writeJSON(w, http.StatusOK, o)
}

// ListOrders returns the caller's own orders for customers and the full
// list for admins. Who the caller is comes from the auth layer upstream;
// here it is carried in headers.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var (
		orders []order.Order
		err    error
	)
	if customerID := r.Header.Get("X-Customer-Id"); customerID != "" {
		orders, err = h.repo.ListByCustomer(ctx, customerID)
	} else {
		orders, err = h.repo.List(ctx)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderID string `json:"orderId"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.OrderID == "" || body.Status == "" {
		writeError(w, http.StatusBadRequest, "missing orderId or status")
		return
	}

	next, err := order.ParseStatus(body.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.lifecycle.UpdateStatus(ctx, body.OrderID, next)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, order.ErrCannotCancel):
			writeError(w, http.StatusBadRequest, "can't cancel")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update status")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Updated status.",
		"order":   o,
	})
}

func (h *OrderHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderID   string `json:"orderId"`
		IsPayment *bool  `json:"isPayment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.OrderID == "" || body.IsPayment == nil {
		writeError(w, http.StatusBadRequest, "missing orderId or isPayment")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.lifecycle.SetPayment(ctx, body.OrderID, *body.IsPayment)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update payment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"order": o})
}
