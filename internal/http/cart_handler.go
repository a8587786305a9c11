package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/haianhng/shop-admin-backend/internal/cart"
)

type CartHandler struct {
	repo cart.Repository
}

func NewCartHandler(repo cart.Repository) *CartHandler {
	return &CartHandler{repo: repo}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "missing customerId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.repo.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "cart not found")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "missing customerId")
		return
	}

	var body struct {
		ProductID    string          `json:"productId"`
		ProductName  string          `json:"productName"`
		ProductImage string          `json:"productImage"`
		Qty          int             `json:"qty"`
		Price        decimal.Decimal `json:"price"`
		IsActive     *bool           `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.ProductID == "" || body.Qty <= 0 {
		writeError(w, http.StatusBadRequest, "missing productId or qty")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.repo.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	if c == nil {
		c = &cart.Cart{CustomerID: customerID, IsActive: true}
		if err := h.repo.CreateWithItems(ctx, c); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to create cart")
			return
		}
	}

	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}
	it := cart.Item{
		ProductID:    body.ProductID,
		ProductName:  body.ProductName,
		ProductImage: body.ProductImage,
		Qty:          body.Qty,
		Price:        body.Price,
		TotalPrice:   body.Price.Mul(decimal.NewFromInt(int64(body.Qty))),
		IsActive:     active,
	}
	if err := h.repo.UpsertItem(ctx, c.ID, &it); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart item")
		return
	}

	if err := h.refreshTotals(ctx, c); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update cart totals")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	itemID := chi.URLParam(r, "itemId")
	if customerID == "" || itemID == "" {
		writeError(w, http.StatusBadRequest, "missing customerId or itemId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.repo.GetActiveByCustomer(ctx, customerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "cart not found")
		return
	}

	if err := h.repo.RemoveItem(ctx, c.ID, itemID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove cart item")
		return
	}

	if err := h.refreshTotals(ctx, c); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update cart totals")
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// refreshTotals reloads the items and persists recomputed totals. Stored
// cart totals always reflect the active subset, matching what checkout
// will charge.
func (h *CartHandler) refreshTotals(ctx context.Context, c *cart.Cart) error {
	items, err := h.repo.GetItems(ctx, c.ID)
	if err != nil {
		return err
	}
	c.Items = items
	c.TotalItem, c.TotalPrice = cart.Totals(items)
	return h.repo.UpdateTotals(ctx, c)
}
