package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/haianhng/shop-admin-backend/internal/customer"
)

// SessionHandler binds and unbinds live listener addresses. An empty
// addr disconnects: subsequent events for that person are dropped.
type SessionHandler struct {
	repo customer.Repository
}

func NewSessionHandler(repo customer.Repository) *SessionHandler {
	return &SessionHandler{repo: repo}
}

func (h *SessionHandler) BindCustomer(w http.ResponseWriter, r *http.Request) {
	h.bind(w, r, h.repo.SetCustomerSession, "customerId")
}

func (h *SessionHandler) BindAdmin(w http.ResponseWriter, r *http.Request) {
	h.bind(w, r, h.repo.SetAdminSession, "adminId")
}

func (h *SessionHandler) bind(w http.ResponseWriter, r *http.Request,
	set func(ctx context.Context, id, addr string) error, param string) {
	id := chi.URLParam(r, param)
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing "+param)
		return
	}

	var body struct {
		Addr string `json:"addr"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := set(ctx, id, body.Addr); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "session updated"})
}
