package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"kargo-booking/internal/domain"
	"kargo-booking/internal/logx"
)

// OrderHandler serves submission and read access for finalized orders.
type OrderHandler struct {
	submit orderSubmitter
	read   orderReader
	logger logx.Logger
}

// NewOrderHandler wires the order usecases into HTTP handlers.
func NewOrderHandler(submit orderSubmitter, read orderReader, logger logx.Logger) *OrderHandler {
	return &OrderHandler{submit: submit, read: read, logger: logger}
}

// Submit handles POST /order/submit: finalize the current draft.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	o, err := h.submit.Submit(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.Header().Set("Location", "/orders/"+o.ID)
	writeJSON(h.logger, w, r, http.StatusCreated, o)
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}
	o, err := h.read.Get(r.Context(), id)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, o)
}

// List handles GET /orders with an optional status filter.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.OrderStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.OrderStatus(s)
		if !st.Valid() {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid status")
			return
		}
		status = &st
	}

	list, err := h.read.List(r.Context(), status)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	if list == nil {
		list = []domain.Order{}
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}
