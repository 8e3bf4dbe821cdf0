package handlers

import (
	"net/http"

	"kargo-booking/internal/draft"
	"kargo-booking/internal/logx"
	"kargo-booking/internal/session"
)

// DraftHandler serves the order assembly wizard endpoints.
type DraftHandler struct {
	uc     draftUsecase
	sess   session.Session
	logger logx.Logger
}

// NewDraftHandler wires the draft usecase into HTTP handlers.
func NewDraftHandler(uc draftUsecase, sess session.Session, logger logx.Logger) *DraftHandler {
	return &DraftHandler{uc: uc, sess: sess, logger: logger}
}

func (h *DraftHandler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := h.sess.UserID(r.Context())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return "", false
	}
	return id, true
}

// Start handles POST /order/draft and initializes a fresh draft.
func (h *DraftHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	d, err := h.uc.Start(r.Context(), userID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, d)
}

// Get handles GET /order/draft.
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	d, err := h.uc.Draft(r.Context(), userID)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, d)
}

// Cancel handles DELETE /order/draft.
func (h *DraftHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.uc.Cancel(r.Context(), userID); err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateSender handles PUT /order/draft/sender.
func (h *DraftHandler) UpdateSender(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req senderRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if ok := checkRequest(h.logger, w, r, req); !ok {
		return
	}
	d, err := h.uc.Merge(r.Context(), userID, draft.UpdateSender{Sender: req.toDomain()})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, d)
}

// UpdateReceiver handles PUT /order/draft/receiver.
func (h *DraftHandler) UpdateReceiver(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req receiverRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if ok := checkRequest(h.logger, w, r, req); !ok {
		return
	}
	d, err := h.uc.Merge(r.Context(), userID, draft.UpdateReceiver{Receiver: req.toDomain()})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, d)
}

// UpdateItems handles PUT /order/draft/items and replaces the whole list.
func (h *DraftHandler) UpdateItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req itemsRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if ok := checkRequest(h.logger, w, r, req); !ok {
		return
	}
	d, err := h.uc.Merge(r.Context(), userID, draft.UpdateItems{Items: req.toDomain()})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, d)
}

// UpdateDelivery handles PUT /order/draft/delivery.
func (h *DraftHandler) UpdateDelivery(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req deliveryRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	d, err := h.uc.Merge(r.Context(), userID, draft.UpdateDelivery{Delivery: req.toDomain()})
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, d)
}

// AddItem handles POST /order/draft/items.
func (h *DraftHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req itemRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if ok := checkRequest(h.logger, w, r, req); !ok {
		return
	}
	d, err := h.uc.AddItem(r.Context(), userID, req.toDomain())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, d)
}

// ReplaceItem handles PUT /order/draft/items/{index}.
func (h *DraftHandler) ReplaceItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	idx, err := indexFromURL(r, "index")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid index")
		return
	}
	var req itemRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	if ok := checkRequest(h.logger, w, r, req); !ok {
		return
	}
	d, err := h.uc.ReplaceItem(r.Context(), userID, idx, req.toDomain())
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, d)
}

// RemoveItem handles DELETE /order/draft/items/{index}.
func (h *DraftHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	idx, err := indexFromURL(r, "index")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid index")
		return
	}
	d, err := h.uc.RemoveItem(r.Context(), userID, idx)
	if err != nil {
		writeDomainError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, d)
}
