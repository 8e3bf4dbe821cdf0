package handlers

import (
	"net/http"
	"strings"

	"kargo-booking/internal/gateway/geocode"
	"kargo-booking/internal/logx"
)

// AddressHandler serves address lookup for the sender and receiver steps.
type AddressHandler struct {
	search addressSearcher
	logger logx.Logger
}

// NewAddressHandler wires the geocode gateway into HTTP handlers.
func NewAddressHandler(search addressSearcher, logger logx.Logger) *AddressHandler {
	return &AddressHandler{search: search, logger: logger}
}

type addressSearchResponse struct {
	Results []geocode.Address `json:"results"`
}

// Search handles GET /addresses/search?q=...
func (h *AddressHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) < 3 {
		writeError(h.logger, w, r, http.StatusBadRequest, "query must be at least 3 characters")
		return
	}

	results, err := h.search.Search(r.Context(), q)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadGateway, "address lookup unavailable")
		return
	}
	if results == nil {
		results = []geocode.Address{}
	}
	writeJSON(h.logger, w, r, http.StatusOK, addressSearchResponse{Results: results})
}
