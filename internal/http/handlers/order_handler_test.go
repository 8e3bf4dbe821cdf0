package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kargo-booking/internal/apperr"
	"kargo-booking/internal/domain"
	"kargo-booking/internal/logx"
)

type submitterStub struct {
	order *domain.Order
	err   error
}

func (s submitterStub) Submit(context.Context) (*domain.Order, error) {
	return s.order, s.err
}

type readerStub struct {
	order *domain.Order
	list  []domain.Order
	err   error
}

func (s readerStub) Get(context.Context, string) (*domain.Order, error) {
	return s.order, s.err
}

func (s readerStub) List(context.Context, *domain.OrderStatus) ([]domain.Order, error) {
	return s.list, s.err
}

func TestOrderHandler_SubmitCreated(t *testing.T) {
	t.Parallel()

	o := &domain.Order{ID: "ord-1", CustomerID: "u1", Status: domain.StatusPending}
	h := NewOrderHandler(submitterStub{order: o}, readerStub{}, logx.Nop())

	rr := httptest.NewRecorder()
	h.Submit(rr, httptest.NewRequest(http.MethodPost, "/order/submit", nil))

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "/orders/ord-1", rr.Header().Get("Location"))

	var got domain.Order
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, domain.StatusPending, got.Status)
}

func TestOrderHandler_SubmitValidationFailure(t *testing.T) {
	t.Parallel()

	h := NewOrderHandler(
		submitterStub{err: apperr.Validation("receiver details are required")},
		readerStub{}, logx.Nop(),
	)

	rr := httptest.NewRecorder()
	h.Submit(rr, httptest.NewRequest(http.MethodPost, "/order/submit", nil))

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp validationResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Contains(t, resp.Errors, "receiver details are required")
}

func TestOrderHandler_SubmitStoreDown(t *testing.T) {
	t.Parallel()

	h := NewOrderHandler(
		submitterStub{err: &apperr.SubmissionError{Err: errors.New("timeout")}},
		readerStub{}, logx.Nop(),
	)

	rr := httptest.NewRecorder()
	h.Submit(rr, httptest.NewRequest(http.MethodPost, "/order/submit", nil))

	require.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestOrderHandler_SubmitWithoutDraft(t *testing.T) {
	t.Parallel()

	h := NewOrderHandler(submitterStub{err: apperr.ErrNotFound}, readerStub{}, logx.Nop())

	rr := httptest.NewRecorder()
	h.Submit(rr, httptest.NewRequest(http.MethodPost, "/order/submit", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestOrderHandler_GetMissing(t *testing.T) {
	t.Parallel()

	h := NewOrderHandler(submitterStub{}, readerStub{err: apperr.ErrNotFound}, logx.Nop())

	req := httptest.NewRequest(http.MethodGet, "/orders/ord-9", nil)
	rr := httptest.NewRecorder()
	withChiParam(req, "id", "ord-9", func(req *http.Request) {
		h.Get(rr, req)
	})

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestOrderHandler_ListRejectsBadStatus(t *testing.T) {
	t.Parallel()

	h := NewOrderHandler(submitterStub{}, readerStub{}, logx.Nop())

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/orders?status=bogus", nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOrderHandler_ListEmptyIsArray(t *testing.T) {
	t.Parallel()

	h := NewOrderHandler(submitterStub{}, readerStub{}, logx.Nop())

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/orders", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
