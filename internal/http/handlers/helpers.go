package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"kargo-booking/internal/apperr"
	"kargo-booking/internal/logx"
	"kargo-booking/internal/session"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Error("json encode error",
			logx.String("req_id", reqID(r.Context())),
			logx.Any("err", err),
		)
	}
}

type errResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors []string `json:"errors"`
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	logger.Warn("http error",
		logx.String("req_id", reqID(r.Context())),
		logx.Int("status", status),
		logx.String("msg", msg),
	)
	writeJSON(logger, w, r, status, errResponse{Error: msg})
}

// writeDomainError maps assembly and submission failures onto HTTP statuses.
func writeDomainError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr   *apperr.ValidationError
		cerr   *apperr.CapacityError
		sterr  *apperr.StorageError
		suberr *apperr.SubmissionError
	)
	switch {
	case errors.As(err, &verr):
		logger.Warn("http validation rejected",
			logx.String("req_id", reqID(r.Context())),
			logx.Int("messages", len(verr.Messages)),
		)
		writeJSON(logger, w, r, http.StatusUnprocessableEntity, validationResponse{Errors: verr.Messages})
	case errors.As(err, &cerr):
		writeError(logger, w, r, http.StatusConflict, cerr.Error())
	case errors.As(err, &sterr):
		writeError(logger, w, r, http.StatusServiceUnavailable, "draft storage unavailable")
	case errors.As(err, &suberr):
		writeError(logger, w, r, http.StatusBadGateway, "order store unavailable")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(logger, w, r, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(logger, w, r, http.StatusConflict, "conflict")
	case errors.Is(err, session.ErrNoUser):
		writeError(logger, w, r, http.StatusUnauthorized, "authentication required")
	default:
		writeError(logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

const (
	bodyLimit = 1 << 20
)

func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json: trailing data")
		return false
	}
	return true
}

func indexFromURL(r *http.Request, name string) (int, error) {
	s := chi.URLParam(r, name)
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 0 {
		return 0, errors.New("invalid index")
	}
	return idx, nil
}
