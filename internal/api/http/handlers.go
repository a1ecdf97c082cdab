package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"github.com/vendora/vendora-manager/internal/analytics"
	"github.com/vendora/vendora-manager/internal/auth"
	"github.com/vendora/vendora-manager/internal/entity"
	"github.com/vendora/vendora-manager/internal/store"
)

type handlers struct {
	svc *analytics.Service
}

type analyticsRequest struct {
	SellerID string `valid:"required"`
	Range    string `valid:"in(hour|day|week|month|year),optional"`
}

func (h *handlers) sellerAnalytics(w http.ResponseWriter, r *http.Request) {
	sellerID, err := auth.SellerID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err)
		return
	}

	req := analyticsRequest{
		SellerID: sellerID,
		Range:    r.URL.Query().Get("range"),
	}
	if _, err := govalidator.ValidateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	g := entity.Granularity(req.Range)
	if req.Range == "" {
		g = entity.GranularityMonth
	}

	report, err := h.svc.SellerReport(r.Context(), sellerID, g)
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrNoSeller):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, store.ErrSellerNotFound):
			writeError(w, http.StatusNotFound, err)
		default:
			slog.Default().ErrorContext(r.Context(), "seller analytics failed", "err", err.Error())
			writeError(w, http.StatusInternalServerError, errors.New("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *handlers) productView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, errors.New("product id is required"))
		return
	}
	if err := h.svc.RecordProductView(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type errResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("encode response", "err", err.Error())
	}
}
