package invoice

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/noah-isme/shipledger/internal/common"
	"github.com/noah-isme/shipledger/internal/money"
)

// Handler exposes invoice reads, finalization and document rendering.
type Handler struct {
	Service *Service
	Seller  Seller
	// FinalizeGuard and ExportGuard wrap the finalize and rendering routes
	// when set, e.g. with a role check or a per-user limiter.
	FinalizeGuard func(http.Handler) http.Handler
	ExportGuard   func(http.Handler) http.Handler
}

// Routes mounts the invoice endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{invoiceId}", h.Get)
	r.Method(http.MethodPost, "/{invoiceId}/finalize", guarded(h.FinalizeGuard, h.Finalize))
	r.Method(http.MethodGet, "/{invoiceId}/document", guarded(h.ExportGuard, h.Document))
	r.Method(http.MethodGet, "/{invoiceId}/export.xlsx", guarded(h.ExportGuard, h.ExportXLSX))
}

func guarded(guard func(http.Handler) http.Handler, fn http.HandlerFunc) http.Handler {
	if guard == nil {
		return fn
	}
	return guard(fn)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "invoice service not configured", nil)
		return
	}
	page, perPage := common.ParsePagination(r, 20)
	status := Status(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))))
	items, pagination, err := h.Service.List(r.Context(), ListFilter{Status: status, Page: page, PerPage: perPage})
	if err != nil {
		WriteError(w, err)
		return
	}
	common.JSONPage(w, items, pagination)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "invoice service not configured", nil)
		return
	}
	inv, err := h.Service.Get(r.Context(), chi.URLParam(r, "invoiceId"))
	if err != nil {
		WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, inv)
}

func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "invoice service not configured", nil)
		return
	}
	inv, err := h.Service.Finalize(r.Context(), chi.URLParam(r, "invoiceId"))
	if err != nil {
		WriteError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, inv)
}

func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "invoice service not configured", nil)
		return
	}
	inv, err := h.Service.Get(r.Context(), chi.URLParam(r, "invoiceId"))
	if err != nil {
		WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := RenderHTML(w, h.Seller, inv); err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to render invoice", nil)
	}
}

func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "invoice service not configured", nil)
		return
	}
	inv, err := h.Service.Get(r.Context(), chi.URLParam(r, "invoiceId"))
	if err != nil {
		WriteError(w, err)
		return
	}
	book, err := RenderXLSX(h.Seller, inv)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to build workbook", nil)
		return
	}
	defer book.Close()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+FileName(inv)+`.xlsx"`)
	_ = book.Write(w)
}

// WriteError maps invoice and money errors onto the JSON error envelope.
func WriteError(w http.ResponseWriter, err error) {
	var details any
	var fieldErr *common.FieldError
	if errors.As(err, &fieldErr) {
		details = fieldErr.Details()
	}
	var lineErr *LineError
	if errors.As(err, &lineErr) {
		m := map[string]any{"item": lineErr.Index}
		if fieldErr != nil {
			m["field"] = fieldErr.Field
			m["value"] = fieldErr.Value
		}
		details = m
	}
	switch {
	case errors.Is(err, money.ErrInvalidFxRate):
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_FX_RATE", "fx rate must be greater than zero", details)
	case errors.Is(err, money.ErrUnsupportedCurrency):
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_LINE_ITEM", "unsupported currency", details)
	case errors.Is(err, ErrInvalidLineItem):
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_LINE_ITEM", "invalid line item", details)
	case errors.Is(err, ErrInvalidDiscount):
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_DISCOUNT", "invalid discount", details)
	case errors.Is(err, ErrNegativeTotal):
		common.JSONError(w, http.StatusUnprocessableEntity, "NEGATIVE_TOTAL", "discount and adjustment exceed the subtotal", details)
	case errors.Is(err, ErrInvalidStatus):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid status filter", details)
	case errors.Is(err, ErrAlreadyFinalized):
		common.JSONError(w, http.StatusConflict, "ALREADY_FINALIZED", "invoice already finalized", nil)
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "invoice not found", nil)
	default:
		var se *StoreError
		if errors.As(err, &se) {
			common.JSONError(w, http.StatusInternalServerError, "STORE_ERROR", "failed to "+se.Op, nil)
			return
		}
		common.WriteAppError(w, err)
	}
}
