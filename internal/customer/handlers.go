package customer

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/shipledger/internal/common"
	"github.com/noah-isme/shipledger/internal/invoice"
)

// Handler exposes the customer directory.
type Handler struct {
	Service   *Service
	Validator *validator.Validate
}

// Routes mounts the customer endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{customerId}", h.Get)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "customer service not configured", nil)
		return
	}
	var req Input
	if !common.Bind(w, r, h.Validator, &req) {
		return
	}
	c, err := h.Service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/api/v1/customers/"+c.ID)
	common.JSONData(w, http.StatusCreated, c)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "customer service not configured", nil)
		return
	}
	page, perPage := common.ParsePagination(r, 20)
	items, pagination, err := h.Service.List(r.Context(), page, perPage)
	if err != nil {
		writeError(w, err)
		return
	}
	common.JSONPage(w, items, pagination)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "customer service not configured", nil)
		return
	}
	c, err := h.Service.Get(r.Context(), chi.URLParam(r, "customerId"))
	if err != nil {
		writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, c)
}

func writeError(w http.ResponseWriter, err error) {
	var fieldErr *common.FieldError
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "customer not found", nil)
	case errors.Is(err, ErrDuplicateGSTIN):
		var details any
		if errors.As(err, &fieldErr) {
			details = fieldErr.Details()
		}
		common.JSONError(w, http.StatusConflict, "DUPLICATE_GSTIN", "gstin already registered", details)
	default:
		invoice.WriteError(w, err)
	}
}
