package shipment

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/shipledger/internal/common"
	"github.com/noah-isme/shipledger/internal/invoice"
)

// Handler exposes shipment submission and lookup.
type Handler struct {
	Service   *Service
	Validator *validator.Validate
}

// Routes mounts the shipment endpoints. create wraps the POST handler, e.g.
// with the idempotency middleware.
func (h *Handler) Routes(create func(http.Handler) http.Handler) func(chi.Router) {
	return func(r chi.Router) {
		var post http.Handler = http.HandlerFunc(h.Create)
		if create != nil {
			post = create(post)
		}
		r.Method(http.MethodPost, "/", post)
		r.Get("/", h.List)
		r.Get("/{shipmentId}", h.Get)
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "shipment service not configured", nil)
		return
	}
	var req SubmitInput
	if !common.Bind(w, r, h.Validator, &req) {
		return
	}
	userID, _ := common.UserID(r.Context())
	res, err := h.Service.Submit(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/api/v1/shipments/"+res.Shipment.ID)
	common.JSONData(w, http.StatusCreated, res)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "shipment service not configured", nil)
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
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "shipment service not configured", nil)
		return
	}
	detail, err := h.Service.Get(r.Context(), chi.URLParam(r, "shipmentId"))
	if err != nil {
		writeError(w, err)
		return
	}
	common.JSONData(w, http.StatusOK, detail)
}

// TypeOption lists the subtypes of one shipment type.
type TypeOption struct {
	Type     Type     `json:"type"`
	Subtypes []string `json:"subtypes"`
}

// ListTypes handles GET /shipment-types.
func ListTypes(w http.ResponseWriter, _ *http.Request) {
	out := make([]TypeOption, 0, len(Types()))
	for _, t := range Types() {
		out = append(out, TypeOption{Type: t, Subtypes: Subtypes(t)})
	}
	common.JSONData(w, http.StatusOK, out)
}

func writeError(w http.ResponseWriter, err error) {
	var details any
	var fieldErr *common.FieldError
	if errors.As(err, &fieldErr) {
		details = fieldErr.Details()
	}
	switch {
	case errors.Is(err, ErrInvalidType):
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_TYPE", "invalid shipment type", details)
	case errors.Is(err, ErrInvalidSubtype):
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_SUBTYPE", "subtype is not valid for the shipment type", details)
	case errors.Is(err, ErrInvalidDimensions):
		common.JSONError(w, http.StatusUnprocessableEntity, "INVALID_DIMENSIONS", "invalid shipment dimensions", details)
	case errors.Is(err, ErrCustomerNotFound):
		common.JSONError(w, http.StatusUnprocessableEntity, "CUSTOMER_NOT_FOUND", "customer not found", details)
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "shipment not found", nil)
	default:
		invoice.WriteError(w, err)
	}
}
