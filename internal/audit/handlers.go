package audit

import (
	"net/http"

	"github.com/noah-isme/shipledger/internal/common"
)

// Handler exposes the audit trail to administrators.
type Handler struct {
	Service *Service
}

// List handles GET /api/v1/audit-logs?resource_type=invoices&page=1&limit=50.
func (h Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil || h.Service.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "AUDIT_NOT_CONFIGURED", "audit store not configured", nil)
		return
	}
	page, perPage := common.ParsePagination(r, 50)
	entries, p, err := h.Service.List(r.Context(), r.URL.Query().Get("resource_type"), page, perPage)
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "AUDIT_QUERY_FAILED", "unable to fetch audit logs", nil)
		return
	}
	common.JSONPage(w, entries, p)
}
