package audit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	dbgen "github.com/noah-isme/shipledger/internal/db/gen"
)

func TestHandlerList(t *testing.T) {
	store := &stubStore{total: 1, rows: []dbgen.AuditLog{{ID: 1, Action: "customer.create", ResourceType: "customers", Method: http.MethodPost, Status: 201}}}
	h := Handler{Service: &Service{Store: store}}

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/audit-logs?resource_type=customers&limit=25&page=3", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, int32(25), store.listArg.RowLimit)
	require.Equal(t, int32(50), store.listArg.RowOffset)
	require.Equal(t, "customers", store.listArg.ResourceType)

	var payload struct {
		Data       []Entry        `json:"data"`
		Pagination map[string]int `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	require.Len(t, payload.Data, 1)
	require.Equal(t, "customer.create", payload.Data[0].Action)
	require.Equal(t, 1, payload.Pagination["total_items"])
}

func TestHandlerListNotConfigured(t *testing.T) {
	rr := httptest.NewRecorder()
	Handler{}.List(rr, httptest.NewRequest(http.MethodGet, "/audit-logs", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}
