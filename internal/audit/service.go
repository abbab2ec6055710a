// Package audit records who changed the ledger: customer and shipment
// creation, invoice finalization.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/noah-isme/shipledger/internal/common"
	dbgen "github.com/noah-isme/shipledger/internal/db/gen"
	"github.com/noah-isme/shipledger/internal/obs"
)

// Store defines the database operations required for auditing.
type Store interface {
	InsertAuditLog(ctx context.Context, arg dbgen.InsertAuditLogParams) error
	ListAuditLogs(ctx context.Context, arg dbgen.ListAuditLogsParams) ([]dbgen.AuditLog, error)
	CountAuditLogs(ctx context.Context, resourceType string) (int64, error)
}

// Service persists audit entries for ledger writes.
type Service struct {
	Store        Store
	Enabled      bool
	SamplingRate float64
}

// Event is one audited action.
type Event struct {
	Action       string
	ResourceType string
	ResourceID   string
	Status       int
	Metadata     map[string]any
}

// Entry is a stored audit record.
type Entry struct {
	ID           int64           `json:"id"`
	OccurredAt   time.Time       `json:"occurred_at"`
	ActorUserID  string          `json:"actor_user_id,omitempty"`
	Action       string          `json:"action"`
	ResourceType string          `json:"resource_type"`
	ResourceID   string          `json:"resource_id,omitempty"`
	Method       string          `json:"method"`
	Route        string          `json:"route,omitempty"`
	Status       int32           `json:"status"`
	IP           string          `json:"ip,omitempty"`
	RequestID    string          `json:"request_id,omitempty"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
}

// Record persists ev for req when auditing is enabled. The actor is the
// authenticated user on the request context, if any.
func (s Service) Record(ctx context.Context, req *http.Request, ev Event) error {
	if !s.Enabled {
		return nil
	}
	if s.SamplingRate > 0 && s.SamplingRate < 1 && rand.Float64() > s.SamplingRate {
		return nil
	}
	if req == nil {
		return errors.New("audit: request is required")
	}
	if s.Store == nil {
		return errors.New("audit: store not configured")
	}

	route := obs.RoutePatternFromContext(req.Context())
	if route == "" {
		route = strings.TrimSpace(req.URL.Path)
	}
	status := ev.Status
	if status == 0 {
		status = http.StatusOK
	}
	var metadata []byte
	if len(ev.Metadata) > 0 {
		data, err := json.Marshal(ev.Metadata)
		if err != nil {
			return err
		}
		metadata = data
	}
	userID, _ := common.UserID(req.Context())
	actor, _ := common.ToUUID(userID)

	return s.Store.InsertAuditLog(ctx, dbgen.InsertAuditLogParams{
		ActorUserID:  actor,
		Action:       buildAction(ev.Action, req.Method, route),
		ResourceType: buildResource(ev.ResourceType, route),
		ResourceID:   common.Text(ev.ResourceID),
		Method:       req.Method,
		Route:        common.Text(route),
		Status:       int32(status),
		Ip:           common.Text(common.ClientIP(req)),
		RequestID:    common.Text(req.Header.Get("X-Request-ID")),
		Metadata:     metadata,
	})
}

// List returns entries newest first, optionally narrowed to one resource type.
func (s Service) List(ctx context.Context, resourceType string, page, perPage int) ([]Entry, common.Pagination, error) {
	if s.Store == nil {
		return nil, common.Pagination{}, errors.New("audit: store not configured")
	}
	resourceType = strings.TrimSpace(resourceType)
	total, err := s.Store.CountAuditLogs(ctx, resourceType)
	if err != nil {
		return nil, common.Pagination{}, err
	}
	rows, err := s.Store.ListAuditLogs(ctx, dbgen.ListAuditLogsParams{
		ResourceType: resourceType,
		RowLimit:     int32(perPage),
		RowOffset:    common.Offset(page, perPage),
	})
	if err != nil {
		return nil, common.Pagination{}, err
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			ID:           row.ID,
			OccurredAt:   common.TimeValue(row.OccurredAt),
			ActorUserID:  common.UUIDString(row.ActorUserID),
			Action:       row.Action,
			ResourceType: row.ResourceType,
			ResourceID:   common.TextValue(row.ResourceID),
			Method:       row.Method,
			Route:        common.TextValue(row.Route),
			Status:       row.Status,
			IP:           common.TextValue(row.Ip),
			RequestID:    common.TextValue(row.RequestID),
			Metadata:     row.Metadata,
		})
	}
	return entries, common.NewPagination(page, perPage, total), nil
}

func buildAction(action, method, route string) string {
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		return trimmed
	}
	if route == "" {
		route = "/"
	}
	return strings.ToUpper(strings.TrimSpace(method)) + " " + route
}

// buildResource derives "invoices" from /api/v1/invoices/{invoiceId}/finalize
// when no explicit type is given.
func buildResource(resourceType, route string) string {
	if trimmed := strings.TrimSpace(resourceType); trimmed != "" {
		return trimmed
	}
	segments := strings.Split(strings.Trim(route, "/ "), "/")
	if len(segments) >= 3 && segments[0] == "api" && segments[1] == "v1" {
		return segments[2]
	}
	if segments[0] == "" {
		return "unknown"
	}
	return segments[0]
}
