package kameroapi

import (
	"context"
	"net/url"
	"time"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/opt"
)

type AuditLogEntry struct {
	ID            string                    `json:"id"`
	ActorID       string                    `json:"actorId"`
	ActorEmail    opt.Value[string]         `json:"actorEmail"`
	OperationType string                    `json:"operationType"`
	EntityType    string                    `json:"entityType"`
	EntityID      string                    `json:"entityId"`
	Changes       opt.Value[map[string]any] `json:"changes"`
	Reason        opt.Value[string]         `json:"reason"`
	Status        opt.Value[string]         `json:"status"`
	IPAddress     opt.Value[string]         `json:"ipAddress"`
	CreatedAt     time.Time                 `json:"createdAt"`
}

func (a *API) ListAuditLogs(ctx context.Context, q url.Values) (Page[AuditLogEntry], error) {
	var out Page[AuditLogEntry]
	err := a.get(ctx, "audit_logs.list", "/admin/audit-logs", q, &out)
	return out, err
}
