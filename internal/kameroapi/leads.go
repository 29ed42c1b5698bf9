package kameroapi

import (
	"context"
	"net/url"
	"time"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/opt"
)

type WebLead struct {
	ID        string            `json:"id"`
	Name      opt.Value[string] `json:"name"`
	Email     opt.Value[string] `json:"email"`
	Phone     opt.Value[string] `json:"phone"`
	Source    opt.Value[string] `json:"source"`
	Message   opt.Value[string] `json:"message"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ListWebLeads pages with an opaque cursor rather than an offset.
func (a *API) ListWebLeads(ctx context.Context, q url.Values) (Page[WebLead], error) {
	var out Page[WebLead]
	err := a.get(ctx, "leads.list", "/admin/web-leads", q, &out)
	return out, err
}
