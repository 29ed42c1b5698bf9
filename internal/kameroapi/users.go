package kameroapi

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/opt"
)

type User struct {
	ID           string                         `json:"id"`
	Name         opt.Value[string]              `json:"name"`
	Email        opt.Value[string]              `json:"email"`
	Phone        opt.Value[string]              `json:"phone"`
	Role         string                         `json:"role"`
	WhitelabelID opt.Value[string]              `json:"whitelabelId"`
	Subscription opt.Value[SubscriptionSummary] `json:"subscription"`
	EventCount   opt.Value[int]                 `json:"eventCount"`
	Disabled     opt.Value[bool]                `json:"disabled"`
	CreatedAt    time.Time                      `json:"createdAt"`
	LastLoginAt  opt.Value[time.Time]           `json:"lastLoginAt"`
	Metadata     opt.Value[map[string]any]      `json:"metadata"`
}

type SubscriptionSummary struct {
	PlanName string               `json:"planName"`
	Status   string               `json:"status"`
	EndsAt   opt.Value[time.Time] `json:"endsAt"`
}

type RecentSignup struct {
	ID           string            `json:"id"`
	Name         opt.Value[string] `json:"name"`
	Email        opt.Value[string] `json:"email"`
	Phone        opt.Value[string] `json:"phone"`
	Source       opt.Value[string] `json:"source"`
	WhitelabelID opt.Value[string] `json:"whitelabelId"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// FindUser looks a user up by id, email or phone; the backend decides which.
func (a *API) FindUser(ctx context.Context, query string) (User, error) {
	var out User
	q := url.Values{"query": {strings.TrimSpace(query)}}
	err := a.get(ctx, "users.find", "/admin/users/search", q, &out)
	return out, err
}

func (a *API) GetUser(ctx context.Context, id string) (User, error) {
	var out User
	err := a.get(ctx, "users.get", "/admin/users/"+escape(id), nil, &out)
	return out, err
}

func (a *API) ListRecentSignups(ctx context.Context, q url.Values) (Page[RecentSignup], error) {
	var out Page[RecentSignup]
	err := a.get(ctx, "users.recent_signups", "/admin/users/recent-signups", q, &out)
	return out, err
}
