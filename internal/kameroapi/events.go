package kameroapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/opt"
)

type Event struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Channel      opt.Value[string]    `json:"channel"`
	OwnerID      string               `json:"ownerId"`
	OwnerEmail   opt.Value[string]    `json:"ownerEmail"`
	Status       string               `json:"status"`
	PhotoCount   opt.Value[int]       `json:"photoCount"`
	GuestCount   opt.Value[int]       `json:"guestCount"`
	MaxPhotos    opt.Value[int]       `json:"maxPhotos"`
	StorageBytes opt.Value[int64]     `json:"storageBytes"`
	StartDate    opt.Value[time.Time] `json:"startDate"`
	ExpiresAt    opt.Value[time.Time] `json:"expiresAt"`
	WhitelabelID opt.Value[string]    `json:"whitelabelId"`
	Published    opt.Value[bool]      `json:"isPublished"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// EventUpdate carries only the fields that changed.
type EventUpdate struct {
	Name      *string    `json:"name,omitempty"`
	Status    *string    `json:"status,omitempty"`
	MaxPhotos *int       `json:"maxPhotos,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Published *bool      `json:"isPublished,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}

// Empty reports whether no field changed.
func (u EventUpdate) Empty() bool {
	return u.Name == nil && u.Status == nil && u.MaxPhotos == nil && u.ExpiresAt == nil && u.Published == nil
}

type EventUpdateResult struct {
	Result
	Event Event `json:"event"`
}

// FindEvent accepts an event id or channel.
func (a *API) FindEvent(ctx context.Context, query string) (Event, error) {
	var out Event
	q := url.Values{"query": {strings.TrimSpace(query)}}
	err := a.get(ctx, "events.find", "/admin/events/search", q, &out)
	return out, err
}

func (a *API) GetEvent(ctx context.Context, id string) (Event, error) {
	var out Event
	err := a.get(ctx, "events.get", "/admin/events/"+escape(id), nil, &out)
	return out, err
}

func (a *API) UpdateEvent(ctx context.Context, id string, in EventUpdate) (EventUpdateResult, error) {
	var out EventUpdateResult
	err := a.send(ctx, "events.update", http.MethodPatch, "/admin/events/"+escape(id), in, &out)
	return out, err
}
