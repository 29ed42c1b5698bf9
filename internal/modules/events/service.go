// Package events edits event settings. Only fields that differ from the
// event as loaded are sent, together with a mandatory audit reason.
package events

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/form"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
)

const dateLayout = "2006-01-02"

// Statuses the dashboard may set.
var Statuses = []string{"active", "archived", "suspended"}

type Backend interface {
	GetEvent(ctx context.Context, id string) (kameroapi.Event, error)
	UpdateEvent(ctx context.Context, id string, in kameroapi.EventUpdate) (kameroapi.EventUpdateResult, error)
}

type Service struct {
	api Backend
}

func NewService(api Backend) *Service { return &Service{api: api} }

// Form is the edit form as submitted. Empty numeric and date fields mean
// "leave unchanged".
type Form struct {
	Name      string `form:"name" binding:"max=200"`
	Status    string `form:"status"`
	MaxPhotos string `form:"max_photos"`
	ExpiresAt string `form:"expires_at"`
	Published bool   `form:"published"`
	Reason    string `form:"reason" binding:"notblank,max=500"`
}

// FormFor pre-fills the edit form from ev.
func FormFor(ev kameroapi.Event) Form {
	f := Form{Name: ev.Name, Status: ev.Status, Published: ev.Published.Or(false)}
	if n, ok := ev.MaxPhotos.Get(); ok {
		f.MaxPhotos = strconv.Itoa(n)
	}
	if t, ok := ev.ExpiresAt.Get(); ok {
		f.ExpiresAt = t.Format(dateLayout)
	}
	return f
}

// Diff returns the update that turns ev into what in describes.
func Diff(ev kameroapi.Event, in Form) (kameroapi.EventUpdate, error) {
	fields := form.Validate(in)
	var u kameroapi.EventUpdate

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		fields.Add("name", "Name cannot be empty.")
	case name != ev.Name:
		u.Name = &name
	}

	if st := strings.ToLower(strings.TrimSpace(in.Status)); st != "" && st != strings.ToLower(ev.Status) {
		if !contains(Statuses, st) {
			fields.Add("status", "Choose a valid status.")
		} else {
			u.Status = &st
		}
	}

	if raw := strings.TrimSpace(in.MaxPhotos); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil || n < 0:
			fields.Add("max_photos", "Max photos must be a whole number.")
		case n != ev.MaxPhotos.Or(-1):
			u.MaxPhotos = &n
		}
	}

	if raw := strings.TrimSpace(in.ExpiresAt); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			fields.Add("expires_at", "Use the YYYY-MM-DD format.")
		} else if cur, ok := ev.ExpiresAt.Get(); !ok || cur.Format(dateLayout) != raw {
			u.ExpiresAt = &t
		}
	}

	if in.Published != ev.Published.Or(false) {
		p := in.Published
		u.Published = &p
	}

	if err := fields.Err(); err != nil {
		return kameroapi.EventUpdate{}, err
	}
	u.Reason = strings.TrimSpace(in.Reason)
	return u, nil
}

// Edit loads the event, computes the diff and saves it.
func (s *Service) Edit(ctx context.Context, id string, in Form) (kameroapi.Event, string, error) {
	ev, err := s.api.GetEvent(ctx, id)
	if err != nil {
		return kameroapi.Event{}, "", apperr.FromAPI(err, "Failed to load event")
	}
	u, err := Diff(ev, in)
	if err != nil {
		return ev, "", err
	}
	if u.Empty() {
		return ev, "", apperr.InvalidErr("Nothing changed.", nil)
	}

	res, err := s.api.UpdateEvent(ctx, id, u)
	if err != nil {
		return ev, "", apperr.FromAPI(err, "Failed to update event")
	}
	msg := res.Message
	if msg == "" {
		msg = "Event updated."
	}
	return res.Event, msg, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
