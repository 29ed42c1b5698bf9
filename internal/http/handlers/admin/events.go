package admin

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/render"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/events"
)

type EventsHandler struct {
	*Base
}

type eventSearchPage struct {
	Query   string
	Message string
}

type eventDetailPage struct {
	Event    kameroapi.Event
	Form     events.Form
	Statuses []string
}

// Search accepts an event id or channel and jumps to the event.
func (h *EventsHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		render.Page(c, http.StatusOK, "events/search", "Events", eventSearchPage{})
		return
	}
	api, ok := h.api(c)
	if !ok {
		return
	}
	ev, err := api.FindEvent(c.Request.Context(), q)
	if kameroapi.IsNotFound(err) {
		render.Page(c, http.StatusOK, "events/search", "Events", eventSearchPage{
			Query:   q,
			Message: kameroapi.Message(err, "No event matches "+q+"."),
		})
		return
	}
	if err != nil {
		h.fetchFailed(c, err, "Failed to search events")
		return
	}
	c.Redirect(http.StatusFound, "/admin/events/"+url.PathEscape(ev.ID))
}

func (h *EventsHandler) Detail(c *gin.Context) {
	api, ok := h.api(c)
	if !ok {
		return
	}
	ev, err := api.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fetchFailed(c, err, "Failed to load event")
		return
	}
	render.Page(c, http.StatusOK, "events/detail", ev.Name, eventDetailPage{
		Event:    ev,
		Form:     events.FormFor(ev),
		Statuses: events.Statuses,
	})
}

// Update saves the changed fields with the operator's reason.
func (h *EventsHandler) Update(c *gin.Context) {
	id := c.Param("id")
	back := "/admin/events/" + url.PathEscape(id)
	api, ok := h.api(c)
	if !ok {
		return
	}

	var in events.Form
	if err := bind(c, &in); err != nil {
		h.failed(c, back, err)
		return
	}
	_, msg, err := events.NewService(api).Edit(c.Request.Context(), id, in)
	if err != nil {
		h.failed(c, back, err)
		return
	}
	h.done(c, back, msg)
}
