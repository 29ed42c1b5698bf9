package admin

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/middleware"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/render"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/tickets"
)

type TicketsHandler struct {
	*Base
}

type statusOption struct {
	Value string
	Label string
}

type statusForm struct {
	Status string `form:"status" binding:"required"`
}

type ticketPage struct {
	Ticket         kameroapi.SupportTicket
	StatusLabel    string
	Statuses       []statusOption
	MaxAttachments int
}

func (h *TicketsHandler) Detail(c *gin.Context) {
	api, ok := h.api(c)
	if !ok {
		return
	}
	t, err := api.GetSupportTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fetchFailed(c, err, "Failed to load ticket")
		return
	}
	opts := make([]statusOption, 0, len(kameroapi.TicketStatuses))
	for _, st := range kameroapi.TicketStatuses {
		opts = append(opts, statusOption{Value: string(st), Label: tickets.StatusLabel(st)})
	}
	render.Page(c, http.StatusOK, "support-tickets/detail", t.Subject, ticketPage{
		Ticket:         t,
		StatusLabel:    tickets.StatusLabel(t.Status),
		Statuses:       opts,
		MaxAttachments: tickets.MaxAttachments,
	})
}

// Reply uploads the attachments in order, then posts the reply. Upload
// progress goes to the debug log; the browser waits for the redirect.
func (h *TicketsHandler) Reply(c *gin.Context) {
	id := c.Param("id")
	back := "/admin/support-tickets/" + url.PathEscape(id)
	api, ok := h.api(c)
	if !ok {
		return
	}
	if err := parseForm(c); err != nil {
		h.failed(c, back, err)
		return
	}

	var in tickets.ReplyInput
	if err := bind(c, &in); err != nil {
		h.failed(c, back, err)
		return
	}
	rid := middleware.GetRequestID(c)
	in.TicketID = id
	in.Attachments = formFiles(c, "attachments")
	in.OnProgress = func(status string) {
		h.Logger.LogAttrs(c.Request.Context(), slog.LevelDebug, "ticket_reply_progress",
			slog.String("request_id", rid),
			slog.String("ticket", id),
			slog.String("status", status),
		)
	}

	res, err := tickets.NewService(api, h.uploader(api)).Reply(c.Request.Context(), in)
	if err != nil {
		h.failed(c, back, err)
		return
	}
	h.done(c, back, res.Message)
}

func (h *TicketsHandler) ChangeStatus(c *gin.Context) {
	id := c.Param("id")
	back := "/admin/support-tickets/" + url.PathEscape(id)
	api, ok := h.api(c)
	if !ok {
		return
	}

	var in statusForm
	if err := bind(c, &in); err != nil {
		h.failed(c, back, err)
		return
	}
	t, err := tickets.NewService(api, h.uploader(api)).ChangeStatus(c.Request.Context(), id, in.Status)
	if err != nil {
		h.failed(c, back, err)
		return
	}
	h.done(c, back, "Ticket marked "+tickets.StatusLabel(t.Status)+".")
}
