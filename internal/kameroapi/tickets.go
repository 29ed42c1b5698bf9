package kameroapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/opt"
)

type TicketStatus string

const (
	TicketOpen       TicketStatus = "OPEN"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketResolved   TicketStatus = "RESOLVED"
	TicketClosed     TicketStatus = "CLOSED"
)

var TicketStatuses = []TicketStatus{TicketOpen, TicketInProgress, TicketResolved, TicketClosed}

type SupportTicket struct {
	ID         string               `json:"id"`
	Subject    string               `json:"subject"`
	Status     TicketStatus         `json:"status"`
	Priority   opt.Value[string]    `json:"priority"`
	Category   opt.Value[string]    `json:"category"`
	UserID     string               `json:"userId"`
	UserEmail  opt.Value[string]    `json:"userEmail"`
	AssignedTo opt.Value[string]    `json:"assignedTo"`
	Messages   []TicketMessage      `json:"messages"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  opt.Value[time.Time] `json:"updatedAt"`
}

type TicketMessage struct {
	ID          string    `json:"id"`
	Author      string    `json:"author"`
	AuthorRole  string    `json:"authorRole"`
	Body        string    `json:"body"`
	Attachments []string  `json:"attachments"`
	CreatedAt   time.Time `json:"createdAt"`
}

type TicketReply struct {
	Message     string   `json:"message"`
	Attachments []string `json:"attachments,omitempty"`
}

type TicketResult struct {
	Result
	Ticket SupportTicket `json:"ticket"`
}

func (a *API) ListSupportTickets(ctx context.Context, q url.Values) (Page[SupportTicket], error) {
	var out Page[SupportTicket]
	err := a.get(ctx, "tickets.list", "/admin/support-tickets", q, &out)
	return out, err
}

func (a *API) GetSupportTicket(ctx context.Context, id string) (SupportTicket, error) {
	var out SupportTicket
	err := a.get(ctx, "tickets.get", "/admin/support-tickets/"+escape(id), nil, &out)
	return out, err
}

func (a *API) ReplySupportTicket(ctx context.Context, id string, in TicketReply) (TicketResult, error) {
	var out TicketResult
	err := a.send(ctx, "tickets.reply", http.MethodPost, "/admin/support-tickets/"+escape(id)+"/reply", in, &out)
	return out, err
}

func (a *API) UpdateSupportTicketStatus(ctx context.Context, id string, status TicketStatus) (TicketResult, error) {
	var out TicketResult
	payload := map[string]TicketStatus{"status": status}
	err := a.send(ctx, "tickets.status", http.MethodPatch, "/admin/support-tickets/"+escape(id)+"/status", payload, &out)
	return out, err
}
