// Package tickets answers support tickets: replies with optional attachments
// and status changes.
package tickets

import (
	"context"
	"errors"
	"strings"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/form"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/proof"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/upload"
)

// MaxAttachments bounds one reply.
const MaxAttachments = 5

type Backend interface {
	ReplySupportTicket(ctx context.Context, id string, in kameroapi.TicketReply) (kameroapi.TicketResult, error)
	UpdateSupportTicketStatus(ctx context.Context, id string, status kameroapi.TicketStatus) (kameroapi.TicketResult, error)
}

type Service struct {
	api      Backend
	uploader proof.Uploader
}

func NewService(api Backend, u proof.Uploader) *Service {
	return &Service{api: api, uploader: u}
}

type ReplyInput struct {
	TicketID    string        `form:"-"`
	Message     string        `form:"message" binding:"notblank,max=5000"`
	Attachments []upload.File `form:"-"`
	// OnProgress receives "Uploading i/N: name" before each attachment.
	OnProgress func(status string) `form:"-"`
}

type ReplyResult struct {
	Ticket         kameroapi.SupportTicket
	AttachmentURLs []string
	Message        string
}

// Reply uploads the attachments one by one in the order given, then posts
// the reply with their URLs. If any attachment fails, the reply is not sent.
func (s *Service) Reply(ctx context.Context, in ReplyInput) (ReplyResult, error) {
	fields := form.Validate(in)
	if len(in.Attachments) > MaxAttachments {
		fields.Add("attachments", "Attach at most 5 files.")
	}
	batch := upload.Batch{
		Rules:      upload.AttachmentRules,
		Category:   upload.TicketAttachment,
		Presigner:  s.uploader.Presigner,
		Putter:     s.uploader.Putter,
		OnProgress: in.OnProgress,
	}
	if err := batch.Validate(in.Attachments); err != nil {
		fields.Add("attachments", err.Error())
	}
	if err := fields.Err(); err != nil {
		return ReplyResult{}, err
	}

	urls, err := batch.UploadAll(ctx, in.Attachments)
	if err != nil {
		return ReplyResult{}, apperr.FromAPI(err, "Failed to upload attachments")
	}

	res, err := s.api.ReplySupportTicket(ctx, in.TicketID, kameroapi.TicketReply{
		Message:     strings.TrimSpace(in.Message),
		Attachments: urls,
	})
	if err != nil {
		return ReplyResult{}, replyFailed(err)
	}
	msg := res.Message
	if msg == "" {
		msg = "Reply sent."
	}
	return ReplyResult{Ticket: res.Ticket, AttachmentURLs: urls, Message: msg}, nil
}

// replyFailed keeps the backend's error kind, so an expired session still
// sends the operator to sign in, and prefixes the message with the stage.
func replyFailed(err error) error {
	const stage = "Failed to send reply"
	ae, _ := apperr.As(apperr.FromAPI(err, stage))
	if ae.PublicMsg != stage {
		ae.PublicMsg = stage + ": " + ae.PublicMsg
	}
	return ae
}

var errUnknownStatus = errors.New("unknown ticket status")

// ParseStatus matches a ticket status case-insensitively.
func ParseStatus(raw string) (kameroapi.TicketStatus, error) {
	raw = strings.TrimSpace(raw)
	for _, st := range kameroapi.TicketStatuses {
		if strings.EqualFold(string(st), raw) {
			return st, nil
		}
	}
	return "", errUnknownStatus
}

func (s *Service) ChangeStatus(ctx context.Context, ticketID, raw string) (kameroapi.SupportTicket, error) {
	status, err := ParseStatus(raw)
	if err != nil {
		return kameroapi.SupportTicket{}, apperr.InvalidErr("Choose a valid status.", map[string]string{"status": "Choose a valid status."})
	}
	res, err := s.api.UpdateSupportTicketStatus(ctx, ticketID, status)
	if err != nil {
		return kameroapi.SupportTicket{}, apperr.FromAPI(err, "Failed to update ticket status")
	}
	return res.Ticket, nil
}

// StatusLabel is the human form of a status, e.g. "In progress".
func StatusLabel(st kameroapi.TicketStatus) string {
	s := strings.ToLower(strings.ReplaceAll(string(st), "_", " "))
	if s == "" {
		return "Unknown"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
