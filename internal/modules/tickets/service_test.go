package tickets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/proof"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/upload"
)

type fakeBackend struct {
	replies  []kameroapi.TicketReply
	statuses []kameroapi.TicketStatus
	replyErr error
}

func (f *fakeBackend) ReplySupportTicket(_ context.Context, _ string, in kameroapi.TicketReply) (kameroapi.TicketResult, error) {
	f.replies = append(f.replies, in)
	return kameroapi.TicketResult{}, f.replyErr
}

func (f *fakeBackend) UpdateSupportTicketStatus(_ context.Context, id string, st kameroapi.TicketStatus) (kameroapi.TicketResult, error) {
	f.statuses = append(f.statuses, st)
	return kameroapi.TicketResult{Ticket: kameroapi.SupportTicket{ID: id, Status: st}}, nil
}

type storage struct {
	uploaded []string
	failOn   string
}

func (s *storage) Put(_ context.Context, _ string, f upload.File) error {
	if f.Name == s.failOn {
		return errors.New("503 Service Unavailable")
	}
	s.uploaded = append(s.uploaded, f.Name)
	return nil
}

func (s *storage) uploader() proof.Uploader {
	return proof.Uploader{
		Presigner: upload.PresignFunc(func(_ context.Context, r upload.PresignRequest) (upload.Presigned, error) {
			return upload.Presigned{UploadURL: "https://s3/" + r.FileName, FileURL: "https://cdn/" + r.FileName}, nil
		}),
		Putter: s,
	}
}

func files(names ...string) []upload.File {
	out := make([]upload.File, 0, len(names))
	for _, n := range names {
		out = append(out, upload.FromBytes(n, "image/png", []byte(n)))
	}
	return out
}

func TestReplyUploadsInOrderThenPosts(t *testing.T) {
	api := &fakeBackend{}
	st := &storage{}
	svc := NewService(api, st.uploader())

	var progress []string
	res, err := svc.Reply(context.Background(), ReplyInput{
		TicketID:    "t1",
		Message:     " Fixed, see screenshots ",
		Attachments: files("A.png", "B.png"),
		OnProgress:  func(s string) { progress = append(progress, s) },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Uploading 1/2: A.png", "Uploading 2/2: B.png"}, progress)
	assert.Equal(t, []string{"https://cdn/A.png", "https://cdn/B.png"}, res.AttachmentURLs)
	require.Len(t, api.replies, 1)
	assert.Equal(t, "Fixed, see screenshots", api.replies[0].Message)
	assert.Equal(t, res.AttachmentURLs, api.replies[0].Attachments)
	assert.Equal(t, "Reply sent.", res.Message)
}

func TestReplyStopsAtFailingAttachment(t *testing.T) {
	api := &fakeBackend{}
	st := &storage{failOn: "B.png"}
	svc := NewService(api, st.uploader())

	_, err := svc.Reply(context.Background(), ReplyInput{TicketID: "t1", Message: "hi", Attachments: files("A.png", "B.png", "C.png")})
	require.Error(t, err)

	assert.Equal(t, "Failed to upload B.png: 503 Service Unavailable", apperr.PublicMessage(err))
	assert.Equal(t, []string{"A.png"}, st.uploaded)
	assert.Empty(t, api.replies)
}

func TestReplyWithoutAttachments(t *testing.T) {
	api := &fakeBackend{}
	svc := NewService(api, (&storage{}).uploader())

	_, err := svc.Reply(context.Background(), ReplyInput{TicketID: "t1", Message: "On it"})
	require.NoError(t, err)
	require.Len(t, api.replies, 1)
	assert.Empty(t, api.replies[0].Attachments)
}

func TestReplyValidation(t *testing.T) {
	api := &fakeBackend{}
	st := &storage{}
	svc := NewService(api, st.uploader())

	bad := upload.FromBytes("run.exe", "application/x-msdownload", []byte("MZ"))
	_, err := svc.Reply(context.Background(), ReplyInput{TicketID: "t1", Message: " ", Attachments: []upload.File{bad}})

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, ae.Fields, "message")
	assert.Contains(t, ae.Fields["attachments"], "run.exe")
	assert.Empty(t, st.uploaded)
	assert.Empty(t, api.replies)
}

func TestReplyMutationFailure(t *testing.T) {
	api := &fakeBackend{replyErr: &kameroapi.APIError{StatusCode: 409, Message: "Ticket is closed"}}
	svc := NewService(api, (&storage{}).uploader())

	_, err := svc.Reply(context.Background(), ReplyInput{TicketID: "t1", Message: "hello"})
	assert.Equal(t, "Failed to send reply: Ticket is closed", apperr.PublicMessage(err))
}

func TestReplyKeepsBackendErrorKind(t *testing.T) {
	api := &fakeBackend{replyErr: &kameroapi.APIError{StatusCode: 401}}
	svc := NewService(api, (&storage{}).uploader())

	_, err := svc.Reply(context.Background(), ReplyInput{TicketID: "t1", Message: "hello"})
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Unauthorized, ae.Kind)
	assert.Equal(t, "Failed to send reply", ae.PublicMsg)
	assert.ErrorIs(t, err, api.replyErr)
}

func TestChangeStatus(t *testing.T) {
	api := &fakeBackend{}
	svc := NewService(api, proof.Uploader{})

	tk, err := svc.ChangeStatus(context.Background(), "t1", "in_progress")
	require.NoError(t, err)
	assert.Equal(t, kameroapi.TicketInProgress, tk.Status)

	_, err = svc.ChangeStatus(context.Background(), "t1", "archived")
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Invalid, ae.Kind)
	assert.Len(t, api.statuses, 1)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "In progress", StatusLabel(kameroapi.TicketInProgress))
	assert.Equal(t, "Open", StatusLabel(kameroapi.TicketOpen))
	assert.Equal(t, "Unknown", StatusLabel(""))
}
