package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	mu        sync.Mutex
	presigned []string
	put       []string
	failPut   map[string]error
	failSign  error
}

func (s *fakeStorage) PresignUpload(ctx context.Context, req PresignRequest) (Presigned, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presigned = append(s.presigned, req.FileName)
	if s.failSign != nil {
		return Presigned{}, s.failSign
	}
	return Presigned{
		UploadURL: "https://storage.test/put/" + req.FileName,
		FileURL:   "https://cdn.test/" + string(req.UploadType) + "/" + req.FileName,
	}, nil
}

func (s *fakeStorage) Put(ctx context.Context, uploadURL string, f File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put = append(s.put, f.Name)
	if err := s.failPut[f.Name]; err != nil {
		return err
	}
	return nil
}

func png(name string) File {
	return FromBytes(name, "image/png", []byte("\x89PNG fake"))
}

func TestRulesCheck(t *testing.T) {
	cases := []struct {
		name string
		file File
		ok   bool
	}{
		{"png proof", png("proof.png"), true},
		{"pdf by extension", FromBytes("invoice.pdf", "", []byte("%PDF")), true},
		{"video not a proof", FromBytes("clip.mp4", "video/mp4", []byte("x")), false},
		{"unknown type", FromBytes("notes.txt", "text/plain", []byte("x")), false},
		{"empty", FromBytes("empty.png", "image/png", nil), false},
		{"missing", File{}, false},
		{"too large", File{Name: "huge.png", ContentType: "image/png", Size: 11 * MB, Open: png("x").Open}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ProofRules.Check(tc.file)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}
}

func TestAttachmentRulesAllowLargeVideo(t *testing.T) {
	f := File{Name: "walkthrough.mov", ContentType: "video/quicktime", Size: 900 * MB, Open: png("x").Open}
	assert.NoError(t, AttachmentRules.Check(f))

	f.Size = 2 * GB
	assert.Error(t, AttachmentRules.Check(f))
}

func TestWizardHappyPath(t *testing.T) {
	st := &fakeStorage{}
	w := NewWizard(Config{Rules: ProofRules, Category: PaymentProof, Presigner: st, Putter: st, Action: "settle wallet"})
	assert.Equal(t, Idle, w.Phase())

	require.NoError(t, w.SelectFile(png("proof.png")))
	assert.Equal(t, FileSelected, w.Phase())

	var got string
	url, err := w.Submit(context.Background(), func(ctx context.Context, fileURL string) error {
		assert.Equal(t, MutationInFlight, w.Phase())
		got = fileURL
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/payment_proof/proof.png", url)
	assert.Equal(t, url, got)
	assert.Equal(t, Done, w.Phase())

	_, err = w.Submit(context.Background(), func(context.Context, string) error { return nil })
	assert.ErrorIs(t, err, ErrCompleted)
}

func TestWizardSelectInvalidKeepsState(t *testing.T) {
	st := &fakeStorage{}
	w := NewWizard(Config{Rules: ProofRules, Presigner: st, Putter: st})
	require.NoError(t, w.SelectFile(png("first.png")))

	err := w.SelectFile(FromBytes("x.exe", "application/x-msdownload", []byte("MZ")))
	require.Error(t, err)

	f, ok := w.File()
	require.True(t, ok)
	assert.Equal(t, "first.png", f.Name)
	assert.Equal(t, FileSelected, w.Phase())
}

func TestWizardSubmitWithoutFileSendsNothing(t *testing.T) {
	st := &fakeStorage{}
	w := NewWizard(Config{Rules: ProofRules, Presigner: st, Putter: st})

	called := false
	_, err := w.Submit(context.Background(), func(context.Context, string) error {
		called = true
		return nil
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.False(t, called)
	assert.Empty(t, st.presigned)
	assert.Empty(t, st.put)
}

func TestWizardFailureStages(t *testing.T) {
	t.Run("requesting-url", func(t *testing.T) {
		st := &fakeStorage{failSign: errors.New("presign denied")}
		w := NewWizard(Config{Rules: ProofRules, Presigner: st, Putter: st})
		require.NoError(t, w.SelectFile(png("proof.png")))

		_, err := w.Submit(context.Background(), func(context.Context, string) error { return nil })
		var f *Failure
		require.ErrorAs(t, err, &f)
		assert.Equal(t, StageRequestingURL, f.Stage)
		assert.Empty(t, st.put)
		assert.Equal(t, Failed, w.Phase())
	})

	t.Run("uploading", func(t *testing.T) {
		st := &fakeStorage{failPut: map[string]error{"proof.png": errors.New("403")}}
		w := NewWizard(Config{Rules: ProofRules, Presigner: st, Putter: st})
		require.NoError(t, w.SelectFile(png("proof.png")))

		_, err := w.Submit(context.Background(), func(context.Context, string) error {
			t.Fatal("mutation must not run after a failed upload")
			return nil
		})
		var f *Failure
		require.ErrorAs(t, err, &f)
		assert.Equal(t, StageUploading, f.Stage)
		assert.Equal(t, "Failed to upload proof.png: 403", f.Message)
	})

	t.Run("mutating keeps the file for a resubmit", func(t *testing.T) {
		st := &fakeStorage{}
		w := NewWizard(Config{Rules: ProofRules, Presigner: st, Putter: st, Action: "settle wallet"})
		require.NoError(t, w.SelectFile(png("proof.png")))

		_, err := w.Submit(context.Background(), func(context.Context, string) error {
			return errors.New("insufficient balance")
		})
		var f *Failure
		require.ErrorAs(t, err, &f)
		assert.Equal(t, StageMutating, f.Stage)
		assert.Equal(t, "Failed to settle wallet: insufficient balance", f.Message)
		assert.Equal(t, w.Failure(), f)

		_, ok := w.File()
		assert.True(t, ok)

		_, err = w.Submit(context.Background(), func(context.Context, string) error { return nil })
		require.NoError(t, err)
		assert.Len(t, st.put, 2)
	})
}

func TestWizardCancelledContextAborts(t *testing.T) {
	st := &fakeStorage{}
	w := NewWizard(Config{Rules: ProofRules, Presigner: st, Putter: st})
	require.NoError(t, w.SelectFile(png("proof.png")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := w.Submit(ctx, func(context.Context, string) error { return nil })

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, st.presigned)
}

func TestWizardRejectsConcurrentSubmit(t *testing.T) {
	st := &fakeStorage{}
	w := NewWizard(Config{Rules: ProofRules, Presigner: st, Putter: st})
	require.NoError(t, w.SelectFile(png("proof.png")))

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := w.Submit(context.Background(), func(context.Context, string) error {
			close(entered)
			<-release
			return nil
		})
		done <- err
	}()

	<-entered
	_, err := w.Submit(context.Background(), func(context.Context, string) error { return nil })
	assert.ErrorIs(t, err, ErrBusy)
	close(release)
	require.NoError(t, <-done)
}

func TestBatchStopsAtFirstFailure(t *testing.T) {
	st := &fakeStorage{failPut: map[string]error{"B.png": errors.New("connection reset")}}
	var progress []string
	b := Batch{
		Rules:      AttachmentRules,
		Category:   TicketAttachment,
		Presigner:  st,
		Putter:     st,
		OnProgress: func(s string) { progress = append(progress, s) },
	}

	urls, err := b.UploadAll(context.Background(), []File{png("A.png"), png("B.png"), png("C.png")})

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "B.png", f.File)
	assert.Equal(t, StageUploading, f.Stage)
	assert.Equal(t, []string{"A.png", "B.png"}, st.put)
	assert.NotContains(t, st.presigned, "C.png")
	assert.Equal(t, []string{"https://cdn.test/ticket_attachment/A.png"}, urls)
	assert.Equal(t, []string{"Uploading 1/3: A.png", "Uploading 2/3: B.png"}, progress)
}

func TestBatchKeepsSelectionOrder(t *testing.T) {
	st := &fakeStorage{}
	b := Batch{Rules: AttachmentRules, Category: TicketAttachment, Presigner: st, Putter: st}

	urls, err := b.UploadAll(context.Background(), []File{png("3.png"), png("1.png"), png("2.png")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://cdn.test/ticket_attachment/3.png",
		"https://cdn.test/ticket_attachment/1.png",
		"https://cdn.test/ticket_attachment/2.png",
	}, urls)
}

func TestBatchValidatesBeforeSending(t *testing.T) {
	st := &fakeStorage{}
	b := Batch{Rules: AttachmentRules, Presigner: st, Putter: st}

	_, err := b.UploadAll(context.Background(), []File{png("ok.png"), FromBytes("bad.zip", "application/zip", []byte("PK"))})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "bad.zip", ve.File)
	assert.Empty(t, st.presigned)
}

func TestHTTPPutterSendsRawBody(t *testing.T) {
	var gotType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotType = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := &HTTPPutter{Client: srv.Client()}
	require.NoError(t, p.Put(context.Background(), srv.URL+"/obj", FromBytes("a.pdf", "application/pdf", []byte("%PDF-1.7"))))
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, "%PDF-1.7", gotBody)
}

func TestHTTPPutterReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusForbidden)
	}))
	defer srv.Close()

	p := &HTTPPutter{Client: srv.Client()}
	err := p.Put(context.Background(), srv.URL, png("a.png"))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "403"))
}
