package upload

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
)

type Phase string

const (
	Idle                Phase = "idle"
	FileSelected        Phase = "file_selected"
	RequestingUploadURL Phase = "requesting_upload_url"
	Uploading           Phase = "uploading"
	UploadSucceeded     Phase = "upload_succeeded"
	MutationInFlight    Phase = "mutation_in_flight"
	Done                Phase = "done"
	Failed              Phase = "failed"
)

// Stage names the network step a Failure happened in.
type Stage string

const (
	StageRequestingURL Stage = "requesting-url"
	StageUploading     Stage = "uploading"
	StageMutating      Stage = "mutating"
)

var (
	ErrBusy      = errors.New("a submission is already in progress")
	ErrCompleted = errors.New("submission already completed")
)

// Failure reports which step of a submission failed. Message is meant for
// the operator as-is.
type Failure struct {
	Stage   Stage
	File    string
	Message string
	Err     error
}

func (f *Failure) Error() string { return f.Message }
func (f *Failure) Unwrap() error { return f.Err }

// HTTPStatusCode and UserMessage let error mapping treat a Failure as an
// upstream error whose message is already operator-facing.
func (f *Failure) HTTPStatusCode() int { return http.StatusBadGateway }
func (f *Failure) UserMessage() string { return f.Message }

type PresignRequest struct {
	FileName    string
	ContentType string
	UploadType  Category
}

type Presigned struct {
	UploadURL string
	FileURL   string
}

type Presigner interface {
	PresignUpload(ctx context.Context, req PresignRequest) (Presigned, error)
}

type PresignFunc func(ctx context.Context, req PresignRequest) (Presigned, error)

func (f PresignFunc) PresignUpload(ctx context.Context, req PresignRequest) (Presigned, error) {
	return f(ctx, req)
}

// Putter sends the raw file body to a presigned URL.
type Putter interface {
	Put(ctx context.Context, uploadURL string, f File) error
}

// MutateFunc runs the business mutation with the uploaded file's URL.
type MutateFunc func(ctx context.Context, fileURL string) error

type Config struct {
	Rules     Rules
	Category  Category
	Presigner Presigner
	Putter    Putter
	// Action completes "Failed to <Action>" for mutation failures,
	// e.g. "settle wallet".
	Action string
}

// Wizard drives one proof-upload-then-mutate dialog. It never retries; after
// a network failure the selected file is kept so the operator can resubmit.
type Wizard struct {
	cfg Config

	mu      sync.Mutex
	phase   Phase
	file    *File
	fileURL string
	failure *Failure
	busy    bool
}

func NewWizard(cfg Config) *Wizard {
	if cfg.Action == "" {
		cfg.Action = "save changes"
	}
	return &Wizard{cfg: cfg, phase: Idle}
}

func (w *Wizard) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Failure returns the last failure, or nil.
func (w *Wizard) Failure() *Failure {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failure
}

// File returns the selected file.
func (w *Wizard) File() (File, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return File{}, false
	}
	return *w.file, true
}

// FileURL is the uploaded object's URL once the upload succeeded.
func (w *Wizard) FileURL() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fileURL
}

// SelectFile validates and selects f. An invalid file leaves the wizard
// untouched.
func (w *Wizard) SelectFile(f File) error {
	if err := w.cfg.Rules.Check(f); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.busy {
		return ErrBusy
	}
	w.file = &f
	w.fileURL = ""
	w.failure = nil
	w.phase = FileSelected
	return nil
}

// Reset returns to Idle, e.g. when the dialog closes.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.file = nil
	w.fileURL = ""
	w.failure = nil
	w.phase = Idle
}

// Submit presigns, uploads and then calls mutate with the file URL, strictly
// in that order. The first failing step stops the sequence and is returned as
// a *Failure. Cancelling ctx aborts the in-flight step.
func (w *Wizard) Submit(ctx context.Context, mutate MutateFunc) (string, error) {
	w.mu.Lock()
	switch {
	case w.busy:
		w.mu.Unlock()
		return "", ErrBusy
	case w.phase == Done:
		w.mu.Unlock()
		return "", ErrCompleted
	case w.file == nil:
		w.mu.Unlock()
		return "", &ValidationError{Field: "file", Reason: "a file is required"}
	}
	f := *w.file
	w.busy = true
	w.failure = nil
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.busy = false
		w.mu.Unlock()
	}()

	s := steps{presigner: w.cfg.Presigner, putter: w.cfg.Putter, category: w.cfg.Category}

	w.setPhase(RequestingUploadURL)
	p, err := s.presign(ctx, f)
	if err != nil {
		return "", w.fail(err)
	}

	w.setPhase(Uploading)
	if err := s.put(ctx, p, f); err != nil {
		return "", w.fail(err)
	}

	w.mu.Lock()
	w.phase = UploadSucceeded
	w.fileURL = p.FileURL
	w.mu.Unlock()

	w.setPhase(MutationInFlight)
	if err := ctx.Err(); err != nil {
		return "", w.fail(w.mutationFailure(err))
	}
	if err := mutate(ctx, p.FileURL); err != nil {
		return "", w.fail(w.mutationFailure(err))
	}

	w.setPhase(Done)
	return p.FileURL, nil
}

func (w *Wizard) mutationFailure(err error) *Failure {
	return &Failure{
		Stage:   StageMutating,
		Message: fmt.Sprintf("Failed to %s: %s", w.cfg.Action, describe(err)),
		Err:     err,
	}
}

func (w *Wizard) setPhase(p Phase) {
	w.mu.Lock()
	w.phase = p
	w.mu.Unlock()
}

func (w *Wizard) fail(err error) error {
	var f *Failure
	if !errors.As(err, &f) {
		f = &Failure{Message: err.Error(), Err: err}
	}
	w.mu.Lock()
	w.phase = Failed
	w.failure = f
	w.mu.Unlock()
	return f
}

// steps holds the two storage-side steps shared by Wizard and Batch.
type steps struct {
	presigner Presigner
	putter    Putter
	category  Category
}

func (s steps) presign(ctx context.Context, f File) (Presigned, error) {
	if err := ctx.Err(); err != nil {
		return Presigned{}, s.failure(StageRequestingURL, f, err)
	}
	p, err := s.presigner.PresignUpload(ctx, PresignRequest{
		FileName:    f.Name,
		ContentType: f.DetectedType(),
		UploadType:  s.category,
	})
	if err != nil {
		return Presigned{}, s.failure(StageRequestingURL, f, err)
	}
	if p.UploadURL == "" || p.FileURL == "" {
		return Presigned{}, s.failure(StageRequestingURL, f, errors.New("upload URL missing from response"))
	}
	return p, nil
}

func (s steps) put(ctx context.Context, p Presigned, f File) error {
	if err := ctx.Err(); err != nil {
		return s.failure(StageUploading, f, err)
	}
	if err := s.putter.Put(ctx, p.UploadURL, f); err != nil {
		return s.failure(StageUploading, f, err)
	}
	return nil
}

func (s steps) failure(stage Stage, f File, err error) *Failure {
	var msg string
	switch stage {
	case StageRequestingURL:
		msg = fmt.Sprintf("Failed to prepare upload for %s: %s", f.Name, describe(err))
	default:
		msg = fmt.Sprintf("Failed to upload %s: %s", f.Name, describe(err))
	}
	return &Failure{Stage: stage, File: f.Name, Message: msg, Err: err}
}

// describe prefers an operator-facing message carried by err, such as the
// backend's own error text.
func describe(err error) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	return err.Error()
}
