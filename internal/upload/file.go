// Package upload coordinates "presign, PUT, then mutate" flows: a proof or
// attachment is pushed straight to object storage through a presigned URL and
// the resulting file URL is handed to a business mutation.
package upload

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// Kind is the coarse file family a screen accepts.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindPDF   Kind = "pdf"
)

// Category is the upload type declared to the presign endpoint.
type Category string

const (
	PaymentProof      Category = "payment_proof"
	SubscriptionProof Category = "subscription_proof"
	WalletProof       Category = "wallet_proof"
	TicketAttachment  Category = "ticket_attachment"
)

const (
	MB int64 = 1 << 20
	GB int64 = 1 << 30
)

// Rules maps each accepted kind to its size ceiling in bytes.
type Rules map[Kind]int64

var (
	ProofRules      = Rules{KindImage: 10 * MB, KindPDF: 10 * MB}
	AttachmentRules = Rules{KindImage: 100 * MB, KindPDF: 100 * MB, KindVideo: 1 * GB}
)

// File is a file picked by the operator. Open may be called more than once;
// each call must return the content from the start.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// FromMultipart adapts a multipart form file.
func FromMultipart(fh *multipart.FileHeader) File {
	return File{
		Name:        filepath.Base(fh.Filename),
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// FromBytes wraps in-memory content.
func FromBytes(name, contentType string, b []byte) File {
	return File{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(b)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(b)), nil
		},
	}
}

// DetectedType returns the declared content type, or one derived from the
// file extension when the browser sent nothing useful.
func (f File) DetectedType() string {
	ct := strings.TrimSpace(f.ContentType)
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(f.Name))); byExt != "" {
		return byExt
	}
	if ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func kindOf(contentType string) (Kind, bool) {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = contentType
	}
	switch {
	case strings.HasPrefix(mt, "image/"):
		return KindImage, true
	case strings.HasPrefix(mt, "video/"):
		return KindVideo, true
	case mt == "application/pdf":
		return KindPDF, true
	}
	return "", false
}

// ValidationError is a client-side rejection; no request was sent.
type ValidationError struct {
	Field  string
	File   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Reason)
	}
	return e.Reason
}

// Check validates a file against the rules.
func (r Rules) Check(f File) error {
	if f.Open == nil || strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "file", Reason: "a file is required"}
	}
	if f.Size <= 0 {
		return &ValidationError{Field: "file", File: f.Name, Reason: "file is empty"}
	}
	kind, ok := kindOf(f.DetectedType())
	if !ok {
		return &ValidationError{Field: "file", File: f.Name, Reason: "unsupported file type, allowed: " + r.allowed()}
	}
	limit, ok := r[kind]
	if !ok {
		return &ValidationError{Field: "file", File: f.Name, Reason: fmt.Sprintf("%s files are not accepted here, allowed: %s", kind, r.allowed())}
	}
	if f.Size > limit {
		return &ValidationError{Field: "file", File: f.Name, Reason: fmt.Sprintf("file is larger than %s", humanSize(limit))}
	}
	return nil
}

func (r Rules) allowed() string {
	var out []string
	for _, k := range []Kind{KindImage, KindVideo, KindPDF} {
		if _, ok := r[k]; ok {
			out = append(out, string(k))
		}
	}
	return strings.Join(out, ", ")
}

func humanSize(n int64) string {
	switch {
	case n >= GB && n%GB == 0:
		return fmt.Sprintf("%dGB", n/GB)
	case n >= MB && n%MB == 0:
		return fmt.Sprintf("%dMB", n/MB)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
