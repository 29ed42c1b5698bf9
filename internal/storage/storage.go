// Package storage issues presigned upload URLs. The dashboard never stores
// files itself; the local mock backend uses this to answer presign requests
// the way the real backend does.
package storage

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultExpiry = 15 * time.Minute

type PresignInput struct {
	Filename    string
	ContentType string
	// Category becomes the first key segment, e.g. "wallet_proof".
	Category string
	Expires  time.Duration
}

type Presigned struct {
	Key       string
	UploadURL string
	FileURL   string
	ExpiresAt time.Time
}

type Presigner interface {
	Presign(ctx context.Context, in PresignInput) (Presigned, error)
	Delete(ctx context.Context, key string) error
}

func objectKey(prefix, category, filename string) string {
	parts := make([]string, 0, 3)
	if p := strings.Trim(prefix, "/"); p != "" {
		parts = append(parts, p)
	}
	if c := safeSegment(category); c != "" {
		parts = append(parts, c)
	}
	parts = append(parts, uuid.NewString()+safeExt(filename))
	return strings.Join(parts, "/")
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif", ".heic", ".pdf", ".mp4", ".mov", ".webm":
		return ext
	default:
		return ""
	}
}

func safeSegment(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func expiry(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultExpiry
	}
	return d
}
