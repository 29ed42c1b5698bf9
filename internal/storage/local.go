package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var ErrBadSignature = errors.New("upload signature invalid or expired")

// Local writes uploads under BaseDir and serves them from URLPrefix. Its
// presigned URLs point at an upload endpoint (UploadBase) that must call
// Accept.
type Local struct {
	BaseDir    string
	URLPrefix  string
	UploadBase string
	Secret     []byte

	now func() time.Time
}

func NewLocal(baseDir, urlPrefix, uploadBase string, secret []byte) *Local {
	return &Local{
		BaseDir:    baseDir,
		URLPrefix:  urlPrefix,
		UploadBase: strings.TrimRight(uploadBase, "/"),
		Secret:     secret,
		now:        time.Now,
	}
}

func (l *Local) Presign(ctx context.Context, in PresignInput) (Presigned, error) {
	_ = ctx

	key := objectKey("", in.Category, in.Filename)
	expiresAt := l.now().Add(expiry(in.Expires))
	exp := strconv.FormatInt(expiresAt.Unix(), 10)

	q := url.Values{}
	q.Set("exp", exp)
	q.Set("ct", in.ContentType)
	q.Set("sig", l.sign(key, in.ContentType, exp))

	return Presigned{
		Key:       key,
		UploadURL: l.UploadBase + "/" + key + "?" + q.Encode(),
		FileURL:   strings.TrimRight(l.URLPrefix, "/") + "/" + key,
		ExpiresAt: expiresAt,
	}, nil
}

// Accept stores r under key after checking the presigned query and the
// request's content type.
func (l *Local) Accept(ctx context.Context, key string, q url.Values, contentType string, r io.Reader) error {
	_ = ctx

	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	exp := q.Get("exp")
	want := l.sign(key, q.Get("ct"), exp)
	if !hmac.Equal([]byte(want), []byte(q.Get("sig"))) {
		return ErrBadSignature
	}
	if secs, err := strconv.ParseInt(exp, 10, 64); err != nil || l.now().Unix() > secs {
		return ErrBadSignature
	}
	if q.Get("ct") != contentType {
		return fmt.Errorf("%w: content type %q does not match", ErrBadSignature, contentType)
	}

	dstPath := filepath.Join(l.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return err
	}
	return nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	_ = ctx
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	return os.Remove(filepath.Join(l.BaseDir, filepath.FromSlash(key)))
}

func (l *Local) sign(key, contentType, exp string) string {
	m := hmac.New(sha256.New, l.Secret)
	m.Write([]byte(key))
	m.Write([]byte("."))
	m.Write([]byte(contentType))
	m.Write([]byte("."))
	m.Write([]byte(exp))
	return hex.EncodeToString(m.Sum(nil))
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
