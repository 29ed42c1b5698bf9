package proof

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/upload"
)

type putFunc func(ctx context.Context, uploadURL string, f upload.File) error

func (p putFunc) Put(ctx context.Context, uploadURL string, f upload.File) error {
	return p(ctx, uploadURL, f)
}

func TestRunMapsStageFailures(t *testing.T) {
	u := Uploader{
		Presigner: upload.PresignFunc(func(context.Context, upload.PresignRequest) (upload.Presigned, error) {
			return upload.Presigned{UploadURL: "https://s3/put", FileURL: "https://cdn/p.png"}, nil
		}),
		Putter: putFunc(func(context.Context, string, upload.File) error { return errors.New("connection reset") }),
	}
	f := upload.FromBytes("p.png", "image/png", []byte("img"))

	_, err := Run(context.Background(), u, upload.WalletProof, upload.ProofRules, "settle wallet", f, func(context.Context, string) error {
		t.Fatal("mutation must not run after a failed upload")
		return nil
	})
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Upstream, ae.Kind)
	assert.Equal(t, "Failed to upload p.png: connection reset", ae.PublicMsg)
}

func TestRunRejectsBadFileWithoutCalls(t *testing.T) {
	u := Uploader{
		Presigner: upload.PresignFunc(func(context.Context, upload.PresignRequest) (upload.Presigned, error) {
			t.Fatal("presign must not be called")
			return upload.Presigned{}, nil
		}),
	}
	f := upload.FromBytes("notes.txt", "text/plain", []byte("hello"))

	_, err := Run(context.Background(), u, upload.WalletProof, upload.ProofRules, "settle wallet", f, nil)
	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.Invalid, ae.Kind)
}
