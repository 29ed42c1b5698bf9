package kameroapi

import (
	"context"
	"net/http"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/upload"
)

type PresignUploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	UploadType  string `json:"uploadType"`
}

type PresignedUpload struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
}

// PresignUpload asks the backend for a one-shot PUT URL and the public URL
// the file will have afterwards.
func (a *API) PresignUpload(ctx context.Context, in PresignUploadRequest) (PresignedUpload, error) {
	var out PresignedUpload
	err := a.send(ctx, "uploads.presign", http.MethodPost, "/admin/uploads/presign", in, &out)
	return out, err
}

// Presigner adapts the presign endpoint to the upload wizard.
func (a *API) Presigner() upload.Presigner {
	return upload.PresignFunc(func(ctx context.Context, req upload.PresignRequest) (upload.Presigned, error) {
		out, err := a.PresignUpload(ctx, PresignUploadRequest{
			FileName:    req.FileName,
			ContentType: req.ContentType,
			UploadType:  string(req.UploadType),
		})
		if err != nil {
			return upload.Presigned{}, err
		}
		return upload.Presigned{UploadURL: out.UploadURL, FileURL: out.FileURL}, nil
	})
}
