// Package proof runs the "attach proof, then mutate" step every payment
// screen shares.
package proof

import (
	"context"
	"errors"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/upload"
)

// Uploader is the storage side of a wizard.
type Uploader struct {
	Presigner upload.Presigner
	Putter    upload.Putter
}

// Run uploads file and then calls mutate with its URL. Failures come back as
// apperr values ready for a toast.
func Run(ctx context.Context, u Uploader, category upload.Category, rules upload.Rules, action string, file upload.File, mutate upload.MutateFunc) (string, error) {
	w := upload.NewWizard(upload.Config{
		Rules:     rules,
		Category:  category,
		Presigner: u.Presigner,
		Putter:    u.Putter,
		Action:    action,
	})
	if err := w.SelectFile(file); err != nil {
		return "", toAppErr(err, action)
	}
	fileURL, err := w.Submit(ctx, mutate)
	if err != nil {
		return "", toAppErr(err, action)
	}
	return fileURL, nil
}

func toAppErr(err error, action string) error {
	var ve *upload.ValidationError
	if errors.As(err, &ve) {
		return apperr.InvalidErr(ve.Error(), map[string]string{"proof": ve.Error()})
	}
	return apperr.FromAPI(err, "Failed to "+action)
}
