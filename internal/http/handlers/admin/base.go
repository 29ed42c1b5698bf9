// Package admin holds the dashboard screens. Read handlers render pages;
// mutation handlers always finish with a flash and a redirect so the browser
// reloads fresh data from the backend.
package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/auth"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/flash"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/middleware"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/render"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/validation"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/form"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/proof"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/upload"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/pkg/view"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		form.RegisterRules(v)
	}
}

// Base is embedded by every screen handler.
type Base struct {
	Flash  *flash.Codec
	Putter upload.Putter
	Logger *slog.Logger
}

// api returns the session's backend client. RequireAuth guarantees one; the
// error path only guards against miswired routes.
func (b *Base) api(c *gin.Context) (*kameroapi.API, bool) {
	api, ok := middleware.API(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Please sign in to continue."))
	}
	return api, ok
}

func (b *Base) uploader(api *kameroapi.API) proof.Uploader {
	return proof.Uploader{Presigner: api.Presigner(), Putter: b.Putter}
}

// fetchFailed reports a failed read. Missing entities render as 404 pages.
func (b *Base) fetchFailed(c *gin.Context, err error, fallback string) {
	middleware.Fail(c, apperr.FromAPI(err, fallback))
}

// done redirects back with a success toast.
func (b *Base) done(c *gin.Context, location, msg string) {
	render.RedirectWithFlash(c, b.Flash, location, view.Success(msg))
}

// failed redirects back to the form with the error as a toast. Field errors
// travel along so the form can mark them.
func (b *Base) failed(c *gin.Context, location string, err error) {
	ae, ok := apperr.As(err)
	if !ok {
		ae = apperr.Wrap(err)
	}
	level := slog.LevelWarn
	if ae.Kind == apperr.Internal || ae.Kind == apperr.Upstream {
		level = slog.LevelError
	}
	b.Logger.LogAttrs(c.Request.Context(), level, "mutation_failed",
		slog.String("request_id", middleware.GetRequestID(c)),
		slog.String("path", c.Request.URL.Path),
		slog.Any("err", err),
	)
	if ae.Kind == apperr.Unauthorized || errors.Is(err, auth.ErrSessionExpired) {
		middleware.Fail(c, ae)
		return
	}
	render.RedirectWithFlash(c, b.Flash, location, view.Error(apperr.PublicMessage(ae), ae.Fields))
}

// bind reads the submitted form into dst. Rule violations come back as an
// Invalid error keyed by form field.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBind(dst); err != nil {
		return validation.Invalid(err, dst)
	}
	return nil
}

// formFile returns the uploaded file named field, or nil when none was
// attached.
func formFile(c *gin.Context, field string) *upload.File {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil || fh.Size == 0 {
		return nil
	}
	f := upload.FromMultipart(fh)
	return &f
}

func formFiles(c *gin.Context, field string) []upload.File {
	mf, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	var out []upload.File
	for _, fh := range mf.File[field] {
		if fh != nil && fh.Size > 0 {
			out = append(out, upload.FromMultipart(fh))
		}
	}
	return out
}

// parseForm reads the body, multipart or not, bounded by the largest
// attachment ceiling.
func parseForm(c *gin.Context) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, upload.GB+upload.MB)
	err := c.Request.ParseMultipartForm(32 << 20)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return apperr.InvalidErr("The upload could not be read or is too large.", nil)
	}
	return nil
}
