package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/auth"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/flash"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/pkg/view"
)

func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}

// Fail records err for ErrorHandler and stops the chain.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

type ErrorHandlerCfg struct {
	Logger  *slog.Logger
	Flash   *flash.Codec
	Session SessionCfg
	// Page renders the HTML error page.
	Page func(c *gin.Context, status int, msg string)
}

// ErrorHandler turns the last error pushed with c.Error into a response. A
// rejected sign-in sends browsers back to the login form.
func ErrorHandler(cfg ErrorHandlerCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperr.HTTPStatus(err)
		publicMsg := apperr.PublicMessage(err)
		if errors.Is(err, auth.ErrSessionExpired) {
			status, publicMsg = http.StatusUnauthorized, auth.ErrSessionExpired.Error()
		}
		rid := GetRequestID(c)

		level := slog.LevelError
		if status < 500 {
			level = slog.LevelWarn
		}
		cfg.Logger.LogAttrs(c.Request.Context(), level, "request_failed",
			slog.String("request_id", rid),
			slog.Int("status", status),
			slog.Any("err", err),
		)

		if WantsJSON(c) {
			payload := gin.H{"error": publicMsg, "request_id": rid}
			if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
				payload["fields"] = ae.Fields
			}
			c.AbortWithStatusJSON(status, payload)
			return
		}

		if status == http.StatusUnauthorized {
			cfg.Session.End(c)
			cfg.Flash.Set(c, view.Flash{Kind: view.FlashWarning, Message: "Your sign-in expired. Please log in again."})
			redirectToLogin(c)
			return
		}

		c.Abort()
		if cfg.Page != nil {
			cfg.Page(c, status, publicMsg)
			return
		}
		c.String(status, publicMsg)
	}
}
