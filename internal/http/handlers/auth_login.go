package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/auth"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/flash"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/middleware"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/render"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/validation"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/identity"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/pkg/view"
)

// SignInner verifies operator credentials; *identity.Client implements it.
type SignInner interface {
	SignIn(ctx context.Context, email, password string) (identity.Token, error)
}

type LoginObserver interface {
	ObserveLogin(result string)
}

type LoginHandler struct {
	Flash    *flash.Codec
	Identity SignInner
	Sessions *auth.Store
	Session  middleware.SessionCfg
	Limiter  *auth.LoginLimiter
	Metrics  LoginObserver
	Logger   *slog.Logger
}

type loginInput struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type loginPage struct {
	ReturnTo string
	Email    string
	Errors   validation.FieldErrors
	Message  string
}

func (h *LoginHandler) Get(c *gin.Context) {
	returnTo := normalizeReturnTo(c.Query("return_to"))
	if _, ok := middleware.CurrentSession(c); ok {
		c.Redirect(http.StatusFound, returnTo)
		return
	}
	render.Page(c, http.StatusOK, "login", "Sign in", loginPage{ReturnTo: returnTo})
}

func (h *LoginHandler) Post(c *gin.Context) {
	returnTo := normalizeReturnTo(c.PostForm("return_to"))

	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		render.Page(c, http.StatusBadRequest, "login", "Sign in", loginPage{
			ReturnTo: returnTo,
			Email:    in.Email,
			Errors:   validation.FromBindError(err, &in),
		})
		return
	}
	email := strings.TrimSpace(in.Email)

	fail := func(status int, result, msg string) {
		h.observe(result)
		render.Page(c, status, "login", "Sign in", loginPage{ReturnTo: returnTo, Email: email, Message: msg})
	}

	if h.Limiter != nil && !h.Limiter.Allow(c.ClientIP(), email) {
		fail(http.StatusTooManyRequests, "throttled", "Too many sign-in attempts. Please wait a minute and try again.")
		return
	}

	tok, err := h.Identity.SignIn(c.Request.Context(), email, in.Password)
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		fail(http.StatusUnauthorized, "invalid", "Email or password is incorrect.")
		return
	case errors.Is(err, identity.ErrUserDisabled):
		fail(http.StatusForbidden, "disabled", "This account has been disabled.")
		return
	case errors.Is(err, identity.ErrTooManyAttempts):
		fail(http.StatusTooManyRequests, "throttled", "Too many sign-in attempts. Please try again later.")
		return
	case err != nil:
		h.Logger.LogAttrs(c.Request.Context(), slog.LevelError, "sign_in_failed",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.Any("err", err),
		)
		fail(http.StatusBadGateway, "error", "Sign-in is unavailable right now. Please try again.")
		return
	}

	sess, err := h.Sessions.Create(c.Request.Context(), tok)
	if err != nil {
		h.observe("error")
		middleware.Fail(c, err)
		return
	}
	h.observe("success")
	h.Session.Start(c, sess)

	h.Logger.LogAttrs(c.Request.Context(), slog.LevelInfo, "operator_signed_in",
		slog.String("request_id", middleware.GetRequestID(c)),
		slog.String("operator", sess.UID),
		slog.Bool("owner", sess.IsOwner),
	)
	render.RedirectWithFlash(c, h.Flash, returnTo, view.Success("Signed in as "+sess.Email+"."))
}

func (h *LoginHandler) Logout(c *gin.Context) {
	h.Session.End(c)
	render.RedirectWithFlash(c, h.Flash, "/login", view.Flash{Kind: view.FlashInfo, Message: "Signed out."})
}

func (h *LoginHandler) observe(result string) {
	if h.Metrics != nil {
		h.Metrics.ObserveLogin(result)
	}
}

// normalizeReturnTo keeps redirects inside the dashboard: only relative
// /admin paths are accepted.
func normalizeReturnTo(s string) string {
	const home = "/admin"
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") || strings.Contains(s, "://") || strings.Contains(s, `\`) {
		return home
	}
	if s != home && !strings.HasPrefix(s, home+"/") && !strings.HasPrefix(s, home+"?") {
		return home
	}
	return s
}
