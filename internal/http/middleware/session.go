package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/auth"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
)

const (
	ctxKeySession = "admin_session"
	ctxKeyAPI     = "kamero_api"
)

// SessionCfg holds configuration for session middleware.
type SessionCfg struct {
	Store      *auth.Store
	Client     *kameroapi.Client
	CookieName string
	Secure     bool
	Logger     *slog.Logger
}

// SessionMiddleware loads the operator session named by the cookie and binds
// a backend client to it. Requests without a live session pass through
// unauthenticated; RequireAuth decides what to do with them.
func SessionMiddleware(cfg SessionCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		sess, err := cfg.Store.Load(c.Request.Context(), id)
		switch {
		case errors.Is(err, auth.ErrNoSession):
			cfg.clearCookie(c)
		case err != nil:
			cfg.Logger.LogAttrs(c.Request.Context(), slog.LevelError, "session_load_failed",
				slog.String("request_id", GetRequestID(c)),
				slog.Any("err", err),
			)
		default:
			c.Set(ctxKeySession, sess)
			SetAPI(c, cfg.Client.As(cfg.Store.Tokens(sess)))
		}
		c.Next()
	}
}

// Start sets the session cookie after a successful sign-in.
func (cfg SessionCfg) Start(c *gin.Context, sess *auth.Session) {
	maxAge := int(sess.ExpiresAt.Sub(sess.CreatedAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, sess.ID, maxAge, "/", "", cfg.Secure, true)
}

// End deletes the current session, if any, and clears its cookie.
func (cfg SessionCfg) End(c *gin.Context) {
	if sess, ok := CurrentSession(c); ok && cfg.Store != nil {
		if err := cfg.Store.Delete(c.Request.Context(), sess.ID); err != nil && cfg.Logger != nil {
			cfg.Logger.LogAttrs(c.Request.Context(), slog.LevelWarn, "session_delete_failed",
				slog.String("request_id", GetRequestID(c)),
				slog.Any("err", err),
			)
		}
	}
	cfg.clearCookie(c)
}

func (cfg SessionCfg) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, "", -1, "/", "", cfg.Secure, true)
}

// CurrentSession returns the signed-in operator's session.
func CurrentSession(c *gin.Context) (*auth.Session, bool) {
	v, ok := c.Get(ctxKeySession)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*auth.Session)
	return sess, ok && sess != nil
}

// SetAPI binds the backend client later handlers call through.
func SetAPI(c *gin.Context, api *kameroapi.API) {
	c.Set(ctxKeyAPI, api)
}

// API returns the backend client bound to the current session.
func API(c *gin.Context) (*kameroapi.API, bool) {
	v, ok := c.Get(ctxKeyAPI)
	if !ok {
		return nil, false
	}
	api, ok := v.(*kameroapi.API)
	return api, ok && api != nil
}
