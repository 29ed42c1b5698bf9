package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/flash"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/pkg/view"
)

// RequireAuth: without a session
// - SSR: flash + redirect to /login?return_to=...
// - JSON: 401
func RequireAuth(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); ok {
			c.Next()
			return
		}

		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"request_id": GetRequestID(c),
			})
			return
		}

		flashCodec.Set(c, view.Flash{Kind: view.FlashWarning, Message: "Please sign in to continue."})
		redirectToLogin(c)
	}
}

// RequireOwner admits only operators whose token carries the isOwner claim.
// It must run after RequireAuth. The backend enforces the same rule; this
// only keeps the screens out of reach.
func RequireOwner(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if ok && sess.IsOwner {
			c.Next()
			return
		}

		if WantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "owner access required",
				"request_id": GetRequestID(c),
			})
			return
		}

		flashCodec.Set(c, view.Flash{Kind: view.FlashError, Message: "Only owners can open reports."})
		c.Redirect(http.StatusFound, "/admin")
		c.Abort()
	}
}

func redirectToLogin(c *gin.Context) {
	returnTo := c.Request.URL.RequestURI()
	if c.Request.Method != http.MethodGet {
		returnTo = c.GetHeader("Referer")
		if u, err := url.Parse(returnTo); err == nil {
			returnTo = u.RequestURI()
		}
	}
	c.Redirect(http.StatusFound, "/login?return_to="+url.QueryEscape(returnTo))
	c.Abort()
}
