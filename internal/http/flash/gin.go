package flash

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/pkg/view"
)

const ctxKey = "flash"

// Middleware moves the flash cookie into the request context and clears it,
// so each toast shows once. A cookie that fails verification is dropped too.
func (c *Codec) Middleware() gin.HandlerFunc {
	return func(g *gin.Context) {
		if v, err := g.Cookie(c.CookieName); err == nil && v != "" {
			if f, err := c.Decode(v); err == nil {
				g.Set(ctxKey, f)
			}
			c.setCookie(g, "", -1)
		}
		g.Next()
	}
}

// Set queues f for the next page the browser loads.
func (c *Codec) Set(g *gin.Context, f view.Flash) {
	val, err := c.Encode(f)
	if err != nil {
		return
	}
	c.setCookie(g, val, c.CookieMaxAge())
}

func (c *Codec) setCookie(g *gin.Context, val string, maxAge int) {
	g.SetSameSite(http.SameSiteLaxMode)
	g.SetCookie(c.CookieName, val, maxAge, "/", "", c.Secure, true)
}

// From returns the toast read by Middleware, if any.
func From(g *gin.Context) *view.Flash {
	if v, ok := g.Get(ctxKey); ok {
		if f, ok := v.(*view.Flash); ok {
			return f
		}
	}
	return nil
}
