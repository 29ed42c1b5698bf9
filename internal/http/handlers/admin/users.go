package admin

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/render"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
)

type UsersHandler struct {
	*Base
}

type userSearchPage struct {
	Query   string
	Message string
}

type userDetailPage struct {
	User          kameroapi.User
	Subscriptions []kameroapi.Subscription
	SubsError     string
}

// Search looks a user up by id, email or phone and jumps to the match.
func (h *UsersHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		render.Page(c, http.StatusOK, "users/search", "Users", userSearchPage{})
		return
	}
	api, ok := h.api(c)
	if !ok {
		return
	}
	u, err := api.FindUser(c.Request.Context(), q)
	if kameroapi.IsNotFound(err) {
		render.Page(c, http.StatusOK, "users/search", "Users", userSearchPage{
			Query:   q,
			Message: kameroapi.Message(err, "No user matches "+q+"."),
		})
		return
	}
	if err != nil {
		h.fetchFailed(c, err, "Failed to search users")
		return
	}
	c.Redirect(http.StatusFound, "/admin/users/"+url.PathEscape(u.ID))
}

func (h *UsersHandler) Detail(c *gin.Context) {
	api, ok := h.api(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	u, err := api.GetUser(ctx, c.Param("id"))
	if err != nil {
		h.fetchFailed(c, err, "Failed to load user")
		return
	}

	page := userDetailPage{User: u}
	subs, err := api.ListUserSubscriptions(ctx, u.ID)
	if err != nil {
		page.SubsError = apperr.PublicMessage(apperr.FromAPI(err, "Failed to load subscriptions"))
	}
	page.Subscriptions = subs
	render.Page(c, http.StatusOK, "users/detail", u.Name.Or(u.ID), page)
}
