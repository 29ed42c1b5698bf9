package admin

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/render"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/subscriptions"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/apperr"
)

type SubscriptionsHandler struct {
	*Base
}

type subscriptionsPage struct {
	Query         string
	Message       string
	User          *kameroapi.User
	Subscriptions []kameroapi.Subscription
	Plans         []kameroapi.Plan
	Addons        []kameroapi.Addon
}

// Page finds the user named by q (or userId) and lists their subscriptions
// next to the create, addon and upgrade forms.
func (h *SubscriptionsHandler) Page(c *gin.Context) {
	api, ok := h.api(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	page := subscriptionsPage{Query: strings.TrimSpace(c.Query("q"))}

	var (
		u   kameroapi.User
		err error
	)
	switch id := strings.TrimSpace(c.Query("userId")); {
	case id != "":
		u, err = api.GetUser(ctx, id)
	case page.Query != "":
		u, err = api.FindUser(ctx, page.Query)
	default:
		render.Page(c, http.StatusOK, "subscriptions", "Subscriptions", page)
		return
	}
	if kameroapi.IsNotFound(err) {
		page.Message = kameroapi.Message(err, "No user matches "+page.Query+".")
		render.Page(c, http.StatusOK, "subscriptions", "Subscriptions", page)
		return
	}
	if err != nil {
		h.fetchFailed(c, err, "Failed to load user")
		return
	}
	page.User = &u

	if page.Subscriptions, err = api.ListUserSubscriptions(ctx, u.ID); err != nil {
		h.fetchFailed(c, err, "Failed to load subscriptions")
		return
	}
	if page.Plans, err = api.ListPlans(ctx); err != nil {
		h.fetchFailed(c, err, "Failed to load plans")
		return
	}
	if page.Addons, err = api.ListAddons(ctx); err != nil {
		h.fetchFailed(c, err, "Failed to load addons")
		return
	}
	render.Page(c, http.StatusOK, "subscriptions", "Subscriptions", page)
}

func subscriptionsBack(userID string) string {
	if userID == "" {
		return "/admin/subscriptions"
	}
	return "/admin/subscriptions?userId=" + url.QueryEscape(userID)
}

func (h *SubscriptionsHandler) Create(c *gin.Context) {
	var in subscriptions.CreateInput
	h.mutate(c, &in, func(svc *subscriptions.Service) (string, error) {
		in.Proof = formFile(c, "proof")
		res, err := svc.Create(c.Request.Context(), in)
		return res.Message, err
	})
}

func (h *SubscriptionsHandler) AddAddon(c *gin.Context) {
	var in subscriptions.AddonInput
	h.mutate(c, &in, func(svc *subscriptions.Service) (string, error) {
		in.Proof = formFile(c, "proof")
		res, err := svc.AddAddon(c.Request.Context(), in)
		return res.Message, err
	})
}

func (h *SubscriptionsHandler) Upgrade(c *gin.Context) {
	var in subscriptions.UpgradeInput
	h.mutate(c, &in, func(svc *subscriptions.Service) (string, error) {
		in.Proof = formFile(c, "proof")
		res, err := svc.Upgrade(c.Request.Context(), in)
		return res.Message, err
	})
}

// mutate binds the form into dst and runs the action. Every subscription
// form carries the user id so the redirect lands back on that user.
func (h *SubscriptionsHandler) mutate(c *gin.Context, dst any, run func(*subscriptions.Service) (string, error)) {
	api, ok := h.api(c)
	if !ok {
		return
	}
	if err := parseForm(c); err != nil {
		h.failed(c, subscriptionsBack(c.Query("userId")), err)
		return
	}
	back := subscriptionsBack(c.PostForm("user_id"))
	if err := bind(c, dst); err != nil {
		h.failed(c, back, err)
		return
	}

	msg, err := run(subscriptions.NewService(api, h.uploader(api)))
	if err != nil {
		h.failed(c, back, apperr.FromAPI(err, "Failed to update subscription"))
		return
	}
	h.done(c, back, msg)
}
