package admin

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/render"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/wallets"
)

type WhitelabelsHandler struct {
	*Base
}

type whitelabelPage struct {
	Whitelabel kameroapi.Whitelabel
	Operations []kameroapi.WalletOperation
}

func (h *WhitelabelsHandler) Detail(c *gin.Context) {
	api, ok := h.api(c)
	if !ok {
		return
	}
	wl, err := api.GetWhitelabel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fetchFailed(c, err, "Failed to load whitelabel")
		return
	}
	render.Page(c, http.StatusOK, "whitelabels/detail", wl.Name, whitelabelPage{
		Whitelabel: wl,
		Operations: []kameroapi.WalletOperation{kameroapi.WalletCredit, kameroapi.WalletDebit},
	})
}

// UpdateWallet credits or debits the whitelabel wallet after the proof is
// uploaded.
func (h *WhitelabelsHandler) UpdateWallet(c *gin.Context) {
	id := c.Param("id")
	back := "/admin/whitelabels/" + url.PathEscape(id)
	api, ok := h.api(c)
	if !ok {
		return
	}
	if err := parseForm(c); err != nil {
		h.failed(c, back, err)
		return
	}

	var in wallets.BalanceInput
	if err := bind(c, &in); err != nil {
		h.failed(c, back, err)
		return
	}
	in.WhitelabelID = id
	in.Proof = formFile(c, "proof")

	res, err := wallets.NewService(api, h.uploader(api)).UpdateBalance(c.Request.Context(), in)
	if err != nil {
		h.failed(c, back, err)
		return
	}
	h.done(c, back, res.Message)
}
