package admin

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/http/render"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/modules/wallets"
)

type SellerWalletsHandler struct {
	*Base
}

type sellerWalletPage struct {
	Wallet      kameroapi.SellerWallet
	Orders      []kameroapi.SellerOrder
	Settlements []kameroapi.Settlement
	// IdempotencyKey is embedded in the settle form so a resubmitted form
	// settles once.
	IdempotencyKey string
}

const walletHistoryLimit = "20"

// Detail shows the wallet with its recent orders and settlements.
func (h *SellerWalletsHandler) Detail(c *gin.Context) {
	api, ok := h.api(c)
	if !ok {
		return
	}
	id := c.Param("id")
	page := sellerWalletPage{IdempotencyKey: uuid.NewString()}
	recent := url.Values{"limit": {walletHistoryLimit}, "sortBy": {"createdAt"}, "sortOrder": {"desc"}}

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() (err error) {
		page.Wallet, err = api.GetSellerWallet(ctx, id)
		return err
	})
	g.Go(func() error {
		p, err := api.ListSellerOrders(ctx, id, recent)
		page.Orders = p.Items
		return err
	})
	g.Go(func() error {
		p, err := api.ListSettlements(ctx, id, recent)
		page.Settlements = p.Items
		return err
	})
	if err := g.Wait(); err != nil {
		h.fetchFailed(c, err, "Failed to load seller wallet")
		return
	}
	render.Page(c, http.StatusOK, "seller-wallets/detail", page.Wallet.SellerName.Or(page.Wallet.SellerID), page)
}

// Settle pays out part of the wallet: proof upload first, then the
// settlement call.
func (h *SellerWalletsHandler) Settle(c *gin.Context) {
	id := c.Param("id")
	back := "/admin/seller-wallets/" + url.PathEscape(id)
	api, ok := h.api(c)
	if !ok {
		return
	}
	if err := parseForm(c); err != nil {
		h.failed(c, back, err)
		return
	}

	var in wallets.SettleInput
	if err := bind(c, &in); err != nil {
		h.failed(c, back, err)
		return
	}
	in.WalletID = id
	in.Proof = formFile(c, "proof")

	res, err := wallets.NewService(api, h.uploader(api)).Settle(c.Request.Context(), in)
	if err != nil {
		h.failed(c, back, err)
		return
	}
	h.done(c, back, res.Message)
}
