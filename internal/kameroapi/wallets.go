package kameroapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/opt"
)

type SellerWallet struct {
	ID             string               `json:"id"`
	SellerID       string               `json:"sellerId"`
	SellerName     opt.Value[string]    `json:"sellerName"`
	SellerEmail    opt.Value[string]    `json:"sellerEmail"`
	Balance        float64              `json:"balance"`
	PendingBalance opt.Value[float64]   `json:"pendingBalance"`
	Currency       string               `json:"currency"`
	LastSettledAt  opt.Value[time.Time] `json:"lastSettledAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

func (w SellerWallet) Available() Money { return Money{Amount: w.Balance, Currency: w.Currency} }

type SellerOrder struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"orderId"`
	Amount     float64   `json:"amount"`
	Commission float64   `json:"commission"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Settlement struct {
	ID         string            `json:"id"`
	Amount     float64           `json:"amount"`
	Currency   string            `json:"currency"`
	ProofURL   opt.Value[string] `json:"proofUrl"`
	PaymentRef opt.Value[string] `json:"paymentRef"`
	Notes      opt.Value[string] `json:"notes"`
	SettledBy  opt.Value[string] `json:"settledBy"`
	CreatedAt  time.Time         `json:"createdAt"`
}

type SettlementRequest struct {
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	ProofURL       string  `json:"proofUrl"`
	PaymentRef     string  `json:"paymentRef,omitempty"`
	Notes          string  `json:"notes,omitempty"`
	IdempotencyKey string  `json:"idempotencyKey"`
}

type SettlementResult struct {
	Result
	Settlement Settlement `json:"settlement"`
}

func (a *API) ListSellerWallets(ctx context.Context, q url.Values) (Page[SellerWallet], error) {
	var out Page[SellerWallet]
	err := a.get(ctx, "wallets.list", "/admin/seller-wallets", q, &out)
	return out, err
}

func (a *API) GetSellerWallet(ctx context.Context, id string) (SellerWallet, error) {
	var out SellerWallet
	err := a.get(ctx, "wallets.get", "/admin/seller-wallets/"+escape(id), nil, &out)
	return out, err
}

func (a *API) ListSellerOrders(ctx context.Context, walletID string, q url.Values) (Page[SellerOrder], error) {
	var out Page[SellerOrder]
	err := a.get(ctx, "wallets.orders", "/admin/seller-wallets/"+escape(walletID)+"/orders", q, &out)
	return out, err
}

func (a *API) ListSettlements(ctx context.Context, walletID string, q url.Values) (Page[Settlement], error) {
	var out Page[Settlement]
	err := a.get(ctx, "wallets.settlements", "/admin/seller-wallets/"+escape(walletID)+"/settlements", q, &out)
	return out, err
}

func (a *API) SettleSellerWallet(ctx context.Context, walletID string, in SettlementRequest) (SettlementResult, error) {
	var out SettlementResult
	err := a.send(ctx, "wallets.settle", http.MethodPost, "/admin/seller-wallets/"+escape(walletID)+"/settle", in, &out)
	return out, err
}
