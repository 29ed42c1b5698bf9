package kameroapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/opt"
)

type Whitelabel struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Domain     opt.Value[string] `json:"domain"`
	OwnerEmail opt.Value[string] `json:"ownerEmail"`
	Wallet     opt.Value[Money]  `json:"wallet"`
	EventCount opt.Value[int]    `json:"eventCount"`
	UserCount  opt.Value[int]    `json:"userCount"`
	Active     opt.Value[bool]   `json:"active"`
	CreatedAt  time.Time         `json:"createdAt"`
}

type WalletOperation string

const (
	WalletCredit WalletOperation = "credit"
	WalletDebit  WalletOperation = "debit"
)

type WalletBalanceUpdate struct {
	Operation WalletOperation `json:"operation"`
	Amount    float64         `json:"amount"`
	Currency  string          `json:"currency"`
	ProofURL  string          `json:"proofUrl"`
	Reason    string          `json:"reason,omitempty"`
}

type WalletBalanceResult struct {
	Result
	Wallet Money `json:"wallet"`
}

func (a *API) ListWhitelabels(ctx context.Context, q url.Values) (Page[Whitelabel], error) {
	var out Page[Whitelabel]
	err := a.get(ctx, "whitelabels.list", "/admin/whitelabels", q, &out)
	return out, err
}

func (a *API) GetWhitelabel(ctx context.Context, id string) (Whitelabel, error) {
	var out Whitelabel
	err := a.get(ctx, "whitelabels.get", "/admin/whitelabels/"+escape(id), nil, &out)
	return out, err
}

func (a *API) UpdateWhitelabelWallet(ctx context.Context, id string, in WalletBalanceUpdate) (WalletBalanceResult, error) {
	var out WalletBalanceResult
	err := a.send(ctx, "whitelabels.wallet", http.MethodPost, "/admin/whitelabels/"+escape(id)+"/wallet", in, &out)
	return out, err
}
