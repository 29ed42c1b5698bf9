package kameroapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/opt"
)

type Plan struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Interval string  `json:"interval"`
}

type Addon struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

type Subscription struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	PlanID    string               `json:"planId"`
	PlanName  string               `json:"planName"`
	Status    string               `json:"status"`
	Addons    []SubscribedAddon    `json:"addons"`
	StartsAt  time.Time            `json:"startsAt"`
	EndsAt    opt.Value[time.Time] `json:"endsAt"`
	ProofURL  opt.Value[string]    `json:"proofUrl"`
	CreatedBy opt.Value[string]    `json:"createdBy"`
}

type SubscribedAddon struct {
	AddonID  string `json:"addonId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type SubscriptionCreate struct {
	UserID     string  `json:"userId"`
	PlanID     string  `json:"planId"`
	AmountPaid float64 `json:"amountPaid"`
	Currency   string  `json:"currency"`
	PaymentRef string  `json:"paymentRef,omitempty"`
	ProofURL   string  `json:"proofUrl"`
	Reason     string  `json:"reason,omitempty"`
}

type AddonPurchase struct {
	AddonID    string  `json:"addonId"`
	Quantity   int     `json:"quantity"`
	AmountPaid float64 `json:"amountPaid"`
	ProofURL   string  `json:"proofUrl"`
	Reason     string  `json:"reason,omitempty"`
}

type SubscriptionUpgrade struct {
	PlanID     string  `json:"planId"`
	AmountPaid float64 `json:"amountPaid"`
	ProofURL   string  `json:"proofUrl"`
	Reason     string  `json:"reason,omitempty"`
}

type SubscriptionResult struct {
	Result
	Subscription Subscription `json:"subscription"`
}

func (a *API) ListPlans(ctx context.Context) ([]Plan, error) {
	var out struct {
		Items []Plan `json:"items"`
	}
	err := a.get(ctx, "subscriptions.plans", "/admin/subscriptions/plans", nil, &out)
	return out.Items, err
}

func (a *API) ListAddons(ctx context.Context) ([]Addon, error) {
	var out struct {
		Items []Addon `json:"items"`
	}
	err := a.get(ctx, "subscriptions.addons", "/admin/subscriptions/addons", nil, &out)
	return out.Items, err
}

func (a *API) ListUserSubscriptions(ctx context.Context, userID string) ([]Subscription, error) {
	var out struct {
		Items []Subscription `json:"items"`
	}
	err := a.get(ctx, "subscriptions.by_user", "/admin/subscriptions", url.Values{"userId": {userID}}, &out)
	return out.Items, err
}

func (a *API) CreateSubscription(ctx context.Context, in SubscriptionCreate) (SubscriptionResult, error) {
	var out SubscriptionResult
	err := a.send(ctx, "subscriptions.create", http.MethodPost, "/admin/subscriptions", in, &out)
	return out, err
}

func (a *API) AddSubscriptionAddon(ctx context.Context, subscriptionID string, in AddonPurchase) (SubscriptionResult, error) {
	var out SubscriptionResult
	err := a.send(ctx, "subscriptions.addon", http.MethodPost, "/admin/subscriptions/"+escape(subscriptionID)+"/addons", in, &out)
	return out, err
}

func (a *API) UpgradeSubscription(ctx context.Context, subscriptionID string, in SubscriptionUpgrade) (SubscriptionResult, error) {
	var out SubscriptionResult
	err := a.send(ctx, "subscriptions.upgrade", http.MethodPost, "/admin/subscriptions/"+escape(subscriptionID)+"/upgrade", in, &out)
	return out, err
}
