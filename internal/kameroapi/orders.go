package kameroapi

import (
	"context"
	"net/url"
	"time"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/shared/opt"
)

type Order struct {
	ID           string               `json:"id"`
	UserID       string               `json:"userId"`
	UserEmail    opt.Value[string]    `json:"userEmail"`
	EventID      opt.Value[string]    `json:"eventId"`
	WhitelabelID opt.Value[string]    `json:"whitelabelId"`
	Amount       float64              `json:"amount"`
	Currency     string               `json:"currency"`
	Status       string               `json:"status"`
	Gateway      opt.Value[string]    `json:"gateway"`
	GatewayRef   opt.Value[string]    `json:"gatewayRef"`
	Items        []OrderItem          `json:"items"`
	PaidAt       opt.Value[time.Time] `json:"paidAt"`
	CreatedAt    time.Time            `json:"createdAt"`
}

type OrderItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Amount      float64 `json:"amount"`
}

func (o Order) Total() Money { return Money{Amount: o.Amount, Currency: o.Currency} }

func (a *API) ListOrders(ctx context.Context, q url.Values) (Page[Order], error) {
	var out Page[Order]
	err := a.get(ctx, "orders.list", "/admin/orders", q, &out)
	return out, err
}

func (a *API) GetOrder(ctx context.Context, id string) (Order, error) {
	var out Order
	err := a.get(ctx, "orders.get", "/admin/orders/"+escape(id), nil, &out)
	return out, err
}
