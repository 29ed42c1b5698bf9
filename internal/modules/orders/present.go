// Package orders shapes backend orders for the list and detail screens.
package orders

import (
	"strings"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
)

type Line struct {
	Description string
	Quantity    int
	Amount      string
}

type Detail struct {
	ID         string
	Status     string
	Tone       string
	Total      string
	Customer   string
	EventID    string
	Whitelabel string
	Gateway    string
	GatewayRef string
	Created    string
	Paid       string
	Lines      []Line
}

// Tone maps an order status onto a badge colour.
func Tone(status string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "PAID", "COMPLETED":
		return "success"
	case "FAILED", "CANCELLED":
		return "danger"
	case "PENDING":
		return "warning"
	case "REFUNDED":
		return "info"
	default:
		return "muted"
	}
}

func Present(o kameroapi.Order) Detail {
	d := Detail{
		ID:         o.ID,
		Status:     o.Status,
		Tone:       Tone(o.Status),
		Total:      o.Total().String(),
		Customer:   o.UserEmail.Or(o.UserID),
		EventID:    o.EventID.Or("-"),
		Whitelabel: o.WhitelabelID.Or("-"),
		Gateway:    o.Gateway.Or("-"),
		GatewayRef: o.GatewayRef.Or("-"),
		Created:    o.CreatedAt.Format("02 Jan 2006 15:04"),
		Paid:       "-",
	}
	if at, ok := o.PaidAt.Get(); ok {
		d.Paid = at.Format("02 Jan 2006 15:04")
	}
	for _, it := range o.Items {
		d.Lines = append(d.Lines, Line{
			Description: it.Description,
			Quantity:    it.Quantity,
			Amount:      kameroapi.FormatAmount(it.Amount, o.Currency),
		})
	}
	return d
}
