package orders

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hitesh-Kamero/next-super-admin-sub000/internal/kameroapi"
)

func TestPresentPaidOrder(t *testing.T) {
	var o kameroapi.Order
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "ord_1", "userId": "u1", "userEmail": "a@kamero.in",
		"amount": 2499, "currency": "INR", "status": "PAID", "gateway": "razorpay",
		"items": [{"description": "Pro plan", "quantity": 1, "amount": 2499}],
		"paidAt": "2026-09-01T10:00:00Z", "createdAt": "2026-09-01T09:58:00Z"
	}`), &o))

	d := Present(o)
	assert.Equal(t, "success", d.Tone)
	assert.Equal(t, "₹2,499.00", d.Total)
	assert.Equal(t, "a@kamero.in", d.Customer)
	assert.Equal(t, "razorpay", d.Gateway)
	assert.Equal(t, "-", d.GatewayRef)
	assert.Equal(t, "01 Sep 2026 10:00", d.Paid)
	require.Len(t, d.Lines, 1)
	assert.Equal(t, "₹2,499.00", d.Lines[0].Amount)
}

func TestPresentMissingOptionals(t *testing.T) {
	d := Present(kameroapi.Order{ID: "ord_2", UserID: "u2", Status: "pending", Currency: "INR"})
	assert.Equal(t, "u2", d.Customer)
	assert.Equal(t, "-", d.Paid)
	assert.Equal(t, "warning", d.Tone)
	assert.Equal(t, "muted", Tone("ON_HOLD"))
}
