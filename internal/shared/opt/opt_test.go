package opt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Phone  Value[string] `json:"phone"`
	Credit Value[int]    `json:"credit"`
	Plan   Value[string] `json:"plan"`
}

func TestDecodePresentNullAndMissing(t *testing.T) {
	var d doc
	require.NoError(t, json.Unmarshal([]byte(`{"phone":"+911234","credit":null}`), &d))

	phone, ok := d.Phone.Get()
	assert.True(t, ok)
	assert.Equal(t, "+911234", phone)
	assert.False(t, d.Credit.Present())
	assert.False(t, d.Plan.Present())
	assert.Equal(t, "free", d.Plan.Or("free"))
}

func TestZeroValueIsPresent(t *testing.T) {
	var d doc
	require.NoError(t, json.Unmarshal([]byte(`{"credit":0}`), &d))
	assert.True(t, d.Credit.Present())
	assert.Equal(t, 0, d.Credit.Or(-1))
}

func TestMatch(t *testing.T) {
	label := func(v Value[int]) string {
		return Match(v, func(n int) string { return "has" }, func() string { return "none" })
	}
	assert.Equal(t, "has", label(Some(3)))
	assert.Equal(t, "none", label(None[int]()))
}
